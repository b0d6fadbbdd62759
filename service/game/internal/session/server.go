package session

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"CardArena/pkg/grpcx"
	"CardArena/service/game/internal/cards"
	"CardArena/service/game/internal/duel"
	"CardArena/service/game/internal/history"
	"CardArena/service/game/internal/protocol"
)

const (
	// DefaultWriteTimeout limita quanto un client lento puo' bloccare chi gli scrive.
	DefaultWriteTimeout = 5 * time.Second
	recordTimeout       = 2 * time.Second
	acceptBackoff       = 50 * time.Millisecond
	maxLineBytes        = 64 * 1024
)

// Options configura la politica di pesca e i sink opzionali.
type Options struct {
	PackMode     bool
	PackSize     int
	WriteTimeout time.Duration
	Recorder     history.Recorder
}

// Server possiede lo stato condiviso del gioco: pool, mani, coda e sessioni.
type Server struct {
	logger   *slog.Logger
	pool     *cards.Pool
	hands    *cards.Hands
	queue    *duel.Queue
	recorder history.Recorder

	packMode     bool
	packSize     int
	writeTimeout time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	wg       sync.WaitGroup
}

// NewServer collega logger, pool, registro mani e coda di duello.
func NewServer(logger *slog.Logger, pool *cards.Pool, hands *cards.Hands, queue *duel.Queue, opts Options) *Server {
	if opts.PackSize <= 0 {
		opts.PackSize = cards.DefaultPackSize
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	if opts.Recorder == nil {
		opts.Recorder = history.Nop{}
	}
	return &Server{
		logger:       logger,
		pool:         pool,
		hands:        hands,
		queue:        queue,
		recorder:     opts.Recorder,
		packMode:     opts.PackMode,
		packSize:     opts.PackSize,
		writeTimeout: opts.WriteTimeout,
		sessions:     make(map[uuid.UUID]*Session),
	}
}

// Serve accetta connessioni finche' ctx non viene cancellato.
// In chiusura chiude tutte le sessioni aperte e attende le loro goroutine.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()

	s.logger.Info("tcp in ascolto", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.shutdown()
				return nil
			}
			// Errore transitorio (es. troppi file aperti): si riprova.
			s.logger.Warn("accept fallito", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(acceptBackoff):
			}
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.Handle(ctx, conn)
		}()
	}
}

// Len ritorna il numero di sessioni registrate.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Handle gestisce una connessione fino a sair, EOF o errore di I/O.
func (s *Server) Handle(ctx context.Context, conn net.Conn) {
	sess := newSession(conn, s.writeTimeout)
	ctx = grpcx.WithSessionID(ctx, sess.ID)
	logger := s.logger.With("session_id", sess.ID.String())

	s.hands.Open(sess.ID)
	s.register(sess)
	defer s.teardown(sess)

	// Chiude la connessione alla cancellazione del contesto, anche se la
	// sessione si e' registrata dopo lo snapshot di shutdown.
	stop := context.AfterFunc(ctx, func() {
		_ = sess.Close()
	})
	defer stop()

	logger.Info("sessione aperta", "addr", sess.RemoteAddr())
	sess.setState(StateAwaitingCommand)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		sess.setState(StateDispatching)
		r := s.dispatch(ctx, sess, protocol.Parse(scanner.Text()))
		err := sess.Send(r.lines...)
		// after gira comunque: una coppia gia' estratta dalla coda deve
		// ricevere il verdetto anche se questa sessione e' sparita.
		if r.after != nil {
			r.after()
		}
		if err != nil {
			logger.Info("scrittura fallita, chiudo la sessione", "error", err)
			return
		}
		if r.quit {
			logger.Info("sessione terminata dal client")
			return
		}
		sess.setState(StateAwaitingCommand)
	}
	if err := scanner.Err(); err != nil && sess.State() != StateClosed {
		logger.Info("lettura fallita", "error", err)
	}
}

func (s *Server) register(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *Server) lookup(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// teardown: fuori dalla coda, mano rilasciata, deregistrazione, chiusura.
func (s *Server) teardown(sess *Session) {
	if s.queue.Remove(sess.ID) {
		s.logger.Debug("sessione rimossa dalla coda di duello", "session_id", sess.ID.String())
	}
	s.hands.Drop(sess.ID)

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	_ = sess.Close()
	s.logger.Info("sessione chiusa", "session_id", sess.ID.String())
}

func (s *Server) shutdown() {
	s.mu.RLock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.RUnlock()

	for _, sess := range open {
		_ = sess.Close()
	}
	s.wg.Wait()
	s.logger.Info("tcp fermato", "sessioni_chiuse", len(open))
}

// notify consegna un frame a un'altra sessione su una goroutine separata.
// Best-effort: se la sessione non c'e' piu' la notifica si perde.
func (s *Server) notify(id uuid.UUID, lines ...string) {
	peer, ok := s.lookup(id)
	if !ok {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := peer.Send(lines...); err != nil {
			s.logger.Debug("notifica non consegnata", "session_id", id.String(), "error", err)
		}
	}()
}

// record invia un evento allo storico; gli errori non toccano il gioco.
func (s *Server) record(ctx context.Context, fn func(ctx context.Context, rec history.Recorder) error) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	if err := fn(ctx, s.recorder); err != nil {
		id, _ := grpcx.SessionIDFromContext(ctx)
		s.logger.Warn("storico non aggiornato", "session_id", id.String(), "error", err)
	}
}
