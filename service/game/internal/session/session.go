package session

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"CardArena/service/game/internal/protocol"
)

// State e' la fase del ciclo di vita di una sessione.
type State int32

const (
	StateConnected State = iota
	StateAwaitingCommand
	StateDispatching
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateAwaitingCommand:
		return "AWAITING_COMMAND"
	case StateDispatching:
		return "DISPATCHING"
	default:
		return "CLOSED"
	}
}

// Session e' un client connesso. Le scritture arrivano sia dalla goroutine
// della sessione sia dalle notifiche di duello: wmu serializza i frame interi.
type Session struct {
	ID uuid.UUID

	conn         net.Conn
	writeTimeout time.Duration
	wmu          sync.Mutex
	state        atomic.Int32
	closeOnce    sync.Once
}

func newSession(conn net.Conn, writeTimeout time.Duration) *Session {
	return &Session{
		ID:           uuid.New(),
		conn:         conn,
		writeTimeout: writeTimeout,
	}
}

// State ritorna la fase corrente.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	// CLOSED e' terminale.
	for {
		cur := s.state.Load()
		if State(cur) == StateClosed {
			return
		}
		if s.state.CompareAndSwap(cur, int32(st)) {
			return
		}
	}
}

// RemoteAddr ritorna l'indirizzo del client.
func (s *Session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// Send scrive una risposta completa (righe + END) entro writeTimeout.
func (s *Session) Send(lines ...string) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	if s.State() == StateClosed {
		return ErrSessionClosed
	}
	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	return protocol.WriteFrame(s.conn, lines...)
}

// Close chiude la connessione una volta sola.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateClosed))
		err = s.conn.Close()
	})
	return err
}
