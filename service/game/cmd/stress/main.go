package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"CardArena/service/game/internal/config"
	"CardArena/service/game/internal/protocol"
)

var errTimeout = errors.New("risposta non arrivata in tempo")

func main() {
	addr := flag.String("tcp", "localhost:5000", "indirizzo TCP del game server")
	players := flag.Int("players", 100, "giocatori concorrenti")
	duels := flag.Int("duels", 3, "richieste di duello per giocatore")
	pack := flag.Bool("pack", false, "server in politica a pacchetti (pegar senza id)")
	timeout := flag.Duration("timeout", 10*time.Second, "attesa massima per risposta")
	flag.Parse()

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	config.LoadDotenv(logger)

	pterm.DefaultHeader.WithFullWidth().Println("CardArena stress")
	pterm.Info.Printfln("%d giocatori, %d duelli ciascuno, server %s", *players, *duels, *addr)

	collected := &stats{}
	bar, _ := pterm.DefaultProgressbar.WithTotal(*players).WithTitle("Giocatori").Start()
	var barMu sync.Mutex

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *players; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer func() {
				barMu.Lock()
				bar.Increment()
				barMu.Unlock()
			}()
			p := player{id: n, addr: *addr, pack: *pack, duels: *duels, timeout: *timeout, stats: collected}
			if err := p.run(ctx); err != nil {
				collected.fail()
				logger.Debug("giocatore terminato con errore", "player", n, "error", err)
			}
		}(i)
	}
	wg.Wait()
	_, _ = bar.Stop()

	summary := collected.summary()
	if err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Metrica", "Valore"},
		{"Durata", time.Since(start).Round(time.Millisecond).String()},
		{"Risposte", strconv.Itoa(summary.Responses)},
		{"Esiti di duello", strconv.Itoa(summary.Notifications)},
		{"Errori", strconv.Itoa(summary.Errors)},
		{"Latenza min", summary.Min.String()},
		{"Latenza media", summary.Avg.String()},
		{"Latenza p95", summary.P95.String()},
		{"Latenza max", summary.Max.String()},
	}).Render(); err != nil {
		logger.Error("render tabella fallito", "error", err)
	}
	if summary.Errors > 0 {
		os.Exit(1)
	}
}

// player esegue: 2 pesche, mao, N duelli, sair.
type player struct {
	id      int
	addr    string
	pack    bool
	duels   int
	timeout time.Duration
	stats   *stats

	conn net.Conn
	r    *bufio.Reader
}

func (p *player) run(ctx context.Context) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	p.conn, p.r = conn, bufio.NewReader(conn)

	for i := 0; i < 2; i++ {
		if err := p.request(p.drawCommand()); err != nil {
			return err
		}
	}
	if err := p.request(protocol.VerbHand); err != nil {
		return err
	}
	for i := 0; i < p.duels; i++ {
		if err := p.request(protocol.VerbDuel); err != nil {
			return err
		}
	}
	if err := p.request(protocol.VerbQuit); err != nil {
		return err
	}
	return p.drain()
}

func (p *player) drawCommand() string {
	if p.pack {
		return protocol.VerbDraw
	}
	return protocol.VerbDraw + " " + strconv.Itoa(1+rand.IntN(20))
}

// request invia una riga e attende la risposta, contando a parte le notifiche.
func (p *player) request(line string) error {
	sentAt := time.Now()
	if err := protocol.WriteCommand(p.conn, protocol.Parse(line)); err != nil {
		return fmt.Errorf("write %q: %w", line, err)
	}
	for {
		_ = p.conn.SetReadDeadline(time.Now().Add(p.timeout))
		frame, err := protocol.ReadFrame(p.r)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return errTimeout
			}
			return fmt.Errorf("read %q: %w", line, err)
		}
		if protocol.IsNotification(frame) {
			p.stats.notification()
			continue
		}
		p.stats.response(time.Since(sentAt))
		return nil
	}
}

// drain legge fino alla chiusura dopo sair.
func (p *player) drain() error {
	for {
		_ = p.conn.SetReadDeadline(time.Now().Add(p.timeout))
		frame, err := protocol.ReadFrame(p.r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if protocol.IsNotification(frame) {
			p.stats.notification()
		}
	}
}
