package probe

import (
	"context"
	"errors"
	"log/slog"
	"net"
)

// MaxDatagram e' la dimensione del buffer di lettura.
const MaxDatagram = 64 * 1024

// Echo rimanda ogni datagramma al mittente, identico, dallo stesso socket.
// Non conserva stato tra un pacchetto e l'altro.
type Echo struct {
	logger *slog.Logger
	conn   net.PacketConn
}

// New collega l'echo a un socket gia' aperto.
func New(logger *slog.Logger, conn net.PacketConn) *Echo {
	return &Echo{logger: logger, conn: conn}
}

// Addr ritorna l'indirizzo locale del socket.
func (e *Echo) Addr() net.Addr {
	return e.conn.LocalAddr()
}

// Serve risponde fino alla cancellazione del contesto, poi chiude il socket.
func (e *Echo) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = e.conn.Close()
	})
	defer stop()

	e.logger.Info("udp echo in ascolto", "addr", e.conn.LocalAddr().String())
	buf := make([]byte, MaxDatagram)
	for {
		n, addr, err := e.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			e.logger.Warn("lettura udp fallita", "error", err)
			continue
		}
		if _, err := e.conn.WriteTo(buf[:n], addr); err != nil {
			e.logger.Warn("echo udp fallito", "addr", addr.String(), "error", err)
		}
	}
}
