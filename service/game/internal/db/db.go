package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// ErrMissingDSN indica che lo storico e' stato richiesto senza DSN.
var ErrMissingDSN = errors.New("DB_DSN is required")

// Options regola il pool di connessioni dello storico.
type Options struct {
	PingTimeout  time.Duration
	MaxOpenConns int
}

// Open apre Postgres per lo storico: pool limitato e ping entro PingTimeout.
func Open(ctx context.Context, logger *slog.Logger, dsn string, opts Options) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrMissingDSN
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 5 * time.Second
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		// Le scritture arrivano da tutte le sessioni.
		conn.SetMaxOpenConns(opts.MaxOpenConns)
		conn.SetMaxIdleConns(opts.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		logger.Warn("postgres non raggiungibile", "timeout", opts.PingTimeout, "error", err)
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Debug("postgres connesso", "max_open_conns", opts.MaxOpenConns)

	return conn, nil
}

// ExecFile esegue un file SQL in una singola transazione.
func ExecFile(ctx context.Context, db *sql.DB, content string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, content); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
