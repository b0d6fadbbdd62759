package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Repo scrive lo storico su Postgres (tabelle card_draws e duels).
type Repo struct {
	db *sql.DB
}

// NewRepo collega il repository a una connessione SQL.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// RecordDraw inserisce una riga in card_draws.
func (r *Repo) RecordDraw(ctx context.Context, ev DrawEvent) error {
	const query = `
INSERT INTO card_draws (id, session_id, card_id, card_name, attack, defense, drawn_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, query, ev.ID, ev.SessionID, ev.Card.ID, ev.Card.Name, ev.Card.Attack, ev.Card.Defense, ev.At)
	if err != nil {
		return fmt.Errorf("insert card_draw: %w", err)
	}
	return nil
}

// RecordDuel inserisce una riga in duels.
func (r *Repo) RecordDuel(ctx context.Context, ev DuelEvent) error {
	const query = `
INSERT INTO duels (id, session_a, session_b, outcome, margin_a, margin_b, resolved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, query, ev.ID, ev.SessionA, ev.SessionB, ev.Outcome, ev.MarginA, ev.MarginB, ev.At)
	if err != nil {
		return fmt.Errorf("insert duel: %w", err)
	}
	return nil
}

// GetDuel carica un duello per id.
func (r *Repo) GetDuel(ctx context.Context, id uuid.UUID) (DuelEvent, error) {
	const query = `
SELECT id, session_a, session_b, outcome, margin_a, margin_b, resolved_at
FROM duels
WHERE id = $1`

	var ev DuelEvent
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ev.ID, &ev.SessionA, &ev.SessionB, &ev.Outcome, &ev.MarginA, &ev.MarginB, &ev.At)
	if errors.Is(err, sql.ErrNoRows) {
		return DuelEvent{}, ErrDuelNotFound
	}
	if err != nil {
		slog.Error("errore lettura duello", "error", err, "duel_id", id)
		return DuelEvent{}, err
	}
	return ev, nil
}

// RecentDuels ritorna gli ultimi duelli, dal piu' recente.
func (r *Repo) RecentDuels(ctx context.Context, limit int) ([]DuelEvent, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	const query = `
SELECT id, session_a, session_b, outcome, margin_a, margin_b, resolved_at
FROM duels
ORDER BY resolved_at DESC
LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var duels []DuelEvent
	for rows.Next() {
		var ev DuelEvent
		if err := rows.Scan(&ev.ID, &ev.SessionA, &ev.SessionB, &ev.Outcome, &ev.MarginA, &ev.MarginB, &ev.At); err != nil {
			return nil, err
		}
		duels = append(duels, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return duels, nil
}

// DrawCount conta le carte pescate da una sessione.
func (r *Repo) DrawCount(ctx context.Context, sessionID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM card_draws WHERE session_id = $1`

	var n int
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
