package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"CardArena/service/game/internal/cards"
)

// OutcomeInsufficient marca un duello chiuso senza punteggio.
const OutcomeInsufficient = "INSUFFICIENT"

// DrawEvent registra una carta entrata nella mano di una sessione.
type DrawEvent struct {
	ID        uuid.UUID  `json:"id"`
	SessionID uuid.UUID  `json:"session_id"`
	Card      cards.Card `json:"carta"`
	At        time.Time  `json:"at"`
}

// DuelEvent registra un duello risolto (o consumato per carte insufficienti).
type DuelEvent struct {
	ID       uuid.UUID `json:"id"`
	SessionA uuid.UUID `json:"session_a"`
	SessionB uuid.UUID `json:"session_b"`
	Outcome  string    `json:"outcome"`
	MarginA  int       `json:"margin_a"`
	MarginB  int       `json:"margin_b"`
	At       time.Time `json:"at"`
}

// Recorder riceve gli eventi di gioco. Gli errori non devono mai bloccare il gioco:
// il chiamante li logga e prosegue.
type Recorder interface {
	RecordDraw(ctx context.Context, ev DrawEvent) error
	RecordDuel(ctx context.Context, ev DuelEvent) error
}

// Nop scarta tutto (storico disabilitato).
type Nop struct{}

func (Nop) RecordDraw(context.Context, DrawEvent) error { return nil }
func (Nop) RecordDuel(context.Context, DuelEvent) error { return nil }

// Multi inoltra a piu' recorder e unisce gli errori.
type Multi []Recorder

func (m Multi) RecordDraw(ctx context.Context, ev DrawEvent) error {
	var errs []error
	for _, r := range m {
		if err := r.RecordDraw(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) RecordDuel(ctx context.Context, ev DuelEvent) error {
	var errs []error
	for _, r := range m {
		if err := r.RecordDuel(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
