package grpcx

import (
	"context"

	"github.com/google/uuid"
)

// Chiave condivisa per passare l'identita' della sessione ai componenti a valle.
type contextKey string

// ContextSessionIDKey definisce la chiave per il context locale.
const ContextSessionIDKey contextKey = "session_id"

// WithSessionID allega l'id di sessione al context.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextSessionIDKey, id)
}

// SessionIDFromContext legge l'id di sessione, se presente.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextSessionIDKey).(uuid.UUID)
	return id, ok
}
