package grpcx

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// Caso: id di sessione allegato e riletto dal context.
func TestSessionIDContext(t *testing.T) {
	if _, ok := SessionIDFromContext(context.Background()); ok {
		t.Fatalf("expected no session id")
	}
	id := uuid.New()
	got, ok := SessionIDFromContext(WithSessionID(context.Background(), id))
	if !ok || got != id {
		t.Fatalf("expected %s, got %s (%v)", id, got, ok)
	}
}
