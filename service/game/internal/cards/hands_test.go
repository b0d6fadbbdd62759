package cards

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// Caso: append conserva l'ordine e List ritorna una copia.
func TestHandsAppendAndList(t *testing.T) {
	hands := NewHands()
	id := uuid.New()
	hands.Open(id)

	deck := StarterDeck()
	if err := hands.Append(id, deck[0], deck[1]); err != nil {
		t.Fatalf("append: %v", err)
	}
	list, err := hands.List(id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("unexpected hand: %+v", list)
	}

	list[0].Name = "changed"
	again, _ := hands.List(id)
	if again[0].Name != "Dragão" {
		t.Fatalf("List must return a copy")
	}
}

// Caso: rimozione per indice e indice fuori range.
func TestHandsRemoveAt(t *testing.T) {
	hands := NewHands()
	id := uuid.New()
	hands.Open(id)
	deck := StarterDeck()
	_ = hands.Append(id, deck[0], deck[1], deck[2])

	card, err := hands.RemoveAt(id, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if card.ID != 2 {
		t.Fatalf("expected card 2, got %d", card.ID)
	}
	list, _ := hands.List(id)
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 3 {
		t.Fatalf("unexpected hand: %+v", list)
	}

	if _, err := hands.RemoveAt(id, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := hands.RemoveAt(id, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

// Caso: sessione sconosciuta o rilasciata.
func TestHandsUnknownSession(t *testing.T) {
	hands := NewHands()
	id := uuid.New()

	if err := hands.Append(id, Card{ID: 1}); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}

	hands.Open(id)
	hands.Drop(id)
	if _, err := hands.List(id); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession after drop, got %v", err)
	}
	if hands.Len() != 0 {
		t.Fatalf("expected no hands, got %d", hands.Len())
	}
}

func TestTotals(t *testing.T) {
	attack, defense := Totals([]Card{{Attack: 8, Defense: 5}, {Attack: 6, Defense: 4}})
	if attack != 14 || defense != 9 {
		t.Fatalf("expected 14/9, got %d/%d", attack, defense)
	}
}
