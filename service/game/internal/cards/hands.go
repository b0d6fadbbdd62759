package cards

import (
	"sync"

	"github.com/google/uuid"
)

// hand e' modificata solo dalla propria sessione; il mutex serve alle letture
// del resolver, che gira sulla goroutine dell'avversario.
type hand struct {
	mu    sync.Mutex
	cards []Card
}

// Hands e' il registro delle mani per sessione.
// Il lock del registro protegge solo la struttura della mappa.
type Hands struct {
	mu    sync.RWMutex
	hands map[uuid.UUID]*hand
}

// NewHands crea un registro vuoto.
func NewHands() *Hands {
	return &Hands{hands: make(map[uuid.UUID]*hand)}
}

// Open registra una mano vuota per la sessione (no-op se esiste gia').
func (h *Hands) Open(sessionID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.hands[sessionID]; !ok {
		h.hands[sessionID] = &hand{}
	}
}

// Drop rilascia la mano a fine sessione. Le carte non tornano nel pool.
func (h *Hands) Drop(sessionID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.hands, sessionID)
}

// Append aggiunge carte in coda alla mano.
func (h *Hands) Append(sessionID uuid.UUID, cards ...Card) error {
	hd, err := h.get(sessionID)
	if err != nil {
		return err
	}
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hd.cards = append(hd.cards, cards...)
	return nil
}

// List ritorna una copia ordinata della mano.
func (h *Hands) List(sessionID uuid.UUID) ([]Card, error) {
	hd, err := h.get(sessionID)
	if err != nil {
		return nil, err
	}
	hd.mu.Lock()
	defer hd.mu.Unlock()
	return append([]Card(nil), hd.cards...), nil
}

// RemoveAt toglie la carta in posizione index (0-based) e la ritorna.
func (h *Hands) RemoveAt(sessionID uuid.UUID, index int) (Card, error) {
	hd, err := h.get(sessionID)
	if err != nil {
		return Card{}, err
	}
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if index < 0 || index >= len(hd.cards) {
		return Card{}, ErrIndexOutOfRange
	}
	card := hd.cards[index]
	hd.cards = append(hd.cards[:index], hd.cards[index+1:]...)
	return card, nil
}

// Len ritorna il numero di mani aperte.
func (h *Hands) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.hands)
}

func (h *Hands) get(sessionID uuid.UUID) (*hand, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	hd, ok := h.hands[sessionID]
	if !ok {
		return nil, ErrUnknownSession
	}
	return hd, nil
}
