package duel

import (
	"sync"

	"github.com/google/uuid"
)

// Pair e' una coppia estratta dalla coda: A e' la sessione in attesa da piu' tempo.
type Pair struct {
	A uuid.UUID
	B uuid.UUID
}

// Queue e' la fila FIFO di matchmaking. Inserimento, controllo della lunghezza
// ed estrazione della coppia avvengono sotto lo stesso lock.
type Queue struct {
	mu      sync.Mutex
	entries []uuid.UUID
	members map[uuid.UUID]struct{}
}

// NewQueue crea una coda vuota.
func NewQueue() *Queue {
	return &Queue{members: make(map[uuid.UUID]struct{})}
}

// Enqueue accoda la sessione. Ritorna queued=false se era gia' in coda.
// Se la coda raggiunge due elementi, le due sessioni piu' vecchie escono insieme.
func (q *Queue) Enqueue(sessionID uuid.UUID) (*Pair, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.members[sessionID]; ok {
		return nil, false
	}
	q.entries = append(q.entries, sessionID)
	q.members[sessionID] = struct{}{}

	if len(q.entries) < 2 {
		return nil, true
	}
	pair := &Pair{A: q.entries[0], B: q.entries[1]}
	q.entries = q.entries[2:]
	delete(q.members, pair.A)
	delete(q.members, pair.B)
	return pair, true
}

// Remove toglie una sessione in attesa (teardown). Ritorna false se non c'era.
func (q *Queue) Remove(sessionID uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.members[sessionID]; !ok {
		return false
	}
	delete(q.members, sessionID)
	for i, id := range q.entries {
		if id == sessionID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	return true
}

// contains dice se la sessione e' in attesa.
func (q *Queue) contains(sessionID uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.members[sessionID]
	return ok
}

// Len ritorna il numero di sessioni in attesa.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
