package cards

import (
	"math/rand/v2"
	"sync"
)

const (
	// DefaultRareProbability e' la probabilita' per slot di pescare una rara.
	DefaultRareProbability = 0.15
	// DefaultPackSize e' il numero di carte di un pacchetto senza argomento.
	DefaultPackSize = 3
	// MaxPackSize limita le richieste "pegar <n>".
	MaxPackSize = 10
)

// Random e' il sottoinsieme di *rand.Rand usato dal pool (sostituibile nei test).
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewSeededRandom crea un generatore deterministico; seed 0 usa un seed casuale.
func NewSeededRandom(seed uint64) Random {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Pool e' il mazzo condiviso. Un solo mutex copre deck, rare e comuni:
// ogni verifica+rimozione avviene nella stessa sezione critica.
type Pool struct {
	mu              sync.Mutex
	deck            []Card
	rares           []Card
	commons         []Card
	rareProbability float64
	rng             Random
}

// NewPool crea un pool pescabile per id (politica "id").
func NewPool(deck []Card) *Pool {
	return &Pool{deck: append([]Card(nil), deck...)}
}

// NewPackPool crea un pool a pacchetti: rare senza reinserimento, comuni con.
func NewPackPool(rares, commons []Card, rareProbability float64, rng Random) *Pool {
	if rng == nil {
		rng = NewSeededRandom(0)
	}
	return &Pool{
		rares:           append([]Card(nil), rares...),
		commons:         append([]Card(nil), commons...),
		rareProbability: rareProbability,
		rng:             rng,
	}
}

// Draw rimuove dal mazzo la carta con l'id richiesto.
// Due Draw concorrenti sullo stesso id: uno solo riesce, l'altro riceve ErrCardNotFound.
func (p *Pool) Draw(id int) (Card, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, card := range p.deck {
		if card.ID == id {
			p.deck = append(p.deck[:i], p.deck[i+1:]...)
			return card, nil
		}
	}
	return Card{}, ErrCardNotFound
}

// DrawPack pesca n carte. Per ogni slot: rara con probabilita' rareProbability
// (finche' ce ne sono, rimossa per sempre), altrimenti una comune a caso.
func (p *Pool) DrawPack(n int) ([]Card, error) {
	if n <= 0 || n > MaxPackSize {
		return nil, ErrInvalidPackSize
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.rares) == 0 && len(p.commons) == 0 {
		return nil, ErrPoolEmpty
	}

	pack := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case len(p.rares) > 0 && (len(p.commons) == 0 || p.rng.Float64() < p.rareProbability):
			pack = append(pack, p.rares[0])
			p.rares = p.rares[1:]
		case len(p.commons) > 0:
			pack = append(pack, p.commons[p.rng.IntN(len(p.commons))])
		}
		if len(p.rares) == 0 && len(p.commons) == 0 {
			break
		}
	}
	return pack, nil
}

// List ritorna una copia ordinata: mazzo, rare rimaste, comuni.
func (p *Pool) List() []Card {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Card, 0, len(p.deck)+len(p.rares)+len(p.commons))
	out = append(out, p.deck...)
	out = append(out, p.rares...)
	out = append(out, p.commons...)
	return out
}

// Len ritorna il numero di carte elencate da List.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.deck) + len(p.rares) + len(p.commons)
}

// RaresLeft ritorna quante rare restano da pescare.
func (p *Pool) RaresLeft() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rares)
}
