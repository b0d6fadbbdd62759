package duel

import "CardArena/service/game/internal/cards"

// MinHandSize e' il minimo di carte per mano richiesto da un duello.
const MinHandSize = 2

// Outcome e' l'esito di un duello visto dal lato A.
type Outcome int

const (
	Draw Outcome = iota
	WinA
	WinB
)

func (o Outcome) String() string {
	switch o {
	case WinA:
		return "WIN_A"
	case WinB:
		return "WIN_B"
	default:
		return "DRAW"
	}
}

// Score riassume una mano.
type Score struct {
	Attack  int
	Defense int
}

// Result e' derivato al momento della risoluzione e non viene conservato.
type Result struct {
	Outcome Outcome
	A       Score
	B       Score
	MarginA int
	MarginB int
}

// Resolve confronta attacco proprio contro difesa avversaria:
// marginA = attackA - defenseB, marginB = attackB - defenseA.
func Resolve(handA, handB []cards.Card) (Result, error) {
	if len(handA) < MinHandSize || len(handB) < MinHandSize {
		return Result{}, ErrInsufficientCards
	}

	var res Result
	res.A.Attack, res.A.Defense = cards.Totals(handA)
	res.B.Attack, res.B.Defense = cards.Totals(handB)
	res.MarginA = res.A.Attack - res.B.Defense
	res.MarginB = res.B.Attack - res.A.Defense

	switch {
	case res.MarginA > res.MarginB:
		res.Outcome = WinA
	case res.MarginB > res.MarginA:
		res.Outcome = WinB
	default:
		res.Outcome = Draw
	}
	return res, nil
}
