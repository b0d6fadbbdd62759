package duel

import "errors"

// ErrInsufficientCards indica che almeno una mano ha meno di MinHandSize carte.
var ErrInsufficientCards = errors.New("insufficient cards for duel")
