package history

import "errors"

var (
	ErrDuelNotFound = errors.New("duel not found")
	ErrInvalidLimit = errors.New("invalid limit")
)
