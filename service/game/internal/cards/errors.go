package cards

import "errors"

// Errori di dominio usati da pool/mani e mappati nel layer di sessione.
var ErrCardNotFound = errors.New("card not available")

// ErrPoolEmpty indica che nessuna carta puo' essere pescata.
var ErrPoolEmpty = errors.New("card pool is empty")

// ErrInvalidPackSize indica una dimensione di pacchetto fuori dai limiti.
var ErrInvalidPackSize = errors.New("invalid pack size")

// ErrUnknownSession indica una mano mai aperta o gia' rilasciata.
var ErrUnknownSession = errors.New("unknown session")

// ErrIndexOutOfRange indica una posizione inesistente nella mano.
var ErrIndexOutOfRange = errors.New("hand index out of range")
