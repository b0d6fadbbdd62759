package protocol

import "errors"

// ErrMalformed indica una richiesta non interpretabile (es. id non numerico).
var ErrMalformed = errors.New("malformed command")

// ErrUnterminatedFrame indica una risposta interrotta prima della riga END.
var ErrUnterminatedFrame = errors.New("frame closed before END")
