package session

import "errors"

// ErrSessionClosed indica una scrittura verso una sessione gia' chiusa.
var ErrSessionClosed = errors.New("session closed")
