package main

import (
	"encoding/binary"
	"errors"
	"net"
	"sync"
	"time"
)

var errShortEcho = errors.New("echo troppo corto")

// latencyTracker abbina ogni risposta alla richiesta piu' vecchia in attesa.
type latencyTracker struct {
	mu      sync.Mutex
	pending []time.Time
}

func (l *latencyTracker) sent(at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, at)
}

func (l *latencyTracker) received(at time.Time) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) == 0 {
		return 0, false
	}
	start := l.pending[0]
	l.pending = l.pending[1:]
	return at.Sub(start), true
}

// ping misura l'RTT UDP: il payload porta l'istante di invio in nanosecondi.
func ping(addr string, timeout time.Duration) (time.Duration, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, uint64(time.Now().UnixNano()))
	if _, err := conn.Write(payload); err != nil {
		return 0, err
	}

	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	if err != nil {
		return 0, err
	}
	if n < 8 {
		return 0, errShortEcho
	}
	sentAt := time.Unix(0, int64(binary.BigEndian.Uint64(buf[:8])))
	return time.Since(sentAt), nil
}
