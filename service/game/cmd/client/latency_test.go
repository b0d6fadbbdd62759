package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"CardArena/service/game/internal/probe"
)

// Caso: le risposte vengono abbinate in ordine FIFO.
func TestLatencyTrackerFIFO(t *testing.T) {
	var tr latencyTracker
	base := time.Now()
	tr.sent(base)
	tr.sent(base.Add(10 * time.Millisecond))

	rtt, ok := tr.received(base.Add(15 * time.Millisecond))
	if !ok || rtt != 15*time.Millisecond {
		t.Fatalf("expected 15ms, got %s (%v)", rtt, ok)
	}
	rtt, ok = tr.received(base.Add(20 * time.Millisecond))
	if !ok || rtt != 10*time.Millisecond {
		t.Fatalf("expected 10ms, got %s (%v)", rtt, ok)
	}
	if _, ok := tr.received(base); ok {
		t.Fatalf("expected no pending request")
	}
}

// Caso: ping contro un echo reale.
func TestPingAgainstEcho(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	echo := probe.New(slog.New(slog.NewTextHandler(io.Discard, nil)), conn)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = echo.Serve(ctx) }()

	rtt, err := ping(echo.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if rtt <= 0 || rtt > 2*time.Second {
		t.Fatalf("unexpected rtt %s", rtt)
	}
}
