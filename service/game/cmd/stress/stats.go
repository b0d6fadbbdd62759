package main

import (
	"slices"
	"sync"
	"time"
)

type stats struct {
	mu            sync.Mutex
	latencies     []time.Duration
	notifications int
	errors        int
}

type summary struct {
	Responses     int
	Notifications int
	Errors        int
	Min           time.Duration
	Avg           time.Duration
	P95           time.Duration
	Max           time.Duration
}

func (s *stats) response(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latencies = append(s.latencies, d)
}

func (s *stats) notification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications++
}

func (s *stats) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

func (s *stats) summary() summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := summary{
		Responses:     len(s.latencies),
		Notifications: s.notifications,
		Errors:        s.errors,
	}
	if len(s.latencies) == 0 {
		return out
	}
	sorted := slices.Clone(s.latencies)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	out.Min = sorted[0]
	out.Max = sorted[len(sorted)-1]
	out.Avg = total / time.Duration(len(sorted))
	idx := (len(sorted)*95+99)/100 - 1
	out.P95 = sorted[idx]
	return out
}
