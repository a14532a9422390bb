package service

import (
	"strings"
	"sync"
	"time"
)

// SignInLimiter limita los intentos fallidos de inicio de sesion por clave.
type SignInLimiter interface {
	Allow(key string) bool
	// Reset olvida los intentos de la clave tras un inicio de sesion correcto.
	Reset(key string)
}

// sweepEvery fija cada cuantas llamadas se purgan claves sin intentos vigentes.
const sweepEvery = 1024

type memorySignInLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	now    func() time.Time
	hits   map[string][]time.Time
	calls  int
}

// NewMemorySignInLimiter crea un limitador de ventana deslizante en memoria.
func NewMemorySignInLimiter(window time.Duration, max int) SignInLimiter {
	return newMemorySignInLimiter(window, max, func() time.Time { return time.Now().UTC() })
}

func newMemorySignInLimiter(window time.Duration, max int, now func() time.Time) *memorySignInLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memorySignInLimiter{
		window: window,
		max:    max,
		now:    now,
		hits:   make(map[string][]time.Time),
	}
}

func (l *memorySignInLimiter) Allow(key string) bool {
	key = normalizeLimiterKey(key)
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)

	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweep(cutoff)
	}

	kept := pruneBefore(l.hits[key], cutoff)
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

func (l *memorySignInLimiter) Reset(key string) {
	key = normalizeLimiterKey(key)
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}

// sweep elimina las claves cuyos intentos ya salieron de la ventana.
func (l *memorySignInLimiter) sweep(cutoff time.Time) {
	for key, entries := range l.hits {
		kept := pruneBefore(entries, cutoff)
		if len(kept) == 0 {
			delete(l.hits, key)
			continue
		}
		l.hits[key] = kept
	}
}

func pruneBefore(entries []time.Time, cutoff time.Time) []time.Time {
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

func normalizeLimiterKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
