package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// SessionBudget caps how many components one session may generate within a
// time window.
type SessionBudget struct {
	mu     sync.Mutex
	counts map[string]*windowCounter

	maxPerWindow int
	windowSize   time.Duration
	now          func() time.Time
}

type windowCounter struct {
	count     int
	windowEnd time.Time
}

// NewSessionBudget creates a budget. maxPerWindow of 0 disables the cap.
func NewSessionBudget(maxPerWindow int, windowSize time.Duration) *SessionBudget {
	return &SessionBudget{
		counts:       make(map[string]*windowCounter),
		maxPerWindow: maxPerWindow,
		windowSize:   windowSize,
		now:          time.Now,
	}
}

// Check returns an error if admitting n more components would exceed the
// session's budget.
func (b *SessionBudget) Check(sessionID string, n int) error {
	if b == nil || b.maxPerWindow <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.check(sessionID, n)
}

// Record counts n generated components against the session.
func (b *SessionBudget) Record(sessionID string, n int) {
	if b == nil || b.maxPerWindow <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(sessionID, n)
}

// CheckAndRecord admits and counts n components atomically. Nothing is
// recorded when the budget would be exceeded.
func (b *SessionBudget) CheckAndRecord(sessionID string, n int) error {
	if b == nil || b.maxPerWindow <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(sessionID, n); err != nil {
		return err
	}
	b.record(sessionID, n)
	return nil
}

func (b *SessionBudget) check(sessionID string, n int) error {
	wc, ok := b.counts[sessionID]
	if !ok || b.now().After(wc.windowEnd) {
		if n > b.maxPerWindow {
			return fmt.Errorf("session budget exceeded: session %s requested %d (max %d per window)",
				sessionID, n, b.maxPerWindow)
		}
		return nil
	}
	if wc.count+n > b.maxPerWindow {
		return fmt.Errorf("session budget exceeded: session %s (%d+%d/%d in window)",
			sessionID, wc.count, n, b.maxPerWindow)
	}
	return nil
}

func (b *SessionBudget) record(sessionID string, n int) {
	wc, ok := b.counts[sessionID]
	if !ok || b.now().After(wc.windowEnd) {
		b.counts[sessionID] = &windowCounter{
			count:     n,
			windowEnd: b.now().Add(b.windowSize),
		}
		return
	}
	wc.count += n
}
