package mock

import (
	"sync"
	"time"
)

// Time is a manual clock for code that accepts a now function.
type Time struct {
	mu      sync.Mutex
	current time.Time
}

// NewTime returns a clock stopped at the current time.
func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

// SetCurrentTime moves the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
}

// Now returns the clock's time.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
