package admin

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is how long input must pause before a search fetch
// is issued.
const DefaultSearchDebounce = 300 * time.Millisecond

// DefaultSearchMinLen is the minimum number of runes before a search term
// triggers a fetch at all.
const DefaultSearchMinLen = 3

// Debounce coalesces rapid-fire search input into at most one fetch per
// pause. Each accepted input supersedes the previous one: callers schedule a
// delayed check and only act when their ticket is still current, so stale
// keystrokes can never issue a fetch after newer ones.
type Debounce struct {
	mu       sync.Mutex
	interval time.Duration
	minLen   int
	gen      uint64
	term     string
}

// NewDebounce creates a debouncer. Zero values fall back to the defaults.
func NewDebounce(interval time.Duration, minLen int) *Debounce {
	if interval <= 0 {
		interval = DefaultSearchDebounce
	}
	if minLen <= 0 {
		minLen = DefaultSearchMinLen
	}
	return &Debounce{interval: interval, minLen: minLen}
}

// Interval returns the debounce delay.
func (d *Debounce) Interval() time.Duration {
	return d.interval
}

// Input records a keystroke's resulting term. It returns a ticket and
// whether a delayed fetch should be scheduled: terms shorter than the
// minimum never fetch, except the empty term, which fires to clear an
// active search. Every accepted input invalidates earlier tickets.
func (d *Debounce) Input(term string) (ticket uint64, fire bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.term = term
	if len([]rune(term)) < d.minLen && term != "" {
		return d.gen, false
	}
	return d.gen, true
}

// Current reports whether the ticket still represents the latest input.
// Called after the debounce interval has elapsed; a false result means a
// newer keystroke superseded this one and no fetch must happen.
func (d *Debounce) Current(ticket uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ticket == d.gen
}

// Term returns the latest input.
func (d *Debounce) Term() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.term
}
