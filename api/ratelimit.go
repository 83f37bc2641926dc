package api

import (
	"errors"
	"sync"
	"time"
)

// ErrTooManyRequests is returned once a token has used up its daily quota
var ErrTooManyRequests = errors.New("too many requests for today")

const dateLayout = "2006-01-02"

// RateLimiter counts lookups per token per UTC calendar day. Counters live
// only for the lifetime of the process; a restart clears them.
type RateLimiter struct {
	mu     sync.Mutex
	max    int
	counts map[string]int
	now    func() time.Time
}

// NewRateLimiter initializes a limiter with the given daily ceiling
func NewRateLimiter(max int) *RateLimiter {
	return &RateLimiter{
		max:    max,
		counts: map[string]int{},
		now:    time.Now,
	}
}

// Reserve claims one lookup slot for the token today. The check and the
// increment happen as one step under the lock, so concurrent requests can
// never push a counter past the ceiling.
func (l *RateLimiter) Reserve(token string) error {
	key := token + "_" + l.now().UTC().Format(dateLayout)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[key] >= l.max {
		return ErrTooManyRequests
	}
	l.counts[key]++
	return nil
}

// PruneBefore drops counters for UTC days before day. Day rollover already
// isolates counters because the date is part of the key; pruning just keeps
// the map from accumulating dead days.
func (l *RateLimiter) PruneBefore(day time.Time) int {
	cutoff := day.UTC().Format(dateLayout)

	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key := range l.counts {
		if len(key) < len(dateLayout) {
			continue
		}
		if key[len(key)-len(dateLayout):] < cutoff {
			delete(l.counts, key)
			removed++
		}
	}
	return removed
}
