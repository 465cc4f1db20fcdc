package kraken

import (
	"strconv"
	"sync"
	"time"
)

// NonceKey is the parameter name the exchange expects the nonce under.
const NonceKey = "nonce"

// NonceGenerator issues millisecond timestamp nonces that never repeat or go
// backwards, even when two calls land in the same millisecond or the wall
// clock is stepped back.
type NonceGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewNonceGenerator returns a generator driven by the wall clock.
func NewNonceGenerator() *NonceGenerator {
	return &NonceGenerator{now: time.Now}
}

// newNonceGeneratorWithClock is used by tests to pin the clock.
func newNonceGeneratorWithClock(now func() time.Time) *NonceGenerator {
	return &NonceGenerator{now: now}
}

// Next returns the next nonce as a decimal string.
func (g *NonceGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Round to the nearest millisecond rather than truncating.
	n := g.now().Round(time.Millisecond).UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}
