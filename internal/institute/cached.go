package institute

import (
	"context"
	"sync"
	"time"

	"github.com/leapstack-labs/leapreport/pkg/report"
)

// Cached remembers the last successful header of an underlying provider for
// a fixed TTL. Failed lookups are not cached.
type Cached struct {
	next report.HeaderProvider
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	header  report.Header
	expires time.Time
	valid   bool
}

// NewCached wraps next with a TTL cache.
func NewCached(next report.HeaderProvider, ttl time.Duration) *Cached {
	return &Cached{next: next, ttl: ttl, now: time.Now}
}

// Header implements report.HeaderProvider.
func (c *Cached) Header(ctx context.Context) (report.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Before(c.expires) {
		return c.header, nil
	}

	h, err := c.next.Header(ctx)
	if err != nil {
		return report.Header{}, err
	}
	c.header, c.expires, c.valid = h, c.now().Add(c.ttl), true
	return h, nil
}
