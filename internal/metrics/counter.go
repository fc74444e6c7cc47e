// Package metrics counts handled requests for the admin page.
package metrics

import (
	"net/http"
	"strings"
	"sync/atomic"
)

// Counter is a process-wide request counter. The zero value is ready to use.
type Counter struct {
	hits    atomic.Int64
	exclude string
}

// NewCounter returns a Counter that ignores requests under excludePrefix.
func NewCounter(excludePrefix string) *Counter {
	return &Counter{exclude: excludePrefix}
}

func (c *Counter) Hits() int64 { return c.hits.Load() }

func (c *Counter) Inc() { c.hits.Add(1) }

// Reset zeroes the counter.
func (c *Counter) Reset() { c.hits.Store(0) }

// Middleware increments the counter once per request, before routing.
func (c *Counter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.exclude == "" || !strings.HasPrefix(r.URL.Path, c.exclude) {
			c.Inc()
		}
		next.ServeHTTP(w, r)
	})
}
