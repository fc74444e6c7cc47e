package metrics

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_MiddlewareSkipsExcludedPrefix(t *testing.T) {
	c := NewCounter("/admin/metrics")
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, path := range []string{"/app/", "/api/chirps", "/admin/metrics", "/admin/metrics/", "/api/healthz"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, int64(3), c.Hits())

	c.Reset()
	assert.Equal(t, int64(0), c.Hits())
}

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(100), c.Hits())
}
