package fakeserver

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// appLimiter keeps a separate token bucket per application token, so one
// noisy application cannot starve another.
type appLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// newAppLimiter returns nil when rps or burst is not positive; a nil
// limiter lets every request through.
func newAppLimiter(rps float64, burst int) *appLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &appLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *appLimiter) allow(appToken string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	bucket, ok := l.buckets[appToken]
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[appToken] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}

// rateLimitMiddleware rejects messages over the per-application budget with
// the 429 body Gotify sends.
func rateLimitMiddleware(limiter *appLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.allow(appTokenFromRequest(r)) {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "too many messages for this application, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
