// Package middleware holds the HTTP middleware shared by the API and the
// QR registry service.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/qrmenu/pkg/response"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window per-client request counter.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{max: max, window: window, now: time.Now, buckets: map[string]*bucket{}}
}

// Allow counts one request for key and reports whether it is within budget.
// Expired buckets are swept on the way.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		if len(l.buckets) > 1024 {
			l.sweep(now)
		}
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}

	b.count++
	return b.count <= l.max
}

func (l *Limiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit limits each client IP to max requests per window.
//
//	r.Use(middleware.RateLimit(120, time.Minute))
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	return NewLimiter(max, window).Middleware
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
