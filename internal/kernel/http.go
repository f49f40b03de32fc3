// Package kernel assembles the HTTP handlers of the two processes this
// module runs: the menu API (`qrmenu serve`) and the QR registry
// (`qrmenu registry`).
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/qrmenu/config"
	"github.com/shashiranjanraj/qrmenu/pkg/metrics"
	"github.com/shashiranjanraj/qrmenu/pkg/middleware"
	"github.com/shashiranjanraj/qrmenu/pkg/reqid"
	"github.com/shashiranjanraj/qrmenu/pkg/response"
	"github.com/shashiranjanraj/qrmenu/pkg/router"
)

// NewRouter returns a router with the global middleware stack and the
// operational endpoints mounted.
//
// Middleware, outermost first:
//  1. metrics    total latency including everything below
//  2. recovery   a panic becomes a 500
//  3. request id before anything logs
//  4. logger     per-request logger tagged with request_id
//  5. CORS
//  6. rate limit
func NewRouter() *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	return r
}
