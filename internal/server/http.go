// Package server wires the HTTP routes for the auth API.
package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	authhandler "supershopcart/backend/internal/auth/handler"
	"supershopcart/backend/internal/security"
	"supershopcart/backend/internal/server/middleware"
)

// Options configures the HTTP handler.
type Options struct {
	Auth   *authhandler.Handler
	Tokens *security.TokenCodec
	// DB is pinged by /healthz; may be nil in tests.
	DB *sql.DB
	// DevLoginEnabled routes POST /api/v1/dev/auth/login. Config refuses to
	// enable this in production.
	DevLoginEnabled bool
}

// NewHTTPHandler builds the route table and wraps it with client-IP capture
// and OpenTelemetry HTTP instrumentation.
func NewHTTPHandler(opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/google", opts.Auth.GoogleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", opts.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", opts.Auth.Logout)
	mux.HandleFunc("POST /api/v1/auth/logout-all", opts.Auth.LogoutAll)

	requireAuth := middleware.RequireAccessToken(opts.Tokens)
	mux.Handle("GET /api/v1/auth/me", requireAuth(http.HandlerFunc(opts.Auth.Me)))

	if opts.DevLoginEnabled {
		mux.HandleFunc("POST /api/v1/dev/auth/login", opts.Auth.DevLogin)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.DB != nil {
			hctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := opts.DB.PingContext(hctx); err != nil {
				http.Error(w, "unhealthy: db", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	handler = middleware.RecordClientIP(handler)
	return otelhttp.NewHandler(handler, "auth-api")
}
