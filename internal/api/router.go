package api

import (
	"net/http"
	"time"

	"shipment-tracker-web/internal/api/handlers"
	"shipment-tracker-web/internal/ports"
)

// Deps are the collaborators the HTTP layer needs. Handlers only ever see the
// ports, never the concrete adapters.
type Deps struct {
	API      ports.ContentAPI
	Sessions ports.SessionStore
	Events   ports.EventPublisher

	SessionTTL     time.Duration
	CookieSecure   bool
	FrontendURL    string
	LoginRateLimit int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	tracking := &handlers.TrackingHandler{API: d.API}
	auth := &handlers.AuthHandler{
		API:          d.API,
		Sessions:     d.Sessions,
		TTL:          d.SessionTTL,
		CookieSecure: d.CookieSecure,
	}
	if d.LoginRateLimit > 0 {
		auth.Limiter = NewRateLimiter(d.LoginRateLimit, time.Minute)
	}
	dashboard := &handlers.DashboardHandler{API: d.API}
	shipments := &handlers.ShipmentHandler{API: d.API, Events: d.Events}

	admin := func(h http.HandlerFunc) http.Handler {
		return requireSession(d.Sessions, d.CookieSecure)(h)
	}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /{$}", tracking.Form)
	mux.HandleFunc("POST /track", tracking.Lookup)
	mux.HandleFunc("GET /tracking/{trackingId}", tracking.Show)

	mux.HandleFunc("GET /login", auth.Form)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("POST /logout", auth.Logout)

	mux.Handle("GET /admin/dashboard", admin(dashboard.Show))
	mux.Handle("GET /admin/shipments", admin(shipments.List))
	mux.Handle("GET /admin/shipments/new", admin(shipments.New))
	mux.Handle("POST /admin/shipments", admin(shipments.Create))
	mux.Handle("GET /admin/shipments/{trackingId}", admin(shipments.Show))
	mux.Handle("POST /admin/shipments/{trackingId}/status", admin(shipments.SubmitStatus))
	mux.Handle("POST /admin/shipments/{trackingId}/status/{updateId}/delete", admin(shipments.DeleteStatusUpdate))
	mux.Handle("POST /admin/shipments/{trackingId}/delete", admin(shipments.Delete))

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(d.FrontendURL)(mux)))
}
