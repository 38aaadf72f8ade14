package handlers

import (
	"context"

	"shipment-tracker-web/internal/domain"
)

// SessionCookie names the cookie that carries the session id.
const SessionCookie = "session_id"

type sessionKey struct{}

func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session attached by the admin middleware, or nil on
// public routes.
func SessionFrom(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return s
}
