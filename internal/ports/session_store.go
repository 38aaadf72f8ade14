package ports

import (
	"context"
	"shipment-tracker-web/internal/domain"
)

// Contract for persisting admin sessions between requests.
type SessionStore interface {
	// Persist a new session. The store assigns nothing; callers fill ID and expiry.
	Create(ctx context.Context, s *domain.Session) error
	// Return the session, or nil when it does not exist or has expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Remove the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
