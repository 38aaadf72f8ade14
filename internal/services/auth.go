package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/ports"
)

type LoginRequest struct {
	Identifier string
	Password   string
	TTL        time.Duration
}

// Login authenticates against the content API and stores the returned token
// in a new session.
func Login(
	ctx context.Context,
	api ports.ContentAPI,
	store ports.SessionStore,
	req LoginRequest,
) (*domain.Session, error) {
	if strings.TrimSpace(req.Identifier) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("login: identifier and password are required: %w", domain.ErrInvalidInput)
	}

	res, err := api.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		Username:  res.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(req.TTL),
	}

	if err := store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("login: store session: %w", err)
	}

	return sess, nil
}

// Logout removes the session. An empty id is a no-op.
func Logout(ctx context.Context, store ports.SessionStore, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
