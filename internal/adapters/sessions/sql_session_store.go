package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
)

// SQLSessionStore is a PostgreSQL-backed session store (pgx stdlib driver).
type SQLSessionStore struct {
	DB *sql.DB
}

func NewSQLSessionStore(db *sql.DB) *SQLSessionStore {
	return &SQLSessionStore{DB: db}
}

func (s *SQLSessionStore) Create(ctx context.Context, sess *domain.Session) (err error) {
	defer obs.Time(ctx, "session.sql.Create")(&err)

	if s.DB == nil {
		return errors.New("session store: db is nil")
	}
	if sess == nil || sess.ID == "" {
		return errors.New("create session: id must not be empty")
	}

	q := `
	INSERT INTO sessions (id, token, username, created_at, expires_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET token = EXCLUDED.token,
		username = EXCLUDED.username,
		created_at = EXCLUDED.created_at,
		expires_at = EXCLUDED.expires_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, sess.ID, sess.Token, sess.Username, sess.CreatedAt, sess.ExpiresAt); err != nil {
		return fmt.Errorf("create session: insert: %w", err)
	}

	return nil
}

// Get ignores expired rows; they are removed by the next Delete or by
// PurgeExpired.
func (s *SQLSessionStore) Get(ctx context.Context, id string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "session.sql.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("session store: db is nil")
	}

	q := `
	SELECT id, token, username, created_at, expires_at
	FROM sessions
	WHERE id = $1
		AND expires_at > $2;
	`

	var sess domain.Session
	err = s.DB.QueryRowContext(ctx, q, id, time.Now()).
		Scan(&sess.ID, &sess.Token, &sess.Username, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: scan row: %w", err)
	}

	return &sess, nil
}

func (s *SQLSessionStore) Delete(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "session.sql.Delete")(&err)

	if s.DB == nil {
		return errors.New("session store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes every expired session and returns how many were removed.
func (s *SQLSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("session store: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1;`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions: rows affected: %w", err)
	}
	return n, nil
}
