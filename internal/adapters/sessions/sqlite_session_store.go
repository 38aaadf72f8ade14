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

// SQLite-backed session store. Times are stored as unix milliseconds.
type SqliteSessionStore struct {
	DB *sql.DB
}

func NewSqliteSessionStore(db *sql.DB) *SqliteSessionStore {
	return &SqliteSessionStore{DB: db}
}

func (s *SqliteSessionStore) Create(ctx context.Context, sess *domain.Session) (err error) {
	defer obs.Time(ctx, "session.sqlite.Create")(&err)

	if s.DB == nil {
		return errors.New("sqlite session store: DB is nil")
	}
	if sess == nil || sess.ID == "" {
		return errors.New("create session: id must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO sessions (
		id,
		token,
		username,
		created_at,
		expires_at
	)
	VALUES (?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q,
		sess.ID, sess.Token, sess.Username,
		sess.CreatedAt.UnixMilli(), sess.ExpiresAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("create session: insert: %w", err)
	}

	return nil
}

func (s *SqliteSessionStore) Get(ctx context.Context, id string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "session.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite session store: DB is nil")
	}

	q := `
	SELECT
		id,
		token,
		username,
		created_at,
		expires_at
	FROM sessions
	WHERE id = ?;
	`

	var sess domain.Session
	var created, expires int64
	err = s.DB.QueryRowContext(ctx, q, id).Scan(&sess.ID, &sess.Token, &sess.Username, &created, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: scan row: %w", err)
	}

	sess.CreatedAt = time.UnixMilli(created).UTC()
	sess.ExpiresAt = time.UnixMilli(expires).UTC()

	if sess.Expired(time.Now()) {
		if err := s.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("get session: drop expired: %w", err)
		}
		return nil, nil
	}

	return &sess, nil
}

func (s *SqliteSessionStore) Delete(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "session.sqlite.Delete")(&err)

	if s.DB == nil {
		return errors.New("sqlite session store: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
