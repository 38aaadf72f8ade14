package sessions

import (
	"database/sql"
	"errors"
	"fmt"
)

const createSQLiteSessionsQuery = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	token TEXT NOT NULL,
	username TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
`

const createPostgresSessionsQuery = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	token TEXT NOT NULL,
	username TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
`

const createExpiryIndexQuery = `
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at
ON sessions(expires_at);
`

// Initialize the SQLite session schema.
func InitSQLiteSchema(db *sql.DB) error {
	return initSchema(db, createSQLiteSessionsQuery, createExpiryIndexQuery)
}

// Initialize the PostgreSQL session schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, createPostgresSessionsQuery, createExpiryIndexQuery)
}

func initSchema(db *sql.DB, statements ...string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
