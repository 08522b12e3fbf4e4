package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/migrations"
)

// SQLiteBackend stores values in the session_state table keyed by session id
type SQLiteBackend struct {
	db        *sql.DB
	sessionID string
}

// NewSQLiteBackend opens dbPath and purges rows older than ttl, the current
// session's included
func NewSQLiteBackend(dbPath, sessionID string, ttl time.Duration) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	b := &SQLiteBackend{db: db, sessionID: sessionID}
	if err := b.purge(ttl); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) purge(ttl time.Duration) error {
	cutoff := time.Now().UTC().Add(-ttl).Format("2006-01-02 15:04:05")
	_, err := b.db.Exec("DELETE FROM session_state WHERE updated_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge stale sessions: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx,
		"SELECT value FROM session_state WHERE session_id = ? AND key = ?",
		b.sessionID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session value: %w", err)
	}
	return value, nil
}

func (b *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO session_state (session_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, b.sessionID, key, value, time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to write session value: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	_, err := b.db.ExecContext(ctx,
		"DELETE FROM session_state WHERE session_id = ? AND key = ?",
		b.sessionID, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session value: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
