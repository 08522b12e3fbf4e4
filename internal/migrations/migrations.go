// Package migrations versions the schema of the sqlite session backend.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
)

// Migration is one schema step. Down may be empty when a step cannot be undone.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations lists the schema steps in ascending version order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "index session_state by update time",
		Up:      `CREATE INDEX IF NOT EXISTS idx_session_state_updated_at ON session_state(updated_at);`,
		Down:    `DROP INDEX IF EXISTS idx_session_state_updated_at;`,
	},
	{
		Version: 2,
		Name:    "drop rows without a session id",
		Up:      `DELETE FROM session_state WHERE session_id = '';`,
	},
}

const sessionStateTable = `
CREATE TABLE IF NOT EXISTS session_state (
	session_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, key)
)`

const versionTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// InitSchema creates the session table and the version table
func InitSchema(db *sql.DB) error {
	for _, stmt := range []string{sessionStateTable, versionTable} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// Run applies every pending migration, each in its own transaction
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return err
	}

	current, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, m := range AllMigrations {
		if m.Version <= current {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.Up); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Rollback undoes applied migrations above target, newest first.
// Steps without a Down script are only unrecorded.
func Rollback(db *sql.DB, target int) error {
	current, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for i := len(AllMigrations) - 1; i >= 0; i-- {
		m := AllMigrations[i]
		if m.Version <= target || m.Version > current {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if m.Down != "" {
				if _, err := tx.Exec(m.Down); err != nil {
					return err
				}
			}
			_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", m.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to roll back migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// GetCurrentVersion returns the highest applied version, 0 when none
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	return version, nil
}

func inTx(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
