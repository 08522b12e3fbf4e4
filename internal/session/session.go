package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/types"
)

// ErrNotFound is returned by a Backend when the key holds no value
var ErrNotFound = errors.New("session: key not found")

// Backend is a session-scoped key/value store
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store persists the single SessionState record.
// Writes are full replacements and last-write-wins.
type Store struct {
	backend Backend
	logger  *log.Logger
	key     string
}

// NewStore wraps a backend
func NewStore(backend Backend, logger *log.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
		key:     types.StateKey,
	}
}

// Open creates the store for the configured backend
func Open(ctx context.Context, settings config.SessionSettings, logger *log.Logger) (*Store, error) {
	var (
		backend Backend
		err     error
	)

	switch settings.Backend {
	case config.BackendMemory:
		backend = NewMemoryBackend()
	case config.BackendFile:
		backend, err = NewFileBackend(config.SessionsDir, settings.ID, settings.TTL)
	case config.BackendSQLite:
		backend, err = NewSQLiteBackend(config.DatabasePath, settings.ID, settings.TTL)
	case config.BackendRedis:
		backend, err = NewRedisBackend(ctx, settings.RedisURL, settings.ID, settings.TTL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, settings.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s session backend: %w", settings.Backend, err)
	}

	logger.Debug("session store opened", "backend", settings.Backend, "session", settings.ID)
	return NewStore(backend, logger), nil
}

// Save serializes and writes the full state.
// Failures are logged and never surfaced.
func (s *Store) Save(ctx context.Context, state types.SessionState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("failed to save state", "err", err)
		return
	}

	if err := s.backend.Set(ctx, s.key, data); err != nil {
		s.logger.Error("failed to save state", "err", err)
	}
}

// Load reads the state. Missing and corrupt records are both reported as absent.
func (s *Store) Load(ctx context.Context) (*types.SessionState, bool) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to load state", "err", err)
		}
		return nil, false
	}

	var state types.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Error("failed to load state", "err", err)
		return nil, false
	}

	return &state, true
}

// Clear removes the state record
func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Error("failed to clear state", "err", err)
	}
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}
