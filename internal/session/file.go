package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/studiowebux/redactcli/internal/config"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// FileBackend stores one JSON document per terminal session
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend opens the session file for sessionID under dir.
// Session files untouched for longer than ttl are removed, including the one
// for sessionID, so a reused parent PID starts empty.
func NewFileBackend(dir, sessionID string, ttl time.Duration) (*FileBackend, error) {
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	name := sessionFileName(sessionID)
	if err := purgeStaleFiles(dir, ttl); err != nil {
		return nil, err
	}

	return &FileBackend{path: filepath.Join(dir, name)}, nil
}

func sessionFileName(sessionID string) string {
	if sessionID == "" {
		sessionID = "default"
	}
	return unsafeFileChars.ReplaceAllString(sessionID, "_") + ".json"
}

func purgeStaleFiles(dir string, ttl time.Duration) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read sessions directory: %w", err)
	}

	cutoff := time.Now().Add(-ttl)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, entry.Name()))
		}
	}
	return nil
}

// Path returns the session file location
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return values, nil
}

func (f *FileBackend) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, config.PrivateFilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (f *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (f *FileBackend) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		// A corrupt document is replaced rather than blocking every save
		values = map[string]string{}
	}
	values[key] = string(value)
	return f.write(values)
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return os.Remove(f.path)
	}
	delete(values, key)
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	return f.write(values)
}

func (f *FileBackend) Close() error {
	return nil
}
