package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Session backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var (
	ErrInvalidServerURL = errors.New("invalid server url")
	ErrInvalidBackend   = errors.New("invalid session backend")
)

// Settings is the effective configuration after layering
type Settings struct {
	Server  ServerSettings  `mapstructure:"server"`
	Auth    AuthSettings    `mapstructure:"auth"`
	Session SessionSettings `mapstructure:"session"`
	Log     LogSettings     `mapstructure:"log"`
}

// ServerSettings locates the redaction service
type ServerSettings struct {
	URL                string        `mapstructure:"url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// AuthSettings optionally seeds the in-memory credential.
// Values are never written back to disk by redactcli.
type AuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// SessionSettings selects where session state lives
type SessionSettings struct {
	Backend  string        `mapstructure:"backend"`
	ID       string        `mapstructure:"id"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// LogSettings configures the logger
type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			URL: "http://127.0.0.1:8080",
		},
		Session: SessionSettings{
			Backend: BackendFile,
			TTL:     12 * time.Hour,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// HasCredential reports whether a credential was configured
func (s Settings) HasCredential() bool {
	return s.Auth.Username != "" && s.Auth.Password != ""
}

// Validate checks the settings for consistency
func Validate(s Settings) error {
	u, err := url.Parse(s.Server.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidServerURL, s.Server.URL)
	}
	if s.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must not be negative")
	}

	switch strings.ToLower(s.Session.Backend) {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendRedis:
		if s.Session.RedisURL == "" {
			return fmt.Errorf("%w: redis backend requires session.redis_url", ErrInvalidBackend)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, s.Session.Backend)
	}
	if s.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	if s.Auth.Password != "" && s.Auth.Username == "" {
		return fmt.Errorf("auth.username cannot be empty when auth.password is set")
	}
	return nil
}
