package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, InitializeAt(filepath.Join(dir, ".redactcli")))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	setupConfigDir(t)
	t.Setenv("REDACTCLI_SESSION", "test-session")

	s, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", s.Server.URL)
	assert.Equal(t, BackendFile, s.Session.Backend)
	assert.Equal(t, 12*time.Hour, s.Session.TTL)
	assert.Equal(t, "test-session", s.Session.ID)
	assert.Equal(t, "info", s.Log.Level)
	assert.False(t, s.HasCredential())
}

func TestLoad_Precedence(t *testing.T) {
	dir := setupConfigDir(t)

	userCfg := "server:\n  url: http://user.example:9000\nsession:\n  backend: sqlite\n"
	require.NoError(t, os.WriteFile(ConfigFile, []byte(userCfg), FilePermissions))

	projectCfg := "server:\n  url: http://project.example:9000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalConfigFile), []byte(projectCfg), FilePermissions))

	s, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://project.example:9000", s.Server.URL)
	assert.Equal(t, BackendSQLite, s.Session.Backend)

	t.Setenv("REDACTCLI_SERVER_URL", "http://env.example:9000")
	s, err = Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://env.example:9000", s.Server.URL)

	s, err = Load(LoadOptions{FlagOverrides: map[string]any{"server.url": "http://flag.example:9000"}})
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example:9000", s.Server.URL)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := setupConfigDir(t)
	envPath := filepath.Join(dir, "creds.env")
	require.NoError(t, os.WriteFile(envPath, []byte("REDACTCLI_AUTH_USERNAME=admin\nREDACTCLI_AUTH_PASSWORD=secret\n"), FilePermissions))
	t.Cleanup(func() {
		os.Unsetenv("REDACTCLI_AUTH_USERNAME")
		os.Unsetenv("REDACTCLI_AUTH_PASSWORD")
	})

	s, err := Load(LoadOptions{EnvFile: envPath})
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Auth.Username)
	assert.Equal(t, "secret", s.Auth.Password)
	assert.True(t, s.HasCredential())

	_, err = Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestLoad_DurationFromEnv(t *testing.T) {
	setupConfigDir(t)
	t.Setenv("REDACTCLI_SESSION_TTL", "30m")
	t.Setenv("REDACTCLI_SERVER_TIMEOUT", "5s")

	s, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, s.Session.TTL)
	assert.Equal(t, 5*time.Second, s.Server.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{"defaults", func(*Settings) {}, nil},
		{"bad scheme", func(s *Settings) { s.Server.URL = "ftp://host" }, ErrInvalidServerURL},
		{"no host", func(s *Settings) { s.Server.URL = "http://" }, ErrInvalidServerURL},
		{"unknown backend", func(s *Settings) { s.Session.Backend = "etcd" }, ErrInvalidBackend},
		{"redis without url", func(s *Settings) { s.Session.Backend = BackendRedis }, ErrInvalidBackend},
		{"redis with url", func(s *Settings) {
			s.Session.Backend = BackendRedis
			s.Session.RedisURL = "redis://localhost:6379/0"
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := Validate(s)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_PasswordWithoutUsername(t *testing.T) {
	s := DefaultSettings()
	s.Auth.Password = "secret"
	assert.Error(t, Validate(s))
}

func TestSessionID(t *testing.T) {
	t.Setenv("REDACTCLI_SESSION", "")
	assert.Contains(t, SessionID(), "ppid-")

	t.Setenv("REDACTCLI_SESSION", "abc")
	assert.Equal(t, "abc", SessionID())
}
