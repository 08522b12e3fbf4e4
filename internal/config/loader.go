package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (REDACTCLI_SERVER_URL, ...)
const EnvPrefix = "REDACTCLI"

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// ConfigPath overrides the project config path if provided.
	ConfigPath string
	// EnvFile is an explicit dotenv file; a missing file is an error.
	EnvFile string
	// FlagOverrides are highest-priority overrides from CLI flags (dot-notated keys).
	FlagOverrides map[string]any
}

// Load returns the effective configuration after applying precedence:
// defaults < user (~/.redactcli/config.yaml) < project (.redactcli.yaml) < .env < env (REDACTCLI_*) < flags.
func Load(opts LoadOptions) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	if err := mergeConfigFile(v, ConfigFile); err != nil {
		return Settings{}, err
	}

	projectPath := opts.ConfigPath
	if projectPath == "" && LocalConfigExists() {
		projectPath = LocalConfigFile
	}
	if err := mergeConfigFile(v, projectPath); err != nil {
		return Settings{}, err
	}

	if err := loadDotEnv(opts.EnvFile); err != nil {
		return Settings{}, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range opts.FlagOverrides {
		v.Set(key, value)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	s.Session.Backend = strings.ToLower(s.Session.Backend)
	if s.Session.ID == "" {
		s.Session.ID = SessionID()
	}

	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// setDefaults seeds viper with built-in defaults.
// Every key needs a default so AutomaticEnv can find it during Unmarshal.
func setDefaults(v *viper.Viper) {
	def := DefaultSettings()

	v.SetDefault("server.url", def.Server.URL)
	v.SetDefault("server.timeout", def.Server.Timeout)
	v.SetDefault("server.insecure_skip_verify", def.Server.InsecureSkipVerify)

	v.SetDefault("auth.username", def.Auth.Username)
	v.SetDefault("auth.password", def.Auth.Password)

	v.SetDefault("session.backend", def.Session.Backend)
	v.SetDefault("session.id", def.Session.ID)
	v.SetDefault("session.ttl", def.Session.TTL)
	v.SetDefault("session.redis_url", def.Session.RedisURL)

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
}

// mergeConfigFile merges the YAML config file if it exists.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads ./.env when present and the explicit env file when given.
// Existing environment variables are never overridden.
func loadDotEnv(explicit string) error {
	if explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", explicit, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return nil
}
