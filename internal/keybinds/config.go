package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/studiowebux/redactcli/internal/config"
	"github.com/tidwall/jsonc"
)

// FileName is the keybinding file inside the config directory
const FileName = "keybinds.json"

// Config maps, per context, an action to comma-separated keys
type Config struct {
	Version    string            `json:"version,omitempty"`
	Global     map[string]string `json:"global,omitempty"`
	Normal     map[string]string `json:"normal,omitempty"`
	Categories map[string]string `json:"categories,omitempty"`
	Modal      map[string]string `json:"modal,omitempty"`
	Help       map[string]string `json:"help,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:     c.Global,
		ContextNormal:     c.Normal,
		ContextCategories: c.Categories,
		ContextModal:      c.Modal,
		ContextHelp:       c.Help,
	}
}

// LoadConfig loads a keybinding file, accepting JSON with comments
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", FileName, err)
	}
	return &cfg, nil
}

// SaveConfig writes a keybinding file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, config.FilePermissions)
}

// ApplyConfig applies user configuration over a registry. Each configured
// action replaces all of its default keys in that context.
func ApplyConfig(registry *Registry, cfg *Config) error {
	var unknown []string

	for context, section := range cfg.sections() {
		for actionName, keyList := range section {
			action := Action(actionName)
			if !IsKnown(action) {
				unknown = append(unknown, fmt.Sprintf("%s.%s", context, actionName))
				continue
			}

			registry.Unbind(context, action)
			for _, key := range splitKeys(keyList) {
				registry.Register(context, key, action)
			}
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown actions: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// splitKeys splits "a, b" into keys; a lone " " names the space key
func splitKeys(list string) []string {
	if list == " " {
		return []string{" "}
	}
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k == " " {
			keys = append(keys, k)
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// LoadOrDefault returns the defaults with the user file applied when it
// exists. The result is validated; reserved keys cannot be rebound.
func LoadOrDefault(path string) (*Registry, error) {
	registry := NewDefaultRegistry()

	cfg, err := LoadConfig(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return registry, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", FileName, err)
	}

	if err := ApplyConfig(registry, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", FileName, err)
	}

	if result := NewValidator().ValidateRegistry(registry); result.HasErrors() {
		return nil, fmt.Errorf("invalid %s:\n%s", FileName, result.String())
	}
	return registry, nil
}
