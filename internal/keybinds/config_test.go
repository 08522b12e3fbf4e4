package keybinds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeKeybinds(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write keybinds: %v", err)
	}
	return path
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	r, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if action, _ := r.Match(ContextNormal, "ctrl+s"); action != ActionSubmit {
		t.Errorf("default ctrl+s = %q, want submit", action)
	}
}

func TestLoadOrDefault_AppliesOverrides(t *testing.T) {
	path := writeKeybinds(t, `{
  // rebind submit
  "normal": {"submit": "ctrl+r, ctrl+s"},
  "categories": {"toggle_category": " "},
}`)

	r, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}

	if action, _ := r.Match(ContextNormal, "ctrl+r"); action != ActionSubmit {
		t.Errorf("ctrl+r = %q, want submit", action)
	}
	if action, _ := r.Match(ContextCategories, " "); action != ActionToggleCategory {
		t.Errorf("space = %q, want toggle_category", action)
	}
	if _, ok := r.Match(ContextCategories, "x"); ok {
		t.Error("x should no longer toggle after override")
	}
}

func TestLoadOrDefault_RejectsReservedKey(t *testing.T) {
	path := writeKeybinds(t, `{"normal": {"submit": "ctrl+c"}}`)

	_, err := LoadOrDefault(path)
	if err == nil || !strings.Contains(err.Error(), "reserved") {
		t.Fatalf("LoadOrDefault() error = %v, want reserved key error", err)
	}
}

func TestLoadOrDefault_RejectsUnknownAction(t *testing.T) {
	path := writeKeybinds(t, `{"normal": {"launch": "ctrl+l"}}`)

	_, err := LoadOrDefault(path)
	if err == nil || !strings.Contains(err.Error(), "normal.launch") {
		t.Fatalf("LoadOrDefault() error = %v, want unknown action error", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := &Config{Version: "1", Normal: map[string]string{"copy": "ctrl+k"}}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Normal["copy"] != "ctrl+k" {
		t.Errorf("copy = %q, want ctrl+k", loaded.Normal["copy"])
	}
}
