package keybinds

import (
	"testing"
)

func TestValidator_DefaultsAreClean(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())

	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default registry has issues:\n%s", result.String())
	}
}

func TestValidator_RequiredActions(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unbind(ContextNormal, ActionSubmit)

	result := NewValidator().ValidateRegistry(r)
	if !result.HasErrors() {
		t.Fatal("expected an error for unbound submit")
	}
}

func TestValidator_PrintableKeyWarning(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextNormal, "s", ActionSubmit)

	result := NewValidator().ValidateRegistry(r)
	if result.HasErrors() {
		t.Errorf("unexpected errors:\n%s", result.String())
	}
	if !result.HasWarnings() {
		t.Error("expected a warning for a printable view key")
	}
}

func TestValidator_ShadowingWarning(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextGlobal, "ctrl+g", ActionOpenHelp)
	r.Register(ContextCategories, "ctrl+g", ActionSelectAll)

	result := NewValidator().ValidateRegistry(r)
	if !result.HasWarnings() {
		t.Error("expected a shadowing warning")
	}
}
