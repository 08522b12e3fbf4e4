package tui

import (
	"strings"
	"testing"

	"github.com/studiowebux/redactcli/internal/keybinds"
	"github.com/studiowebux/redactcli/internal/view"
)

func TestCategoryPanel_ToggleAndAddCustom(t *testing.T) {
	m := CreateTestModel(t)
	loadCategories(t, m)

	press(t, m, "tab")
	AssertModelField(t, "focus", m.focus, FocusCategories)

	first := m.selection.All()[0]
	press(t, m, " ")
	AssertModelField(t, "first selected", m.selection.IsSelected(first), false)

	press(t, m, "n")
	AssertModelField(t, "none selected", len(m.selection.Selected()), 0)
	press(t, m, "a")
	AssertModelField(t, "all selected", len(m.selection.Selected()), 3)

	typeKeys(m, "+")
	AssertModelField(t, "mode", m.mode, ModeAddCategory)
	typeText(m, "  product ")
	press(t, m, "enter")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "custom added", m.selection.IsSelected("PRODUCT"), true)
	AssertModelField(t, "cursor on new", m.selection.All()[m.categoryIndex], "PRODUCT")

	typeKeys(m, "+")
	typeText(m, "Product")
	press(t, m, "enter")
	AssertModelField(t, "no duplicate", strings.Count(strings.Join(m.selection.All(), ","), "PRODUCT"), 1)
}

func TestAddCategory_EscCancels(t *testing.T) {
	m := CreateTestModel(t)
	loadCategories(t, m)
	press(t, m, "tab")

	typeKeys(m, "+")
	typeText(m, "thing")
	press(t, m, "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "count", len(m.selection.All()), 3)
}

func TestCycleFocus(t *testing.T) {
	m := CreateTestModel(t)

	press(t, m, "tab")
	AssertModelField(t, "focus", m.focus, FocusCategories)
	press(t, m, "tab")
	AssertModelField(t, "focus", m.focus, FocusOutput)
	press(t, m, "tab")
	AssertModelField(t, "focus", m.focus, FocusInput)
	AssertModelField(t, "textarea focused", m.redactInput.Focused(), true)
}

func TestHelpToggle(t *testing.T) {
	m := CreateTestModel(t)

	press(t, m, "f1")
	AssertModelField(t, "mode", m.mode, ModeHelp)
	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestCustomKeybinds(t *testing.T) {
	m := CreateTestModel(t)
	loadCategories(t, m)

	keys := keybinds.NewDefaultRegistry()
	keys.Unbind(keybinds.ContextNormal, keybinds.ActionSwitchView)
	keys.Register(keybinds.ContextNormal, "ctrl+r", keybinds.ActionSwitchView)
	m.keys = keys

	m.redactInput.SetValue("John lives in NYC")
	press(t, m, "ctrl+s")
	AssertModelField(t, "switch shown", m.controller.Redact().ShowSwitch, true)

	press(t, m, "ctrl+t")
	AssertModelField(t, "state after unbound key", m.controller.State(), view.Redacting)

	press(t, m, "ctrl+r")
	AssertModelField(t, "state after rebound key", m.controller.State(), view.Restoring)

	if !strings.Contains(m.renderHelpLine(), "ctrl+r switch view") {
		t.Errorf("help line does not show rebound key: %q", m.renderHelpLine())
	}
}
