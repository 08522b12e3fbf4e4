package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redactcli/internal/catalog"
	"github.com/studiowebux/redactcli/internal/view"
	"github.com/studiowebux/redactcli/internal/workflow"
)

// loadCategoriesCmd fetches the catalog; failures fall back to the defaults
func (m *Model) loadCategoriesCmd() tea.Cmd {
	loader := m.loader
	ctx := m.ctx
	return func() tea.Msg {
		return categoriesLoadedMsg{names: loader.LoadCategories(ctx)}
	}
}

// applyCategories installs the catalog, then hydrates from the stored state
func (m *Model) applyCategories(names []string) {
	m.selection = catalog.NewSelection(names)
	m.categoriesLoaded = true
	m.categoryIndex = 0

	if state, ok := m.store.Load(m.ctx); ok {
		m.controller.Hydrate(state, m.selection)
		m.redactInput.SetValue(m.controller.Redact().Input)
	}

	m.refreshOutput()
	m.setStatus(fmt.Sprintf("%d entity categories available", len(m.selection.All())))
}

// submitRedact starts a redaction unless one is already in flight
func (m *Model) submitRedact() tea.Cmd {
	if !m.controller.Begin(view.ControlRedact) {
		return nil
	}

	text := m.redactInput.Value()
	categories := m.selection.Selected()
	m.controller.SetRedactInput(text)
	m.controller.SetRedactOutput(workflow.MsgProcessing, false)
	m.refreshOutput()
	m.setStatus("Redacting...")

	redactor := m.redactor
	ctx := m.ctx
	work := func() tea.Msg {
		return redactDoneMsg{outcome: redactor.Redact(ctx, text, categories)}
	}
	return tea.Batch(m.spinner.Tick, work)
}

func (m *Model) applyRedact(outcome workflow.RedactOutcome) {
	m.controller.End(view.ControlRedact)

	if !outcome.OK() {
		m.controller.SetRedactOutput(outcome.Message, true)
		m.refreshOutput()
		m.setError(outcome.Message, outcome.Detail)
		return
	}

	m.controller.SetRedactOutput(outcome.AnonymizedText, false)
	if outcome.ShowSwitch {
		m.controller.ShowSwitch()
	}
	m.refreshOutput()
	m.setStatus(fmt.Sprintf("Redacted %d entities (ctrl+t to restore)", len(outcome.Entities)))
}

// submitRestore starts a restoration unless one is already in flight
func (m *Model) submitRestore() tea.Cmd {
	if !m.controller.Begin(view.ControlRestore) {
		return nil
	}

	text := m.restoreInput.Value()
	m.controller.SetRestoreInput(text)
	m.setStatus(workflow.MsgProcessing)

	restorer := m.restorer
	ctx := m.ctx
	work := func() tea.Msg {
		return restoreDoneMsg{outcome: restorer.Restore(ctx, text)}
	}
	return tea.Batch(m.spinner.Tick, work)
}

func (m *Model) applyRestore(outcome workflow.RestoreOutcome) {
	m.controller.End(view.ControlRestore)

	if !outcome.OK() {
		m.setError(outcome.Message, outcome.Detail)
		return
	}

	m.restoreInput.SetValue(outcome.RestoredText)
	m.controller.SetRestoreInput(outcome.RestoredText)
	m.setStatus("Text restored")
}

// switchView toggles between the redact and restore views
func (m *Model) switchView() tea.Cmd {
	state, _ := m.store.Load(m.ctx)

	if m.controller.State() == view.Restoring {
		m.controller.SwitchToRedact(state)
		if state != nil {
			m.redactInput.SetValue(m.controller.Redact().Input)
		}
		m.refreshOutput()
		m.setFocus(FocusInput)
		m.setStatus("Redact view")
		return nil
	}

	if err := m.controller.SwitchToRestore(state); err != nil {
		return m.queueNotice(noticeMsg{message: err.Error()})
	}

	m.refreshMappings()
	m.setFocus(FocusInput)
	m.setStatus("Restore view")
	return nil
}

// copyCmd copies the current result to the clipboard
func (m *Model) copyCmd() tea.Cmd {
	var text, what string
	if m.controller.State() == view.Restoring {
		text, what = m.restoreInput.Value(), "restore text"
	} else {
		p := m.controller.Redact()
		if p.OutputIsError {
			return nil
		}
		text, what = p.Output, "anonymized text"
	}

	if strings.TrimSpace(text) == "" {
		m.setStatus("Nothing to copy")
		return nil
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return clipboardMsg{err: err}
		}
		return clipboardMsg{status: "Copied " + what + " to clipboard"}
	}
}

// addCustomCategory adds and selects a user-defined category
func (m *Model) addCustomCategory(name string) {
	normalized, added := m.selection.AddCustom(name)
	switch {
	case normalized == "":
		m.setStatus("Category name is empty")
	case added:
		m.categoryIndex = len(m.selection.All()) - 1
		m.setStatus("Added category " + normalized)
	default:
		m.setStatus("Category " + normalized + " already exists")
	}
}
