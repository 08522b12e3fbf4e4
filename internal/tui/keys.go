package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/keybinds"
	"github.com/studiowebux/redactcli/internal/view"
)

// handleKeyPress routes a key to the active mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keys.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.cancelCredential()
		m.releaseNotices()
		return tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeAddCategory:
		return m.handleAddCategoryKeys(msg)
	case ModeCredential:
		return m.handleCredentialKeys(msg)
	case ModeNotice:
		return m.handleNoticeKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keys.Match(keybinds.ContextNormal, msg.String())

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		return nil

	case keybinds.ActionFocusNext:
		m.cycleFocus(1)
		return nil

	case keybinds.ActionFocusPrev:
		m.cycleFocus(-1)
		return nil

	case keybinds.ActionSubmit:
		if m.controller.State() == view.Restoring {
			return m.submitRestore()
		}
		return m.submitRedact()

	case keybinds.ActionSwitchView:
		return m.switchView()

	case keybinds.ActionCopy:
		return m.copyCmd()
	}

	if m.focus == FocusCategories && m.controller.State() == view.Redacting {
		return m.handleCategoryKeys(msg)
	}

	return m.updateFocused(msg)
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) tea.Cmd {
	names := m.selection.All()
	action, _ := m.keys.Match(keybinds.ContextCategories, msg.String())

	switch action {
	case keybinds.ActionNavigateUp:
		if m.categoryIndex > 0 {
			m.categoryIndex--
		}
	case keybinds.ActionNavigateDown:
		if m.categoryIndex < len(names)-1 {
			m.categoryIndex++
		}
	case keybinds.ActionToggleCategory:
		if m.categoryIndex < len(names) {
			m.selection.Toggle(names[m.categoryIndex])
		}
	case keybinds.ActionSelectAll:
		m.selection.SetSelected(names)
	case keybinds.ActionSelectNone:
		m.selection.SetSelected(nil)
	case keybinds.ActionAddCategory:
		m.categoryInput.SetValue("")
		m.mode = ModeAddCategory
		return m.categoryInput.Focus()
	}
	return nil
}

func (m *Model) handleAddCategoryKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keys.Match(keybinds.ContextModal, msg.String())

	switch action {
	case keybinds.ActionCancel:
		m.categoryInput.Blur()
		m.mode = ModeNormal
		return m.resumeDialogs()
	case keybinds.ActionConfirm:
		m.addCustomCategory(m.categoryInput.Value())
		m.categoryInput.Blur()
		m.mode = ModeNormal
		return m.resumeDialogs()
	}

	var cmd tea.Cmd
	m.categoryInput, cmd = m.categoryInput.Update(msg)
	return cmd
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	if action, _ := m.keys.Match(keybinds.ContextHelp, msg.String()); action == keybinds.ActionCloseModal {
		m.mode = ModeNormal
		return m.resumeDialogs()
	}
	return nil
}

// queueCredentialPrompt records a request waiting for a credential
func (m *Model) queueCredentialPrompt(reply chan<- interact.Credential) tea.Cmd {
	m.credentialReplies = append(m.credentialReplies, reply)
	return m.resumeDialogs()
}

// queueNotice records a notification waiting to be shown
func (m *Model) queueNotice(n noticeMsg) tea.Cmd {
	m.notices = append(m.notices, n)
	return m.resumeDialogs()
}

// resumeDialogs shows the next pending dialog unless one is still open.
// Credential prompts come first since requests are blocked on them.
func (m *Model) resumeDialogs() tea.Cmd {
	switch m.mode {
	case ModeAddCategory:
		return nil
	case ModeCredential:
		if len(m.credentialReplies) > 0 {
			return nil
		}
	case ModeNotice:
		if len(m.notices) > 0 {
			return nil
		}
	}

	switch {
	case len(m.credentialReplies) > 0:
		return m.openCredentialForm()
	case len(m.notices) > 0:
		m.mode = ModeNotice
	case m.mode == ModeCredential || m.mode == ModeNotice:
		m.mode = ModeNormal
	}
	return nil
}

// openCredentialForm shows an empty credential form
func (m *Model) openCredentialForm() tea.Cmd {
	m.credentialField = 0
	m.usernameInput.SetValue("")
	m.passwordInput.SetValue("")
	m.passwordInput.Blur()
	m.mode = ModeCredential
	return m.usernameInput.Focus()
}

func (m *Model) handleCredentialKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keys.Match(keybinds.ContextModal, msg.String())

	switch action {
	case keybinds.ActionCancel:
		m.cancelCredential()
		return m.resumeDialogs()

	case keybinds.ActionNextField:
		return m.toggleCredentialField()

	case keybinds.ActionConfirm:
		if m.credentialField == 0 {
			return m.toggleCredentialField()
		}
		m.answerCredential(interact.Credential{
			Username: m.usernameInput.Value(),
			Password: m.passwordInput.Value(),
		})
		return m.resumeDialogs()
	}

	var cmd tea.Cmd
	if m.credentialField == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return cmd
}

func (m *Model) toggleCredentialField() tea.Cmd {
	if m.credentialField == 0 {
		m.credentialField = 1
		m.usernameInput.Blur()
		return m.passwordInput.Focus()
	}
	m.credentialField = 0
	m.passwordInput.Blur()
	return m.usernameInput.Focus()
}

// answerCredential replies to every waiting request and clears the form.
// All pending prompts come from the same service, so one answer serves them all.
func (m *Model) answerCredential(cred interact.Credential) {
	for _, reply := range m.credentialReplies {
		reply <- cred
	}
	m.credentialReplies = nil
	m.usernameInput.SetValue("")
	m.passwordInput.SetValue("")
	m.usernameInput.Blur()
	m.passwordInput.Blur()
}

// cancelCredential answers pending prompts with an empty credential
func (m *Model) cancelCredential() {
	if len(m.credentialReplies) > 0 {
		m.answerCredential(interact.Credential{})
	}
}

// releaseNotices unblocks every caller waiting on a notice
func (m *Model) releaseNotices() {
	for _, n := range m.notices {
		if n.done != nil {
			close(n.done)
		}
	}
	m.notices = nil
}

func (m *Model) handleNoticeKeys(msg tea.KeyMsg) tea.Cmd {
	switch action, _ := m.keys.Match(keybinds.ContextModal, msg.String()); action {
	case keybinds.ActionConfirm, keybinds.ActionCancel:
		return m.dismissNotice()
	}
	return nil
}

// dismissNotice releases the waiting caller and shows the next dialog
func (m *Model) dismissNotice() tea.Cmd {
	if len(m.notices) > 0 {
		current := m.notices[0]
		m.notices = m.notices[1:]
		if current.done != nil {
			close(current.done)
		}
	}
	return m.resumeDialogs()
}

// cycleFocus moves focus among the panels of the active view
func (m *Model) cycleFocus(step int) {
	order := []Focus{FocusInput, FocusCategories, FocusOutput}
	if m.controller.State() == view.Restoring {
		order = []Focus{FocusInput, FocusOutput}
	}

	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	m.setFocus(order[idx])
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.redactInput.Blur()
	m.restoreInput.Blur()

	if f != FocusInput {
		return
	}
	if m.controller.State() == view.Restoring {
		m.restoreInput.Focus()
	} else {
		m.redactInput.Focus()
	}
}

// updateFocused forwards a message to the focused widget
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	restoring := m.controller.State() == view.Restoring

	switch m.focus {
	case FocusInput:
		if restoring {
			m.restoreInput, cmd = m.restoreInput.Update(msg)
		} else {
			m.redactInput, cmd = m.redactInput.Update(msg)
		}
	case FocusOutput:
		if restoring {
			m.mappings, cmd = m.mappings.Update(msg)
		} else {
			m.output, cmd = m.output.Update(msg)
		}
	}
	return cmd
}
