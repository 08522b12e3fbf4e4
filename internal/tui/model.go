package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/studiowebux/redactcli/internal/catalog"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/keybinds"
	"github.com/studiowebux/redactcli/internal/session"
	"github.com/studiowebux/redactcli/internal/view"
	"github.com/studiowebux/redactcli/internal/workflow"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddCategory
	ModeCredential
	ModeNotice
	ModeHelp
)

// Focus identifies the panel receiving keys in ModeNormal
type Focus int

const (
	FocusInput Focus = iota
	FocusCategories
	FocusOutput
)

// Model represents the TUI state
type Model struct {
	// Core state
	ctx        context.Context
	logger     *log.Logger
	store      *session.Store
	loader     *catalog.Loader
	redactor   *workflow.Redactor
	restorer   *workflow.Restorer
	controller *view.Controller
	selection  *catalog.Selection
	sessionID  string
	keys       *keybinds.Registry

	mode  Mode
	focus Focus

	// Widgets
	redactInput  textarea.Model
	restoreInput textarea.Model
	output       viewport.Model
	mappings     viewport.Model
	spinner      spinner.Model

	// Category list
	categoriesLoaded bool
	categoryIndex    int
	categoryInput    textinput.Model

	// Credential modal; one answer serves every pending prompt
	usernameInput     textinput.Model
	passwordInput     textinput.Model
	credentialField   int
	credentialReplies []chan<- interact.Credential

	// Notification modal; queued notices wait for the current one
	notices []noticeMsg

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	detailMsg string
}

// Init loads the category catalog
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCategoriesCmd(), textarea.Blink)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case categoriesLoadedMsg:
		m.applyCategories(msg.names)

	case redactDoneMsg:
		m.applyRedact(msg.outcome)

	case restoreDoneMsg:
		m.applyRestore(msg.outcome)

	case credentialPromptMsg:
		cmd = m.queueCredentialPrompt(msg.reply)

	case noticeMsg:
		cmd = m.queueNotice(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.setError("Failed to copy: "+msg.err.Error(), "")
		} else {
			m.setStatus(msg.status)
		}

	case spinner.TickMsg:
		if m.busy() {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	default:
		cmd = m.updateFocused(msg)
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeAddCategory:
		return m.renderAddCategoryModal()
	case ModeCredential:
		return m.renderCredentialModal()
	case ModeNotice:
		return m.renderNoticeModal()
	default:
		return m.renderMain()
	}
}

// busy reports whether any service call is in flight
func (m *Model) busy() bool {
	return m.controller.Busy(view.ControlRedact) || m.controller.Busy(view.ControlRestore)
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.errorMsg = ""
	m.detailMsg = ""
}

func (m *Model) setError(msg, detail string) {
	m.errorMsg = msg
	m.detailMsg = detail
	m.statusMsg = ""
}

// Custom message types
type categoriesLoadedMsg struct {
	names []string
}

type redactDoneMsg struct {
	outcome workflow.RedactOutcome
}

type restoreDoneMsg struct {
	outcome workflow.RestoreOutcome
}

type clipboardMsg struct {
	status string
	err    error
}
