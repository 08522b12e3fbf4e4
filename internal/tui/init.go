package tui

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/studiowebux/redactcli/internal/catalog"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/keybinds"
	"github.com/studiowebux/redactcli/internal/session"
	"github.com/studiowebux/redactcli/internal/view"
	"github.com/studiowebux/redactcli/internal/workflow"
)

// Deps are the collaborators the TUI drives
type Deps struct {
	Logger    *log.Logger
	Store     *session.Store
	Requester workflow.Requester
	Bridge    *Bridge
	SessionID string
	Keybinds  *keybinds.Registry
}

// New creates a new TUI model
func New(ctx context.Context, deps Deps) (Model, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	bridge := deps.Bridge
	if bridge == nil {
		bridge = NewBridge()
	}
	keys := deps.Keybinds
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}

	redactInput := textarea.New()
	redactInput.Placeholder = "Paste the text to redact..."
	redactInput.CharLimit = MaxInputLength
	redactInput.ShowLineNumbers = false
	redactInput.Focus()

	restoreInput := textarea.New()
	restoreInput.Placeholder = "Paste the processed text containing placeholders..."
	restoreInput.CharLimit = MaxInputLength
	restoreInput.ShowLineNumbers = false

	categoryInput := textinput.New()
	categoryInput.Placeholder = "PRODUCT"
	categoryInput.CharLimit = MaxCategoryLength

	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '•'

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleWarning

	m := Model{
		ctx:           ctx,
		logger:        logger,
		store:         deps.Store,
		loader:        catalog.NewLoader(deps.Requester, logger),
		redactor:      workflow.NewRedactor(deps.Requester, deps.Store, logger),
		restorer:      workflow.NewRestorer(deps.Requester, deps.Store, bridge, logger),
		controller:    view.NewController(),
		selection:     catalog.NewSelection(nil),
		sessionID:     deps.SessionID,
		keys:          keys,
		mode:          ModeNormal,
		focus:         FocusInput,
		redactInput:   redactInput,
		restoreInput:  restoreInput,
		output:        viewport.New(0, 0),
		mappings:      viewport.New(0, 0),
		spinner:       sp,
		categoryInput: categoryInput,
		usernameInput: usernameInput,
		passwordInput: passwordInput,
		statusMsg:     "Loading entity categories...",
	}

	return m, nil
}

// Run starts the TUI against the configured service and session store
func Run(ctx context.Context, settings config.Settings, logger *log.Logger) error {
	store, err := session.Open(ctx, settings.Session, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := keybinds.LoadOrDefault(filepath.Join(config.ConfigDir, keybinds.FileName))
	if err != nil {
		return err
	}

	bridge := NewBridge()
	c, err := client.FromSettings(settings, bridge, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := New(ctx, Deps{
		Logger:    logger,
		Store:     store,
		Requester: c,
		Bridge:    bridge,
		SessionID: settings.Session.ID,
		Keybinds:  keys,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(p)

	_, err = p.Run()
	return err
}
