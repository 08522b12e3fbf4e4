package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/studiowebux/redactcli/internal/catalog"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/session"
	"github.com/studiowebux/redactcli/internal/workflow"
)

// Streams are the standard streams a command reads and writes
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Options configures an App
type Options struct {
	Settings config.Settings
	Logger   *log.Logger
	Streams  Streams
	Prompter interact.Prompter
	Notifier interact.Notifier
	// Store overrides the configured session backend
	Store *session.Store
}

// App wires the command-line workflows
type App struct {
	settings config.Settings
	logger   *log.Logger
	streams  Streams

	store    *session.Store
	client   *client.Client
	catalog  *catalog.Loader
	redactor *workflow.Redactor
	restorer *workflow.Restorer
}

// OutcomeError carries a workflow failure to the process exit path
type OutcomeError struct {
	Kind    workflow.Kind
	Message string
	Detail  string
}

func (e *OutcomeError) Error() string {
	return e.Message
}

// IsOutcome reports whether err is a workflow failure whose message is
// already user-facing.
func IsOutcome(err error) bool {
	var oe *OutcomeError
	return errors.As(err, &oe)
}

// New opens the session store and builds the client and workflows
func New(ctx context.Context, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	store := opts.Store
	if store == nil {
		var err error
		store, err = session.Open(ctx, opts.Settings.Session, logger)
		if err != nil {
			return nil, err
		}
	}

	c, err := client.FromSettings(opts.Settings, opts.Prompter, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		settings: opts.Settings,
		logger:   logger,
		streams:  opts.Streams,
		store:    store,
		client:   c,
		catalog:  catalog.NewLoader(c, logger),
		redactor: workflow.NewRedactor(c, store, logger),
		restorer: workflow.NewRestorer(c, store, opts.Notifier, logger),
	}, nil
}

// Close releases the session store
func (a *App) Close() error {
	return a.store.Close()
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func outcomeError(kind workflow.Kind, message, detail string) error {
	return &OutcomeError{Kind: kind, Message: message, Detail: detail}
}

func (a *App) progress(format string, args ...any) {
	fmt.Fprintf(a.streams.Err, format+"\n", args...)
}
