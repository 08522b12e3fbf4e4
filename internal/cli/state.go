package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/redactcli/internal/catalog"
	"github.com/studiowebux/redactcli/internal/view"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ShowState prints the stored session state as json or yaml.
// Output is syntax highlighted when stdout is a terminal.
func (a *App) ShowState(ctx context.Context, format string) error {
	state, ok := a.store.Load(ctx)
	if !ok {
		fmt.Fprintln(a.streams.Err, mutedStyle.Render("No state stored for session "+a.settings.Session.ID))
		return nil
	}

	var (
		data  []byte
		err   error
		lexer string
	)
	switch strings.ToLower(format) {
	case "yaml", "yml":
		data, err = yaml.Marshal(state)
		lexer = "yaml"
	case "", "json":
		data, err = json.MarshalIndent(state, "", "  ")
		lexer = "json"
	default:
		return fmt.Errorf("unsupported format %q (json, yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	return writeHighlighted(a.streams.Out, string(data), lexer, isTerminal(a.streams.Out))
}

// ClearState removes the stored session state
func (a *App) ClearState(ctx context.Context) error {
	a.store.Clear(ctx)
	a.progress("State cleared for session %s", a.settings.Session.ID)
	return nil
}

// Categories prints the category catalog, marking the ones selected by the
// last redaction (all of them when there is none).
func (a *App) Categories(ctx context.Context) error {
	sel := catalog.NewSelection(a.catalog.LoadCategories(ctx))
	if state, ok := a.store.Load(ctx); ok && len(state.EntityTypes) > 0 {
		sel.SetSelected(state.EntityTypes)
	}

	fmt.Fprintln(a.streams.Out, headerStyle.Render("Entity categories"))
	for _, name := range sel.All() {
		label := view.Sanitize(name)
		if sel.IsSelected(name) {
			fmt.Fprintln(a.streams.Out, selectedStyle.Render("  [x] "+label))
		} else {
			fmt.Fprintln(a.streams.Out, mutedStyle.Render("  [ ] "+label))
		}
	}
	return nil
}

func writeHighlighted(w io.Writer, source, lexer string, color bool) error {
	if color {
		if err := quick.Highlight(w, source, lexer, "terminal256", "monokai"); err == nil {
			if !strings.HasSuffix(source, "\n") {
				fmt.Fprintln(w)
			}
			return nil
		}
	}

	if _, err := io.WriteString(w, source); err != nil {
		return err
	}
	if !strings.HasSuffix(source, "\n") {
		fmt.Fprintln(w)
	}
	return nil
}
