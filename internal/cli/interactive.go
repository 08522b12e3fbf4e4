package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// InteractiveOptions are the flags of the interactive command
type InteractiveOptions struct {
	File        string
	Content     string
	EntityTypes []string
	NoPrompt    bool
}

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ruleWidth    = 60
)

// Interactive redacts once, then restores every chunk pasted on stdin
// (terminated by EOF) against the session mapping until an empty chunk.
func (a *App) Interactive(ctx context.Context, opts InteractiveOptions) error {
	var stdin io.Reader
	if opts.File == "" && opts.Content == "" {
		stdin = a.streams.In
	}
	input, err := ReadInput(opts.File, opts.Content, stdin)
	if err != nil {
		return err
	}

	categories, err := a.resolveCategories(ctx, opts.EntityTypes, false)
	if err != nil {
		return err
	}

	a.progress("Anonymizing text...")
	outcome := a.redactor.Redact(ctx, input, categories)
	if !outcome.OK() {
		return outcomeError(outcome.Kind, outcome.Message, outcome.Detail)
	}

	a.section("ANONYMIZED TEXT:")
	fmt.Fprintln(a.streams.Out, outcome.AnonymizedText)
	fmt.Fprintln(a.streams.Err, rule("="))

	a.printInstructions(opts.NoPrompt)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunk, err := readUntilEOF(a.streams.In)
		if err != nil {
			return err
		}
		if strings.TrimSpace(chunk) == "" {
			break
		}

		a.progress("Restoring text...")
		restored := a.restorer.Restore(ctx, chunk)
		text := restored.RestoredText
		if !restored.OK() {
			fmt.Fprintln(a.streams.Err, warningStyle.Render("Warning: some placeholders could not be restored"))
			text = chunk
		}

		a.section("RESTORED TEXT:")
		fmt.Fprintln(a.streams.Out, text)
		fmt.Fprintln(a.streams.Err, rule("="))

		if opts.NoPrompt {
			fmt.Fprintln(a.streams.Err, "\nWaiting for input...")
		} else {
			fmt.Fprintln(a.streams.Err, "\nReady for next input (Ctrl+D to restore, Ctrl+C to exit)")
		}
	}

	a.progress("Exiting")
	return nil
}

func (a *App) section(title string) {
	fmt.Fprintln(a.streams.Err, "\n"+rule("="))
	fmt.Fprintln(a.streams.Err, bannerStyle.Render(title))
	fmt.Fprintln(a.streams.Err, rule("="))
}

func (a *App) printInstructions(noPrompt bool) {
	w := a.streams.Err
	if noPrompt {
		fmt.Fprintln(w, "\nWaiting for input...")
		return
	}

	fmt.Fprintln(w, "\n"+rule("-"))
	fmt.Fprintln(w, bannerStyle.Render("Anonymization complete"))
	fmt.Fprintln(w, rule("-"))
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  1. Copy the anonymized text above")
	fmt.Fprintln(w, "  2. Process it externally")
	fmt.Fprintln(w, "  3. Paste the processed text below")
	fmt.Fprintln(w, "  4. Press Ctrl+D (Unix) or Ctrl+Z (Windows) to restore")
	fmt.Fprintln(w, rule("-"))
	fmt.Fprintln(w, "\nPaste your processed text here:")
}

func rule(ch string) string {
	return strings.Repeat(ch, ruleWidth)
}

// readUntilEOF reads lines until EOF
func readUntilEOF(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}
