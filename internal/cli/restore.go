package cli

import (
	"context"

	"github.com/studiowebux/redactcli/internal/entities"
	"github.com/studiowebux/redactcli/internal/workflow"
)

// RestoreOptions are the flags of the restore command
type RestoreOptions struct {
	File    string
	Content string
	// Entities is a mapping file used instead of the session state
	Entities string
	Output   string
	NoPrint  bool
}

// Restore replaces placeholders in the input with their original values
func (a *App) Restore(ctx context.Context, opts RestoreOptions) error {
	input, err := ReadInput(opts.File, opts.Content, a.stdin())
	if err != nil {
		return err
	}

	var outcome workflow.RestoreOutcome
	if opts.Entities != "" {
		list, err := entities.Load(opts.Entities)
		if err != nil {
			return err
		}
		outcome = a.restorer.RestoreWith(ctx, input, list)
	} else {
		outcome = a.restorer.Restore(ctx, input)
	}

	if !outcome.OK() {
		return outcomeError(outcome.Kind, outcome.Message, outcome.Detail)
	}

	return WriteOutput(a.streams.Out, outcome.RestoredText, opts.NoPrint, opts.Output)
}
