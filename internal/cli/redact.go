package cli

import (
	"context"
	"fmt"

	"github.com/studiowebux/redactcli/internal/entities"
)

// RedactOptions are the flags of the redact command
type RedactOptions struct {
	File    string
	Content string
	// EntityTypes defaults to the whole service catalog when empty
	EntityTypes    []string
	Pick           bool
	Output         string
	NoPrint        bool
	OutputEntities string
}

// Redact anonymizes the input, prints the result to stdout and the entity
// mapping to stderr, and records the session state.
func (a *App) Redact(ctx context.Context, opts RedactOptions) error {
	input, err := ReadInput(opts.File, opts.Content, a.stdin())
	if err != nil {
		return err
	}

	categories, err := a.resolveCategories(ctx, opts.EntityTypes, opts.Pick)
	if err != nil {
		return err
	}

	a.logger.Debug("redacting", "categories", categories)
	outcome := a.redactor.Redact(ctx, input, categories)
	if !outcome.OK() {
		return outcomeError(outcome.Kind, outcome.Message, outcome.Detail)
	}

	if err := WriteOutput(a.streams.Out, outcome.AnonymizedText, opts.NoPrint, opts.Output); err != nil {
		return err
	}

	if !opts.NoPrint {
		entities.Write(a.streams.Err, outcome.Entities)
	}

	if opts.OutputEntities != "" {
		if err := entities.Save(opts.OutputEntities, outcome.Entities); err != nil {
			return err
		}
		a.progress("Entities saved to %s", opts.OutputEntities)
	}

	return nil
}

func (a *App) resolveCategories(ctx context.Context, requested []string, pick bool) ([]string, error) {
	if !pick {
		if len(requested) > 0 {
			return requested, nil
		}
		return a.catalog.LoadCategories(ctx), nil
	}

	available := a.catalog.LoadCategories(ctx)
	preselected := requested
	if len(preselected) == 0 {
		if state, ok := a.store.Load(ctx); ok {
			preselected = state.EntityTypes
		}
	}

	chosen, err := PickCategories(available, preselected)
	if err != nil {
		return nil, fmt.Errorf("category selection: %w", err)
	}
	return chosen, nil
}
