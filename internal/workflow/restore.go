package workflow

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/types"
)

// RestoreOutcome is the result of a restore request
type RestoreOutcome struct {
	Kind    Kind
	Message string
	// Detail is a diagnostic hint for transport failures
	Detail string

	// RestoredText replaces the restore input on success
	RestoredText string
}

// OK reports whether the request succeeded
func (o RestoreOutcome) OK() bool {
	return o.Kind == KindNone
}

// Restorer resolves placeholder tokens using the stored entity mapping.
// Failures other than empty input are reported through a blocking notifier.
type Restorer struct {
	requester Requester
	store     StateStore
	notifier  interact.Notifier
	logger    *log.Logger
}

// NewRestorer creates a restore handler
func NewRestorer(requester Requester, store StateStore, notifier interact.Notifier, logger *log.Logger) *Restorer {
	return &Restorer{requester: requester, store: store, notifier: notifier, logger: logger}
}

// Restore restores text against the session's stored mapping
func (r *Restorer) Restore(ctx context.Context, text string) RestoreOutcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return RestoreOutcome{Kind: KindValidation, Message: MsgEmptyInput}
	}

	state, ok := r.store.Load(ctx)
	if !ok || !state.HasMappings() {
		return r.fail(ctx, KindState, MsgNoMapping)
	}

	return r.send(ctx, text, state.Entities)
}

// RestoreWith restores text against an explicit mapping, bypassing the store
func (r *Restorer) RestoreWith(ctx context.Context, text string, entities []types.EntityMapping) RestoreOutcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return RestoreOutcome{Kind: KindValidation, Message: MsgEmptyInput}
	}
	if len(entities) == 0 {
		return r.fail(ctx, KindState, MsgNoMapping)
	}

	return r.send(ctx, text, entities)
}

func (r *Restorer) send(ctx context.Context, text string, entities []types.EntityMapping) RestoreOutcome {
	resp, err := r.requester.Do(ctx, http.MethodPost, client.RestorePath, types.RestoreRequest{
		AnonymizedText: text,
		Entities:       entities,
	})
	if err != nil {
		kind, msg := classify(r.logger, "restore", err)
		o := r.fail(ctx, kind, msgFor(kind, msgRestorePrefix, msg))
		o.Detail = client.Diagnose(err)
		return o
	}

	if !client.IsSuccessStatus(resp.Status) {
		msg := client.ErrorMessage(resp)
		r.logger.Warn("restore rejected", "status", resp.Status, "err", msg)
		return r.fail(ctx, KindService, msgRestorePrefix+msg)
	}

	var result types.RestoreResponse
	if err := client.DecodeJSON(resp, &result); err != nil {
		r.logger.Warn("restore response unreadable", "err", err)
		return r.fail(ctx, KindService, msgRestorePrefix+err.Error())
	}

	r.logger.Debug("restore succeeded")
	return RestoreOutcome{Kind: KindNone, RestoredText: result.RestoredText}
}

func (r *Restorer) fail(ctx context.Context, kind Kind, message string) RestoreOutcome {
	if r.notifier != nil {
		r.notifier.Notify(ctx, message)
	}
	return RestoreOutcome{Kind: kind, Message: message}
}
