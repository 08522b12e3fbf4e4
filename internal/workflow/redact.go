package workflow

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/types"
)

// RedactOutcome is the result of a redact request
type RedactOutcome struct {
	Kind    Kind
	Message string
	// Detail is a diagnostic hint for transport failures
	Detail string

	AnonymizedText string
	Entities       []types.EntityMapping
	// ShowSwitch is set when the restore view became reachable
	ShowSwitch bool
}

// OK reports whether the request succeeded
func (o RedactOutcome) OK() bool {
	return o.Kind == KindNone
}

// Redactor submits text for anonymization and records the result
type Redactor struct {
	requester Requester
	store     StateStore
	logger    *log.Logger
}

// NewRedactor creates a redact handler
func NewRedactor(requester Requester, store StateStore, logger *log.Logger) *Redactor {
	return &Redactor{requester: requester, store: store, logger: logger}
}

// Redact validates the input, calls the service and, on success only,
// replaces the stored session state.
func (r *Redactor) Redact(ctx context.Context, text string, categories []string) RedactOutcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return RedactOutcome{Kind: KindValidation, Message: MsgEmptyInput}
	}
	if len(categories) == 0 {
		return RedactOutcome{Kind: KindValidation, Message: MsgNoCategory}
	}

	resp, err := r.requester.Do(ctx, http.MethodPost, client.AnonymizePath, types.AnonymizeRequest{
		Text:        text,
		EntityTypes: categories,
	})
	if err != nil {
		kind, msg := classify(r.logger, "anonymize", err)
		return RedactOutcome{Kind: kind, Message: msgFor(kind, msgErrorPrefix, msg), Detail: client.Diagnose(err)}
	}

	if !client.IsSuccessStatus(resp.Status) {
		msg := client.ErrorMessage(resp)
		r.logger.Warn("anonymize rejected", "status", resp.Status, "err", msg)
		return RedactOutcome{Kind: KindService, Message: msgErrorPrefix + msg}
	}

	var result types.AnonymizeResponse
	if err := client.DecodeJSON(resp, &result); err != nil {
		r.logger.Warn("anonymize response unreadable", "err", err)
		return RedactOutcome{Kind: KindService, Message: msgErrorPrefix + err.Error()}
	}

	r.store.Save(ctx, types.SessionState{
		OriginalText:   text,
		AnonymizedText: result.AnonymizedText,
		Entities:       result.Entities,
		EntityTypes:    append([]string(nil), categories...),
	})
	r.logger.Debug("anonymize succeeded", "entities", len(result.Entities))

	return RedactOutcome{
		Kind:           KindNone,
		AnonymizedText: result.AnonymizedText,
		Entities:       result.Entities,
		ShowSwitch:     true,
	}
}

// classify separates failures where the service was never reached from
// local request errors.
func classify(logger *log.Logger, op string, err error) (Kind, string) {
	if errors.Is(err, client.ErrTransport) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Warn(op+" failed", "err", err, "hint", client.Diagnose(err))
		return KindTransport, MsgUnreachable
	}
	logger.Error(op+" failed", "err", err)
	return KindService, err.Error()
}

func msgFor(kind Kind, prefix, msg string) string {
	if kind == KindTransport {
		return msg
	}
	return prefix + msg
}
