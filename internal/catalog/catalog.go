// Package catalog loads the entity categories offered by the service and
// tracks which of them the user has selected.
package catalog

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/types"
	"golang.org/x/sync/singleflight"
)

// DefaultCategories is used whenever the service configuration is unavailable
var DefaultCategories = []string{"PERSON", "ORG", "EMAIL", "PHONE", "ADDRESS"}

// Requester is the subset of client.Client the loader needs
type Requester interface {
	Do(ctx context.Context, method, path string, body any) (*types.Response, error)
}

// Loader fetches the category list
type Loader struct {
	requester Requester
	logger    *log.Logger
	group     singleflight.Group
}

// NewLoader creates a loader
func NewLoader(requester Requester, logger *log.Logger) *Loader {
	return &Loader{requester: requester, logger: logger}
}

// Defaults returns a fresh copy of DefaultCategories
func Defaults() []string {
	out := make([]string, len(DefaultCategories))
	copy(out, DefaultCategories)
	return out
}

// LoadCategories never fails: any problem yields the default list.
// Concurrent callers share a single request.
func (l *Loader) LoadCategories(ctx context.Context) []string {
	v, _, _ := l.group.Do("config", func() (any, error) {
		return l.fetch(ctx), nil
	})

	names := v.([]string)
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func (l *Loader) fetch(ctx context.Context) []string {
	resp, err := l.requester.Do(ctx, http.MethodGet, client.ConfigPath, nil)
	if err != nil {
		l.logger.Error("failed to load config", "err", err)
		return Defaults()
	}

	if !client.IsSuccessStatus(resp.Status) {
		l.logger.Warn("config endpoint not available, using defaults", "status", resp.Status)
		return Defaults()
	}

	var cfg types.ConfigResponse
	if err := client.DecodeJSON(resp, &cfg); err != nil {
		l.logger.Warn("malformed config, using defaults", "err", err)
		return Defaults()
	}
	if len(cfg.EntityTypes) == 0 {
		l.logger.Warn("config has no entity types, using defaults")
		return Defaults()
	}

	return cfg.EntityTypes
}
