// Package interact abstracts the blocking user interactions the workflows need:
// collecting a credential after an authorization failure and showing a
// notification the user must acknowledge.
package interact

import (
	"context"
	"sync"
)

// Credential is a username/password pair typed by the user
type Credential struct {
	Username string
	Password string
}

// Complete reports whether both fields are non-empty
func (c Credential) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// Prompter collects a credential. A cancelled prompt returns an empty credential.
type Prompter interface {
	PromptCredential(ctx context.Context) (Credential, error)
}

// Notifier shows a blocking notification
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(ctx context.Context) (Credential, error)

func (f PrompterFunc) PromptCredential(ctx context.Context) (Credential, error) {
	return f(ctx)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// NoPrompt never yields a credential; used for non-interactive runs
var NoPrompt Prompter = PrompterFunc(func(context.Context) (Credential, error) {
	return Credential{}, nil
})

// Scripted is a deterministic Prompter and Notifier for tests
type Scripted struct {
	mu            sync.Mutex
	Credential    Credential
	Err           error
	Prompts       int
	Notifications []string
}

func (s *Scripted) PromptCredential(context.Context) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts++
	return s.Credential, s.Err
}

func (s *Scripted) Notify(_ context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = append(s.Notifications, message)
}

// PromptCount returns how many times a credential was requested
func (s *Scripted) PromptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Prompts
}

// Notified returns a copy of the notifications shown so far
func (s *Scripted) Notified() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Notifications))
	copy(out, s.Notifications)
	return out
}
