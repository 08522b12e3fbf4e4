package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redactcli/internal/interact"
)

// credentialPromptMsg asks the UI to collect a credential
type credentialPromptMsg struct {
	reply chan<- interact.Credential
}

// noticeMsg asks the UI to show a blocking notification
type noticeMsg struct {
	message string
	done    chan<- struct{}
}

// Bridge lets workflow goroutines interact with the user through the
// running program. It implements interact.Prompter and interact.Notifier.
type Bridge struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewBridge creates a bridge that is inert until attached
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach routes messages to the program
func (b *Bridge) Attach(p *tea.Program) {
	b.AttachFunc(p.Send)
}

// AttachFunc routes messages to send
func (b *Bridge) AttachFunc(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

func (b *Bridge) sender() func(tea.Msg) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.send
}

// PromptCredential shows the credential modal and waits for the answer.
// A cancelled modal yields an empty credential.
func (b *Bridge) PromptCredential(ctx context.Context) (interact.Credential, error) {
	send := b.sender()
	if send == nil {
		return interact.Credential{}, nil
	}

	reply := make(chan interact.Credential, 1)
	send(credentialPromptMsg{reply: reply})

	select {
	case cred := <-reply:
		return cred, nil
	case <-ctx.Done():
		return interact.Credential{}, ctx.Err()
	}
}

// Notify shows the notification modal and waits until it is dismissed
func (b *Bridge) Notify(ctx context.Context, message string) {
	send := b.sender()
	if send == nil {
		return
	}

	done := make(chan struct{})
	send(noticeMsg{message: message, done: done})

	select {
	case <-done:
	case <-ctx.Done():
	}
}
