package tui

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/logging"
	"github.com/studiowebux/redactcli/internal/session"
	"github.com/studiowebux/redactcli/internal/types"
	"github.com/studiowebux/redactcli/internal/workflow"
)

func TestBridge_DetachedIsInert(t *testing.T) {
	b := NewBridge()

	cred, err := b.PromptCredential(context.Background())
	if err != nil || cred.Complete() {
		t.Errorf("detached bridge returned %+v, %v", cred, err)
	}
	b.Notify(context.Background(), "ignored")
}

func TestBridge_PromptCancelledByContext(t *testing.T) {
	b := NewBridge()
	b.AttachFunc(func(tea.Msg) {})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := b.PromptCredential(ctx); err == nil {
		t.Error("expected context error")
	}
}

func TestCredentialModal_AnswersWaitingPrompt(t *testing.T) {
	m := CreateTestModel(t)
	msgs := make(chan tea.Msg, 1)
	b := NewBridge()
	b.AttachFunc(func(msg tea.Msg) { msgs <- msg })

	result := make(chan interact.Credential, 1)
	go func() {
		cred, _ := b.PromptCredential(context.Background())
		result <- cred
	}()

	m.Update(<-msgs)
	AssertModelField(t, "mode", m.mode, ModeCredential)

	typeText(m, "admin")
	typeKeys(m, "enter")
	AssertModelField(t, "field", m.credentialField, 1)
	typeText(m, "secret")
	press(t, m, "enter")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	got := <-result
	AssertModelField(t, "username", got.Username, "admin")
	AssertModelField(t, "password", got.Password, "secret")
	AssertModelField(t, "password cleared", m.passwordInput.Value(), "")
}

func TestCredentialModal_EscAnswersEmpty(t *testing.T) {
	m := CreateTestModel(t)
	reply := make(chan interact.Credential, 1)

	m.Update(credentialPromptMsg{reply: reply})
	typeText(m, "admin")
	press(t, m, "esc")

	got := <-reply
	AssertModelField(t, "complete", got.Complete(), false)
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestNoticeModal_QueuesAndReleases(t *testing.T) {
	m := CreateTestModel(t)
	first := make(chan struct{})
	second := make(chan struct{})

	m.Update(noticeMsg{message: "one", done: first})
	m.Update(noticeMsg{message: "two", done: second})
	AssertModelField(t, "mode", m.mode, ModeNotice)

	press(t, m, "enter")
	select {
	case <-first:
	default:
		t.Fatal("first notice should be released")
	}
	AssertModelField(t, "still notice", m.mode, ModeNotice)
	AssertModelField(t, "current", m.notices[0].message, "two")

	press(t, m, "enter")
	<-second
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

// authService rejects requests without admin:secret
func authService(t *testing.T, requests *int32) *httptest.Server {
	t.Helper()
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		if r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(types.ErrorResponse{Error: "unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(types.AnonymizeResponse{AnonymizedText: "<PERSON_1>", Entities: []types.EntityMapping{{Key: "<PERSON_1>", Values: []string{"John"}}}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRedact_PromptsForCredentialThroughModal(t *testing.T) {
	var requests int32
	srv := authService(t, &requests)
	m, bridge := createTestModelWithBridge(t, srv.URL, session.NewStore(session.NewMemoryBackend(), logging.Discard()))
	m.applyCategories([]string{"PERSON"})

	msgs := make(chan tea.Msg, 4)
	bridge.AttachFunc(func(msg tea.Msg) { msgs <- msg })

	outcome := make(chan workflow.RedactOutcome, 1)
	go func() {
		outcome <- m.redactor.Redact(context.Background(), "John", []string{"PERSON"})
	}()

	m.Update(<-msgs)
	AssertModelField(t, "mode", m.mode, ModeCredential)
	typeText(m, "admin")
	typeKeys(m, "tab")
	typeText(m, "secret")
	press(t, m, "enter")

	got := <-outcome
	AssertModelField(t, "ok", got.OK(), true)
	AssertModelField(t, "requests", atomic.LoadInt32(&requests), int32(2))

	// cached credential: no further prompt
	again := m.redactor.Redact(context.Background(), "John", []string{"PERSON"})
	AssertModelField(t, "ok again", again.OK(), true)
	AssertModelField(t, "requests", atomic.LoadInt32(&requests), int32(3))
	select {
	case msg := <-msgs:
		t.Errorf("unexpected message %T", msg)
	default:
	}
}

func TestDialogs_NoticeWaitsForCredentialForm(t *testing.T) {
	m := CreateTestModel(t)
	reply := make(chan interact.Credential, 1)
	done := make(chan struct{})

	m.Update(credentialPromptMsg{reply: reply})
	m.Update(noticeMsg{message: "还原失败: boom", done: done})
	AssertModelField(t, "mode", m.mode, ModeCredential)

	typeText(m, "admin")
	typeKeys(m, "tab")
	typeText(m, "secret")
	typeKeys(m, "enter")

	got := <-reply
	AssertModelField(t, "username", got.Username, "admin")
	AssertModelField(t, "mode after answer", m.mode, ModeNotice)

	typeKeys(m, "enter")
	select {
	case <-done:
	default:
		t.Fatal("notice caller should be released")
	}
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestDialogs_CredentialFormWaitsForNotice(t *testing.T) {
	m := CreateTestModel(t)
	reply := make(chan interact.Credential, 1)
	done := make(chan struct{})

	m.Update(noticeMsg{message: "还原失败: boom", done: done})
	m.Update(credentialPromptMsg{reply: reply})
	AssertModelField(t, "mode", m.mode, ModeNotice)

	typeKeys(m, "enter")
	<-done
	AssertModelField(t, "mode after dismiss", m.mode, ModeCredential)

	typeText(m, "admin")
	typeKeys(m, "tab")
	typeText(m, "secret")
	typeKeys(m, "enter")

	got := <-reply
	AssertModelField(t, "password", got.Password, "secret")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "pending", len(m.credentialReplies), 0)
}

func TestDialogs_OverlappingPromptsShareOneAnswer(t *testing.T) {
	m := CreateTestModel(t)
	first := make(chan interact.Credential, 1)
	second := make(chan interact.Credential, 1)

	m.Update(credentialPromptMsg{reply: first})
	m.Update(credentialPromptMsg{reply: second})
	select {
	case cred := <-first:
		t.Fatalf("first prompt answered early with %+v", cred)
	default:
	}

	typeText(m, "admin")
	typeKeys(m, "tab")
	typeText(m, "secret")
	typeKeys(m, "enter")

	for i, reply := range []chan interact.Credential{first, second} {
		got := <-reply
		if !got.Complete() || got.Username != "admin" {
			t.Errorf("prompt %d got %+v", i+1, got)
		}
	}
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestDialogs_WaitForAddCategory(t *testing.T) {
	m := CreateTestModel(t)
	loadCategories(t, m)
	reply := make(chan interact.Credential, 1)

	press(t, m, "tab")
	typeKeys(m, "+")
	AssertModelField(t, "mode", m.mode, ModeAddCategory)

	m.Update(credentialPromptMsg{reply: reply})
	AssertModelField(t, "mode while typing", m.mode, ModeAddCategory)

	typeKeys(m, "esc")
	AssertModelField(t, "mode after close", m.mode, ModeCredential)

	typeKeys(m, "esc")
	got := <-reply
	AssertModelField(t, "complete", got.Complete(), false)
	AssertModelField(t, "mode", m.mode, ModeNormal)
}
