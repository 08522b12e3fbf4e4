package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/logging"
	"github.com/studiowebux/redactcli/internal/session"
	"github.com/studiowebux/redactcli/internal/types"
)

// testService mimics the redaction service for the sample sentence
func testService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(client.ConfigPath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.ConfigResponse{EntityTypes: []string{"PERSON", "LOCATION", "EMAIL"}})
	})
	mux.HandleFunc(client.AnonymizePath, func(w http.ResponseWriter, r *http.Request) {
		var req types.AnonymizeRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(types.AnonymizeResponse{
			AnonymizedText: strings.NewReplacer("John", "<PERSON_1>", "NYC", "<LOCATION_1>").Replace(req.Text),
			Entities: []types.EntityMapping{
				{Key: "<PERSON_1>", Values: []string{"John"}},
				{Key: "<LOCATION_1>", Values: []string{"NYC"}},
			},
		})
	})
	mux.HandleFunc(client.RestorePath, func(w http.ResponseWriter, r *http.Request) {
		var req types.RestoreRequest
		json.NewDecoder(r.Body).Decode(&req)
		text := req.AnonymizedText
		for _, e := range req.Entities {
			text = strings.ReplaceAll(text, e.Key, strings.Join(e.Values, ""))
		}
		json.NewEncoder(w).Encode(types.RestoreResponse{RestoredText: text})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// CreateTestModel creates a Model against a fake service with an in-memory store
func CreateTestModel(t *testing.T) *Model {
	t.Helper()
	return CreateTestModelWithStore(t, testService(t).URL, session.NewStore(session.NewMemoryBackend(), logging.Discard()))
}

// CreateTestModelWithStore creates a Model against baseURL using store
func CreateTestModelWithStore(t *testing.T, baseURL string, store *session.Store) *Model {
	t.Helper()
	m, _ := createTestModelWithBridge(t, baseURL, store)
	return m
}

func createTestModelWithBridge(t *testing.T, baseURL string, store *session.Store) (*Model, *Bridge) {
	t.Helper()

	logger := logging.Discard()
	bridge := NewBridge()
	c, err := client.New(client.Options{BaseURL: baseURL, Prompter: bridge, Logger: logger})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	m, err := New(context.Background(), Deps{
		Logger:    logger,
		Store:     store,
		Requester: c,
		Bridge:    bridge,
		SessionID: "test",
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m, bridge
}

// runCmd executes cmd and feeds every resulting message except timer ticks
// back into the model.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(t, m, c)
		}
	case nil:
	default:
		if isTick(msg) {
			return
		}
		_, next := m.Update(msg)
		runCmd(t, m, next)
	}
}

func isTick(msg tea.Msg) bool {
	switch msg.(type) {
	case categoriesLoadedMsg, redactDoneMsg, restoreDoneMsg, clipboardMsg, noticeMsg, credentialPromptMsg:
		return false
	}
	return true
}

// loadCategories runs the Init catalog fetch synchronously
func loadCategories(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(m.loadCategoriesCmd()())
	runCmd(t, m, cmd)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command
func press(t *testing.T, m *Model, s string) {
	t.Helper()
	_, cmd := m.Update(key(s))
	runCmd(t, m, cmd)
}

// typeKeys sends each key without running the resulting commands, which are
// only cursor blinks for text inputs.
func typeKeys(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

// typeText types s into the focused text input
func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
