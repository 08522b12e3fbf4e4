package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/entities"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/logging"
	"github.com/studiowebux/redactcli/internal/session"
	"github.com/studiowebux/redactcli/internal/types"
	"github.com/studiowebux/redactcli/internal/workflow"
)

type recorder struct {
	anonymize []types.AnonymizeRequest
	restore   []types.RestoreRequest
}

func newService(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(client.ConfigPath, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.ConfigResponse{EntityTypes: []string{"PERSON", "LOCATION"}})
	})
	mux.HandleFunc(client.AnonymizePath, func(w http.ResponseWriter, r *http.Request) {
		var req types.AnonymizeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		rec.anonymize = append(rec.anonymize, req)
		_ = json.NewEncoder(w).Encode(types.AnonymizeResponse{
			AnonymizedText: strings.NewReplacer("John", "<PERSON_1>", "NYC", "<LOCATION_1>").Replace(req.Text),
			Entities: []types.EntityMapping{
				{Key: "<PERSON_1>", Values: []string{"John"}},
				{Key: "<LOCATION_1>", Values: []string{"NYC"}},
			},
		})
	})
	mux.HandleFunc(client.RestorePath, func(w http.ResponseWriter, r *http.Request) {
		var req types.RestoreRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		rec.restore = append(rec.restore, req)
		text := req.AnonymizedText
		for _, e := range req.Entities {
			if len(e.Values) > 0 {
				text = strings.ReplaceAll(text, e.Key, e.Values[0])
			}
		}
		_ = json.NewEncoder(w).Encode(types.RestoreResponse{RestoredText: text})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testApp struct {
	*App
	in  *bytes.Buffer
	out *bytes.Buffer
	err *bytes.Buffer
	ui  *interact.Scripted
}

func newTestApp(t *testing.T, serverURL string) *testApp {
	t.Helper()
	settings := config.DefaultSettings()
	settings.Server.URL = serverURL
	settings.Session.ID = "test"

	ta := &testApp{in: &bytes.Buffer{}, out: &bytes.Buffer{}, err: &bytes.Buffer{}, ui: &interact.Scripted{}}
	logger := logging.Discard()
	app, err := New(context.Background(), Options{
		Settings: settings,
		Logger:   logger,
		Streams:  Streams{In: ta.in, Out: ta.out, Err: ta.err},
		Prompter: ta.ui,
		Notifier: ta.ui,
		Store:    session.NewStore(session.NewMemoryBackend(), logger),
	})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	ta.App = app
	return ta
}

func TestRedactCommand(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)
	entitiesFile := filepath.Join(t.TempDir(), "entities.yaml")

	err := app.Redact(context.Background(), RedactOptions{
		Content:        "John lives in NYC",
		EntityTypes:    []string{"PERSON"},
		OutputEntities: entitiesFile,
	})
	require.NoError(t, err)

	assert.Equal(t, "<PERSON_1> lives in <LOCATION_1>\n", app.out.String())
	assert.Contains(t, app.err.String(), "<PERSON_1>: John\n")
	require.Len(t, rec.anonymize, 1)
	assert.Equal(t, []string{"PERSON"}, rec.anonymize[0].EntityTypes)

	saved, err := entities.Load(entitiesFile)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestRedactCommand_DefaultsToCatalog(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)
	app.in.WriteString("John lives in NYC")

	require.NoError(t, app.Redact(context.Background(), RedactOptions{NoPrint: true}))

	assert.Empty(t, app.out.String())
	assert.Empty(t, app.err.String())
	require.Len(t, rec.anonymize, 1)
	assert.Equal(t, []string{"PERSON", "LOCATION"}, rec.anonymize[0].EntityTypes)
}

func TestRedactCommand_EmptyInputIsOutcome(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)

	err := app.Redact(context.Background(), RedactOptions{Content: "   ", EntityTypes: []string{"PERSON"}})

	require.Error(t, err)
	assert.True(t, IsOutcome(err))
	assert.Equal(t, workflow.MsgEmptyInput, err.Error())
	assert.Empty(t, rec.anonymize)
}

func TestRestoreCommand_UsesSessionMapping(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, app.Redact(ctx, RedactOptions{Content: "John lives in NYC", EntityTypes: []string{"PERSON"}, NoPrint: true}))
	outFile := filepath.Join(t.TempDir(), "restored.txt")

	require.NoError(t, app.Restore(ctx, RestoreOptions{Content: "<PERSON_1> moved from <LOCATION_1>", Output: outFile}))

	assert.Equal(t, "John moved from NYC\n", app.out.String())
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "John moved from NYC", string(data))
}

func TestRestoreCommand_WithoutState(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)

	err := app.Restore(context.Background(), RestoreOptions{Content: "<PERSON_1>"})

	require.Error(t, err)
	assert.Equal(t, workflow.MsgNoMapping, err.Error())
	assert.Equal(t, []string{workflow.MsgNoMapping}, app.ui.Notified())
	assert.Empty(t, rec.restore)
}

func TestRestoreCommand_EntitiesFile(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)
	path := filepath.Join(t.TempDir(), "entities.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{
  // saved earlier
  "entities": [{"key": "<PERSON_1>", "values": ["Jane"]}],
}`), 0644))

	require.NoError(t, app.Restore(context.Background(), RestoreOptions{Content: "Hi <PERSON_1>", Entities: path}))

	assert.Equal(t, "Hi Jane\n", app.out.String())
}

func TestInteractiveCommand(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)
	app.in.WriteString("Summary: <PERSON_1> is in <LOCATION_1>\n")

	err := app.Interactive(context.Background(), InteractiveOptions{
		Content:     "John lives in NYC",
		EntityTypes: []string{"PERSON"},
		NoPrompt:    true,
	})
	require.NoError(t, err)

	out := app.out.String()
	assert.Contains(t, out, "<PERSON_1> lives in <LOCATION_1>\n")
	assert.Contains(t, out, "Summary: John is in NYC\n")
	assert.Len(t, rec.restore, 1)
	assert.Contains(t, app.err.String(), "Exiting")
}

func TestCategoriesCommand(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, app.Redact(ctx, RedactOptions{Content: "John", EntityTypes: []string{"LOCATION"}, NoPrint: true}))

	require.NoError(t, app.Categories(ctx))

	out := app.out.String()
	assert.Contains(t, out, "[ ] PERSON")
	assert.Contains(t, out, "[x] LOCATION")
}

func TestCategoriesCommand_StripsTerminalEscapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.ConfigResponse{EntityTypes: []string{"PERSON\x1b]0;pwned\x07\x1b[2J"}})
	}))
	t.Cleanup(srv.Close)
	app := newTestApp(t, srv.URL)

	require.NoError(t, app.Categories(context.Background()))

	out := app.out.String()
	assert.Contains(t, out, "PERSON")
	assert.NotContains(t, out, "pwned")
	assert.NotContains(t, out, "\x07")
}

func TestRedact_EchoedEntitiesAreSanitized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.AnonymizeResponse{
			AnonymizedText: "<PERSON_1>",
			Entities:       []types.EntityMapping{{Key: "<PERSON_1>", Values: []string{"\x1b[2JJohn"}}},
		})
	}))
	t.Cleanup(srv.Close)
	app := newTestApp(t, srv.URL)

	require.NoError(t, app.Redact(context.Background(), RedactOptions{Content: "John", EntityTypes: []string{"PERSON"}}))

	assert.Contains(t, app.err.String(), "<PERSON_1>: John\n")
	assert.NotContains(t, app.err.String(), "\x1b[2J")
}

func TestStateShowAndClear(t *testing.T) {
	rec := &recorder{}
	srv := newService(t, rec)
	app := newTestApp(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, app.ShowState(ctx, "json"))
	assert.Empty(t, app.out.String())
	assert.Contains(t, app.err.String(), "No state stored")

	require.NoError(t, app.Redact(ctx, RedactOptions{Content: "John", EntityTypes: []string{"PERSON"}, NoPrint: true}))
	require.NoError(t, app.ShowState(ctx, "json"))

	var state types.SessionState
	require.NoError(t, json.Unmarshal(app.out.Bytes(), &state))
	assert.Equal(t, "John", state.OriginalText)

	app.out.Reset()
	require.NoError(t, app.ShowState(ctx, "yaml"))
	assert.Contains(t, app.out.String(), "originalText: John")

	assert.Error(t, app.ShowState(ctx, "xml"))

	require.NoError(t, app.ClearState(ctx))
	_, ok := app.store.Load(ctx)
	assert.False(t, ok)
}

func TestReadInputPriority(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte("from file"), 0644))

	got, err := ReadInput(file, "from content", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = ReadInput("", "from content", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from content", got)

	got, err = ReadInput("", "", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = ReadInput("", "", nil)
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = ReadInput("", "", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = ReadInput(filepath.Join(dir, "missing"), "", nil)
	assert.Error(t, err)
}

func TestReadUntilEOF(t *testing.T) {
	got, err := readUntilEOF(strings.NewReader("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)

	got, err = readUntilEOF(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
