package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/redactcli/internal/client"
	"github.com/studiowebux/redactcli/internal/logging"
	"github.com/studiowebux/redactcli/internal/types"
)

type stubRequester struct {
	resp  *types.Response
	err   error
	calls int
}

func (s *stubRequester) Do(context.Context, string, string, any) (*types.Response, error) {
	s.calls++
	return s.resp, s.err
}

func TestLoadCategories(t *testing.T) {
	tests := []struct {
		name string
		stub *stubRequester
		want []string
	}{
		{
			name: "fetched list",
			stub: &stubRequester{resp: &types.Response{Status: 200, Body: []byte(`{"entity_types":["人名","组织"]}`)}},
			want: []string{"人名", "组织"},
		},
		{
			name: "transport error",
			stub: &stubRequester{err: client.ErrTransport},
			want: DefaultCategories,
		},
		{
			name: "non-success status",
			stub: &stubRequester{resp: &types.Response{Status: 404, Body: []byte(`404 page not found`)}},
			want: DefaultCategories,
		},
		{
			name: "malformed body",
			stub: &stubRequester{resp: &types.Response{Status: 200, Body: []byte(`{"entity_types":"PERSON"}`)}},
			want: DefaultCategories,
		},
		{
			name: "missing field",
			stub: &stubRequester{resp: &types.Response{Status: 200, Body: []byte(`{}`)}},
			want: DefaultCategories,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(tt.stub, logging.Discard())
			assert.Equal(t, tt.want, loader.LoadCategories(context.Background()))
			assert.Equal(t, 1, tt.stub.calls)
		})
	}
}

func TestLoadCategories_UnreachableIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := client.New(client.Options{BaseURL: url, Logger: logging.Discard()})
	require.NoError(t, err)
	loader := NewLoader(c, logging.Discard())

	first := loader.LoadCategories(context.Background())
	first[0] = "MUTATED"
	second := loader.LoadCategories(context.Background())

	assert.Equal(t, DefaultCategories, second)
	assert.Equal(t, []string{"PERSON", "ORG", "EMAIL", "PHONE", "ADDRESS"}, DefaultCategories)
}

func TestLoadCategories_GoesThroughAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"entity_types":["SECRET"]}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Options{BaseURL: srv.URL, Logger: logging.Discard()})
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories, NewLoader(c, logging.Discard()).LoadCategories(context.Background()),
		"unauthorized without a credential falls back to defaults")

	c.Credentials().Store("u", "p")
	assert.Equal(t, []string{"SECRET"}, NewLoader(c, logging.Discard()).LoadCategories(context.Background()))

}

type blockingRequester struct {
	release chan struct{}
	entered chan struct{}
	calls   atomic.Int32
}

func (b *blockingRequester) Do(ctx context.Context, method, path string, body any) (*types.Response, error) {
	if b.calls.Add(1) == 1 {
		close(b.entered)
	}
	<-b.release
	return &types.Response{Status: http.StatusOK, Body: []byte(`{"entity_types":["PERSON"]}`)}, nil
}

func TestLoadCategories_ConcurrentCallersShareRequest(t *testing.T) {
	req := &blockingRequester{release: make(chan struct{}), entered: make(chan struct{})}
	loader := NewLoader(req, logging.Discard())

	const callers = 5
	results := make(chan []string, callers)
	for i := 0; i < callers; i++ {
		go func() { results <- loader.LoadCategories(context.Background()) }()
	}

	<-req.entered
	time.Sleep(50 * time.Millisecond)
	close(req.release)

	for i := 0; i < callers; i++ {
		assert.Equal(t, []string{"PERSON"}, <-results)
	}
	assert.Less(t, req.calls.Load(), int32(callers), "callers should share the in-flight request")
}
