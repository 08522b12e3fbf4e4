package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/types"
)

// ErrTransport marks failures where no HTTP response was received
var ErrTransport = errors.New("transport failure")

// Service endpoints
const (
	ConfigPath    = "/api/v1/config"
	AnonymizePath = "/api/v1/anonymize"
	RestorePath   = "/api/v1/restore"
)

// Client sends requests to the redaction service and recovers once from a
// missing-credentials 401 by prompting the user.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	credentials *CredentialCache
	prompter    interact.Prompter
	logger      *log.Logger
}

// Options configures a Client
type Options struct {
	BaseURL            string
	Timeout            time.Duration
	InsecureSkipVerify bool
	Credentials        *CredentialCache
	Prompter           interact.Prompter
	Logger             *log.Logger
	HTTPClient         *http.Client
}

// New creates a client
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidServerURL, opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = buildHTTPClient(opts.Timeout, opts.InsecureSkipVerify)
	}

	creds := opts.Credentials
	if creds == nil {
		creds = NewCredentialCache()
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = interact.NoPrompt
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL:     base,
		httpClient:  httpClient,
		credentials: creds,
		prompter:    prompter,
		logger:      logger,
	}, nil
}

// FromSettings builds a client from the loaded configuration.
// A configured credential is seeded into the cache.
func FromSettings(s config.Settings, prompter interact.Prompter, logger *log.Logger) (*Client, error) {
	creds := NewCredentialCache()
	if s.HasCredential() {
		creds.Store(s.Auth.Username, s.Auth.Password)
	}
	return New(Options{
		BaseURL:            s.Server.URL,
		Timeout:            s.Server.Timeout,
		InsecureSkipVerify: s.Server.InsecureSkipVerify,
		Credentials:        creds,
		Prompter:           prompter,
		Logger:             logger,
	})
}

// buildHTTPClient creates an HTTP client with optional TLS configuration.
// A zero timeout means the client waits for settlement indefinitely.
func buildHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Credentials exposes the process credential cache
func (c *Client) Credentials() *CredentialCache {
	return c.credentials
}

// Do sends a request. body is JSON-encoded when non-nil.
//
// A cached credential is attached up front. When the response is 401 and no
// credential was attached, the user is prompted once; a complete answer is
// cached and the request is resent exactly once. The second response is
// returned as-is, whatever its status.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*types.Response, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = data
	}

	cred, attached := c.credentials.Get()
	resp, err := c.send(ctx, method, path, payload, cred)
	if err != nil {
		return nil, err
	}

	if resp.Status != http.StatusUnauthorized || attached {
		return resp, nil
	}

	c.logger.Debug("authorization required", "path", path)
	answer, err := c.prompter.PromptCredential(ctx)
	if err != nil {
		c.logger.Warn("credential prompt failed", "err", err)
		return resp, nil
	}
	if !answer.Complete() {
		return resp, nil
	}

	cred = c.credentials.Store(answer.Username, answer.Password)
	return c.send(ctx, method, path, payload, cred)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, cred string) (*types.Response, error) {
	startTime := time.Now()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred != "" {
		req.Header.Set("Authorization", "Basic "+cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	result := &types.Response{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       data,
		Duration:   time.Since(startTime),
		Authorized: cred != "",
	}
	c.logger.Debug("request completed", "method", method, "path", path, "status", result.Status, "duration", result.Duration)
	return result, nil
}

func (c *Client) resolve(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// DecodeJSON decodes the response body into v
func DecodeJSON(resp *types.Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ErrorMessage extracts the service error message from a non-2xx response.
// It falls back to "HTTP <status>: <status text>".
func ErrorMessage(resp *types.Response) string {
	var body types.ErrorResponse
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("HTTP %d: %s", resp.Status, resp.StatusText)
}
