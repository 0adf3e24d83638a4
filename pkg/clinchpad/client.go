package clinchpad

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://www.clinchpad.com/api/v1"

	// pageSize is the fixed bound on every list fetch. There is no
	// follow-up paging; results past this bound are dropped.
	pageSize = 999

	// maxResponseSize limits response body reads.
	maxResponseSize = 10 * 1024 * 1024 // 10MB

	userAgent = "clinchpad-go/1.0"
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithNoteAuthor sets the user id recorded as the author of notes
// created through AddNote.
func WithNoteAuthor(userID string) Option {
	return func(c *Client) {
		c.noteAuthorID = userID
	}
}

// WithLogger sets the logger used for note-deduplication cleanup.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracing instruments the client's HTTP transport with
// OpenTelemetry. Applied after all other options, so it composes with
// WithHTTPClient regardless of option order.
func WithTracing() Option {
	return func(c *Client) {
		c.tracing = true
	}
}

// Client is an authenticated ClinchPad API client.
//
// A Client caches the pipeline list for its own lifetime (see
// Pipelines); construct a new Client or call InvalidatePipelines to
// observe pipelines created or renamed after the first fetch.
type Client struct {
	apiKey       string
	baseURL      string
	noteAuthorID string
	httpClient   *http.Client
	logger       *slog.Logger
	tracing      bool

	mu        sync.Mutex
	pipelines []Pipeline
}

// New creates a ClinchPad client authenticating with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracing {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		traced := *c.httpClient
		traced.Transport = otelhttp.NewTransport(base)
		c.httpClient = &traced
	}
	return c
}

// do issues one request and decodes the JSON response into out when out
// is non-nil. Non-2xx responses become an *APIError; nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	// ClinchPad authenticates with the literal username "api-key" and
	// the key itself as the password.
	req.SetBasicAuth("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
