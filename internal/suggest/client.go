package suggest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Path is the endpoint path appended to the base URL.
const Path = "/autocomplete"

// RequestIDHeader carries a per-request id so client and server logs can
// be matched up.
const RequestIDHeader = "X-Request-ID"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

var (
	// ErrMalformedResponse is returned when the body is not an array of triples.
	ErrMalformedResponse = errors.New("malformed suggestion response")

	// ErrNoEndpoint is returned by NewHTTPClient when no base URL is configured.
	ErrNoEndpoint = errors.New("no suggestion endpoint configured")
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("suggestion endpoint returned %s", e.Status)
}

// IsCancelled reports whether err was caused by the request's context being
// cancelled, which is how a superseded request ends.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Client fetches suggestions for a query fragment.
type Client interface {
	// Fetch returns the suggestions for q. The request must stop when ctx is
	// cancelled.
	Fetch(ctx context.Context, q string) ([]Suggestion, error)
}

// HTTPClientConfig holds configuration for creating an HTTPClient.
type HTTPClientConfig struct {
	// BaseURL is the scheme and host (and optional path prefix) of the server.
	BaseURL string

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	endpoint *url.URL
	http     *http.Client
	logger   *zap.Logger
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the endpoint under cfg.BaseURL.
func NewHTTPClient(cfg HTTPClientConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNoEndpoint
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host are required", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		endpoint: base.JoinPath(Path),
		http:     httpClient,
		logger:   logger,
	}, nil
}

// URL returns the request URL used for q.
func (c *HTTPClient) URL(q string) string {
	u := *c.endpoint
	u.RawQuery = url.Values{"q": {q}}.Encode()
	return u.String()
}

// Fetch implements Client.
func (c *HTTPClient) Fetch(ctx context.Context, q string) ([]Suggestion, error) {
	reqURL := c.URL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestion response: %w", err)
	}

	suggestions, err := Decode(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched suggestions",
		zap.String("q", q),
		zap.String("requestID", requestID),
		zap.Int("count", len(suggestions)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return suggestions, nil
}
