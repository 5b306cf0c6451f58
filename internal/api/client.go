package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"bandly/internal/config"
	"bandly/internal/observability"
	contextutils "bandly/internal/utils"
)

// Client talks to the BandLy scoring API.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	logger     *observability.Logger
	baseURL    string // Allow overriding the API endpoint for testing
}

// NewClient creates a Client using the configured API base URL.
func NewClient(cfg *config.Config, logger *observability.Logger) *Client {
	return NewClientWithURL(cfg, logger, cfg.APIBaseURL())
}

// NewClientWithURL creates a Client against a custom base URL (for testing).
func NewClientWithURL(cfg *config.Config, logger *observability.Logger, baseURL string) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.APITimeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
			),
		},
		logger:  logger,
		baseURL: baseURL,
	}
}

// do sends a JSON request and returns the raw response. A non-nil body
// is marshaled to JSON; a non-empty token becomes a bearer header.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, contextutils.WrapError(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "bandly-web/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrAPIUnavailable, "request to %s failed: %w", path, err)
	}
	return resp, nil
}

// doJSON sends a JSON request and decodes a 2xx JSON response into
// dest. Non-2xx responses become *RemoteError (mapped to the auth
// sentinels for 401/403/404 so callers can use errors.Is).
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, dest interface{}) error {
	resp, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	defer c.closeBody(ctx, resp)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return contextutils.WrapError(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.remoteError(resp.StatusCode, raw)
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return contextutils.WrapErrorf(contextutils.ErrAPIResponseInvalid, "failed to decode %s response: %w", path, err)
	}
	return nil
}

// remoteError maps an upstream failure status to an error. The server's
// own message is preserved when it sent one.
func (c *Client) remoteError(statusCode int, raw []byte) error {
	message := serverMessage(raw)

	switch statusCode {
	case http.StatusUnauthorized:
		return contextutils.ErrUnauthorized
	case http.StatusForbidden:
		return contextutils.ErrForbidden
	case http.StatusNotFound:
		return contextutils.ErrRecordNotFound
	case http.StatusConflict:
		return contextutils.ErrRecordExists
	case http.StatusTooManyRequests:
		return contextutils.ErrRateLimit
	}

	if message == "" {
		message = fmt.Sprintf("status %d", statusCode)
	}
	return &RemoteError{StatusCode: statusCode, Message: message}
}

// serverMessage extracts the error message from an upstream error body,
// which uses either {"error": "..."} or {"message": "..."}.
func serverMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		c.logger.Warn(ctx, "Failed to close response body", map[string]interface{}{"error": closeErr.Error()})
	}
}

// Health checks whether the scoring API is reachable.
func (c *Client) Health(ctx context.Context) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "Health")
	defer observability.FinishSpan(span, &err)

	return c.doJSON(ctx, http.MethodGet, "/health", "", nil, nil)
}
