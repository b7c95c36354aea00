package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/youtube138-mcp/internal/common"
	"github.com/bobmcallan/youtube138-mcp/internal/config"
)

// maxResponseSize caps the upstream response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// RapidAPI authentication headers.
const (
	headerRapidAPIHost = "X-RapidAPI-Host"
	headerRapidAPIKey  = "X-RapidAPI-Key"
)

// UpstreamError is the error record returned as tool content when the
// upstream call fails. StatusCode and Details encode as null when absent.
type UpstreamError struct {
	Message    string          `json:"error"`
	StatusCode *int            `json:"status_code"`
	Details    json.RawMessage `json:"details"`
}

// Result holds exactly one of a raw JSON body or an upstream error.
type Result struct {
	Body json.RawMessage
	Err  *UpstreamError
}

// OK reports whether the upstream call succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Text renders the result as two-space indented JSON.
func (r *Result) Text() (string, error) {
	var raw []byte
	if r.Err != nil {
		b, err := json.Marshal(r.Err)
		if err != nil {
			return "", err
		}
		raw = b
	} else {
		raw = jsonValue(r.Body)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// jsonValue returns body when it is valid JSON, otherwise body encoded as a JSON string.
func jsonValue(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	b, _ := json.Marshal(string(body))
	return b
}

// Client performs authenticated GET requests against the YouTube138 API.
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a client for the configured RapidAPI host.
func NewClient(cfg config.APIConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		host:    cfg.Host,
		apiKey:  strings.TrimSpace(cfg.Key),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// Get issues a single GET to path with the given query. Transport failures and
// non-2xx responses are reported in the Result; the returned error is reserved
// for failures that happen before any request is sent.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Result, error) {
	if !c.HasCredential() {
		return nil, ErrMissingCredential
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(headerRapidAPIHost, c.host)
	req.Header.Set(headerRapidAPIKey, c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("method", "GET").Str("path", path).Str("query", query.Encode()).Msg("upstream request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("method", "GET").Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("upstream request failed")
		return &Result{Err: &UpstreamError{Message: "API request failed: " + err.Error()}}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		status := resp.StatusCode
		return &Result{Err: &UpstreamError{
			Message:    "API request failed: failed to read response: " + err.Error(),
			StatusCode: &status,
		}}, nil
	}

	c.logger.Debug().Str("path", path).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Result{Err: parseErrorResponse(resp.StatusCode, body)}, nil
	}

	return &Result{Body: jsonValue(body)}, nil
}

// parseErrorResponse builds the error record for a non-2xx upstream response.
func parseErrorResponse(statusCode int, body []byte) *UpstreamError {
	ue := &UpstreamError{
		Message:    fmt.Sprintf("API request failed: request failed with status code %d", statusCode),
		StatusCode: &statusCode,
	}
	if len(bytes.TrimSpace(body)) > 0 {
		ue.Details = jsonValue(body)
	}
	return ue
}
