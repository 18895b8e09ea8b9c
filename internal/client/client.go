// Package client talks to the analysis orchestrator over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"accountability/internal/analysis"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Config configures a Client.
type Config struct {
	BaseURL string

	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration

	Logger *zap.Logger
}

// Client issues analysis requests. At most one request is in flight at a
// time; a second concurrent call fails fast with ErrBusy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	inflight   *semaphore.Weighted
	logger     *zap.Logger
}

// processRequest is the POST /process body.
type processRequest struct {
	Query string `json:"query"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

// NewClient creates a client for baseURL with no timeout and no logging.
func NewClient(baseURL string) *Client {
	return NewClientWithConfig(Config{BaseURL: baseURL})
}

// NewClientWithConfig creates a client with custom config.
func NewClientWithConfig(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		inflight: semaphore.NewWeighted(1),
		logger:   logger,
	}
}

// BaseURL returns the normalised service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Process submits one query and decodes the analysis result.
//
// Errors are one of ErrEmptyQuery, ErrBusy, *HTTPError, *NetworkError or
// *DecodeError. Nothing is retried.
func (c *Client) Process(ctx context.Context, query string) (*analysis.AnalysisResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if !c.inflight.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer c.inflight.Release(1)

	reqID := RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	log := c.logger.With(zap.String("request_id", reqID))

	payload, err := json.Marshal(processRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log.Info("submitting query", zap.String("url", req.URL.String()), zap.Int("query_len", len(query)))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read response", zap.Error(err))
		return nil, &NetworkError{Err: err}
	}

	log.Info("response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result analysis.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.Warn("malformed response body", zap.Error(err))
		return nil, &DecodeError{Err: err}
	}
	if result.Error != "" {
		log.Warn("service reported pipeline error", zap.String("error", result.Error))
	}
	return &result, nil
}

// Health calls GET /healthz and returns nil when the service reports ok.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return &NetworkError{Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var h healthResponse
	if err := json.Unmarshal(body, &h); err != nil {
		return &DecodeError{Err: err}
	}
	if !h.OK {
		return fmt.Errorf("service at %s reported not ok", c.baseURL)
	}
	return nil
}
