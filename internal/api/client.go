// Package api implements the HTTP client for the library-management backend.
// It maps wire DTOs onto domain entities and HTTP failures onto the domain
// error taxonomy; all caching and state lives in the service layer.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/readerly/circulate/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "circulate/1.0"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client implements domain.BookRepository, domain.LoanRepository,
// domain.ReservationRepository, domain.NotificationRepository, and
// domain.AuthRepository against the backend REST API.
type Client struct {
	baseURL    string
	tokens     domain.TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an API client. tokens may be nil for a client that only
// performs unauthenticated calls.
func NewClient(baseURL string, tokens domain.TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// errorBody is the error payload shape the backend uses. Some endpoints put
// the text under "error", others under "message".
type errorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// doRequest performs an authenticated request and decodes the JSON response
// into out (which may be nil for empty responses).
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		c.logger.Error("api request error", "method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return &domain.APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.logger.Error("api response parse error", "path", path, "error", err, "bodyLen", len(data))
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
