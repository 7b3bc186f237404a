package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crmkit/authsession"
)

// ErrAPI is the base error for non-2xx responses; match with errors.Is and
// unwrap to *APIError for the status code.
var ErrAPI = errors.New("crm api error")

// APIError carries the server's rejection of one request.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("crm api error: status %d (request %s)", e.Status, e.RequestID)
	}
	return fmt.Sprintf("crm api error: status %d: %s (request %s)", e.Status, e.Message, e.RequestID)
}

func (e *APIError) Unwrap() error { return ErrAPI }

// Client talks to one CRM admin API base URL. Zero retries, zero refresh
// logic: a 401 surfaces as an ordinary *APIError.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a client over the given base URL. httpClient should come
// from Manager.HTTPClient so requests carry the session token; nil falls
// back to http.DefaultClient (unauthenticated). A nil logger disables
// request logging.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{base: base, http: httpClient, logger: logger}, nil
}

// Login posts credentials to /auth/login and returns the raw response for
// Manager.Login to consume. It is the one call that never carries a bearer
// token worth anything, and the one whose failure the caller handles.
func (c *Client) Login(ctx context.Context, email, password string) (authsession.LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authsession.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return authsession.LoginResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.base.JoinPath(strings.Split(strings.Trim(path, "/"), "/")...)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID, ok := authsession.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("crm request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Message
		}
		c.logger.Debug("crm request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
