// Package client is the typed gateway to the VMS REST API.  Every call
// carries the bearer token when one is set, and every non-2xx response
// comes back as an *APIError.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client wraps a resty client.  Reads are retried on network errors and
// 5xx responses; writes are never retried.
type Client struct {
	http *resty.Client
	log  *zap.Logger

	mu    sync.RWMutex
	token string
}

// New creates a client for baseURL, e.g. "http://localhost:8000".
func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(300*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		AddRetryCondition(retryReads).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: rc, log: log}
}

func retryReads(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || r.StatusCode() >= http.StatusInternalServerError
}

// SetToken sets the bearer token sent with every request.  An empty
// token sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	req := c.request(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return c.send(req, http.MethodGet, path, out)
}

func (c *Client) write(ctx context.Context, method, path string, body, out any) error {
	req := c.request(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return c.send(req, method, path, out)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if tok := c.Token(); tok != "" {
		req.SetAuthToken(tok)
	}
	return req
}

func (c *Client) send(req *resty.Request, method, path string, out any) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Debug("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsSuccess() {
		apiErr := decodeError(resp.StatusCode(), resp.Body())
		c.log.Debug("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message))
		return apiErr
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// decodeError reads {"error": ...} or {"detail": ...}.  A body that is
// not JSON gives "Network error"; JSON without either field gives
// "Request failed".
func decodeError(status int, body []byte) *APIError {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return &APIError{Status: status, Message: "Network error"}
	}
	for _, k := range []string{"error", "detail"} {
		if s, ok := m[k].(string); ok && s != "" {
			return &APIError{Status: status, Message: s}
		}
	}
	return &APIError{Status: status, Message: "Request failed"}
}
