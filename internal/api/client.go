// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"evoting-client/internal/common/config"
	"evoting-client/internal/common/httpclient"
	"evoting-client/internal/common/logger"
	"evoting-client/internal/common/observability"
)

// Client talks to the election backend REST API. All responses are
// JSON; error responses carry a {"detail": "..."} body which is
// preserved verbatim for display.
type Client struct {
	baseURL string
	token   string
	httpc   *httpclient.Client
	log     logger.Logger
	obs     *observability.Observability
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string]interface{}
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// StatusOf returns the HTTP status of err, 0 when err is not an APIError.
func StatusOf(err error) int {
	if ae, ok := err.(*APIError); ok {
		return ae.StatusCode
	}
	return 0
}

// DetailOf returns the server-provided detail of err, empty otherwise.
func DetailOf(err error) string {
	if ae, ok := err.(*APIError); ok {
		return ae.Detail
	}
	return ""
}

// FieldsOf returns server-side field errors of err, nil otherwise.
func FieldsOf(err error) map[string]interface{} {
	if ae, ok := err.(*APIError); ok {
		return ae.Fields
	}
	return nil
}

func NewClient(cfg config.APIConfig, log logger.Logger, obs *observability.Observability) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.AuthToken,
		httpc:   httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		log:     log,
		obs:     obs,
	}
}

// WithToken returns a copy of the client authenticating as the given
// session token. The original client is unchanged.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// do performs one JSON request and decodes the response into out when
// out is non-nil. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, operation, method, path string, body interface{}, out interface{}) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, out)
	status := "success"
	if err != nil {
		status = "error"
	}
	if c.obs != nil {
		c.obs.RecordRequest(ctx, operation, status)
		c.obs.RecordRequestDuration(ctx, operation, time.Since(start), status)
	}
	if err != nil {
		c.log.Warn("api request failed", map[string]interface{}{
			"operation": operation,
			"method":    method,
			"path":      path,
			"error":     err.Error(),
		})
		return err
	}
	c.log.Debug("api request completed", map[string]interface{}{
		"operation":   operation,
		"method":      method,
		"path":        path,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads a Django REST style error body. "detail" holds
// the human-readable message; serializer errors come back as a map of
// field name to message list.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return apiErr
	}
	if detail, ok := parsed["detail"].(string); ok {
		apiErr.Detail = detail
		delete(parsed, "detail")
	}
	if len(parsed) > 0 {
		apiErr.Fields = parsed
	}
	return apiErr
}
