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
)

// HTTPClient makes REST calls to the Command Center server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g. "http://127.0.0.1:3030").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// BaseURL returns the server address this client targets.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// GetDashboard fetches /api/dashboard. A server-side gather failure is
// returned as an error.
func (c *HTTPClient) GetDashboard(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	if err := c.get(ctx, "/api/dashboard", &s); err != nil {
		return nil, err
	}
	if s.Error != "" {
		return nil, fmt.Errorf("dashboard: %s", s.Error)
	}
	return &s, nil
}

// Health fetches /api/health.
func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/api/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Health mirrors GET /api/health.
type Health struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
}

// PostAction sends POST /api/action and returns the raw JSON result, whose
// shape depends on the action.
func (c *HTTPClient) PostAction(ctx context.Context, action string, params map[string]any) (json.RawMessage, error) {
	body := map[string]any{"action": action}
	if params != nil {
		body["params"] = params
	}
	var out json.RawMessage
	if err := c.post(ctx, "/api/action", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
