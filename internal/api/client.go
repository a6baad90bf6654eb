package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the remote ticketing backend. All storefront data
// lives behind this API; the client never caches or re-filters what
// the backend returns.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// APIError represents a structured error response from the backend
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (%d)", e.StatusCode)
}

// IsNotFound reports whether err is a backend 404
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// do issues the request, reads the body and maps non-2xx responses to
// *APIError. The token, when non-empty, is attached the way the
// backend expects its session credential.
func (c *Client) do(ctx context.Context, method, path, token string, body any, headers map[string]string) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.handleAPIError(resp.StatusCode, bodyBytes)
	}

	return bodyBytes, nil
}

// handleAPIError builds an APIError from a non-2xx response body
func (c *Client) handleAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

// unmarshalList decodes a backend list payload into out, accepting
// both a bare JSON array and a {"results": [...]} envelope.
func unmarshalList(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode list response: %w", err)
	}
	if envelope.Results == nil {
		return fmt.Errorf("list response carries no results")
	}
	return json.Unmarshal(envelope.Results, out)
}
