package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/mylogger"
)

// Client talks JSON to the REST backend. It never retries.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  driven.ITokenSource
	mylog   mylogger.Logger
}

func New(baseURL string, timeout time.Duration, mylog mylogger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		mylog: mylog.Action("api_request"),
	}
}

// WithTokens returns a copy of the client that attaches tokens from ts.
func (c *Client) WithTokens(ts driven.ITokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var bodyBytes []byte
	var err error

	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.mylog.Debug("request failed", "method", method, "path", path, "error", err.Error())
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.mylog.Debug("request done", "method", method, "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &myerrors.APIError{Status: resp.StatusCode}
		// best effort: the backend usually answers errors with an envelope
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
