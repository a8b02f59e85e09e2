package upload

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

	"github.com/claude/repbook/internal/transfer"
)

// Client sends export documents to a repbook server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a new HTTP client for the repbook server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// Push POSTs doc to the server's import endpoint for key. Network errors and 5xx
// responses are retried up to 3 times with exponential backoff; 4xx responses
// fail immediately since resending the same document cannot succeed.
func (c *Client) Push(ctx context.Context, key string, policy transfer.Policy, doc []byte) (*transfer.Result, error) {
	u := fmt.Sprintf("%s/api/v1/import/%s?%s", c.serverURL, url.PathEscape(key), url.Values{"policy": {string(policy)}}.Encode())

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff << uint(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(doc))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var result transfer.Result
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding import result: %w", err)
			}
			return &result, nil
		case resp.StatusCode < http.StatusInternalServerError:
			return nil, fmt.Errorf("push %s rejected (status %d): %s", key, resp.StatusCode, bytes.TrimSpace(body))
		}
		lastErr = fmt.Errorf("push %s failed (status %d): %s", key, resp.StatusCode, bytes.TrimSpace(body))
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
