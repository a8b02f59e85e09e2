package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/views"
)

// HTTPClient implements DataSource by calling the repbook REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the server (possibly reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey is
// sent as X-API-Key when non-empty.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) ListExercises(ctx context.Context, query string, sort views.SortCriterion) (views.ExerciseList, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if sort != "" {
		params.Set("sort", string(sort))
	}
	var list views.ExerciseList
	err := c.get(ctx, "/api/v1/exercises", params, &list)
	return list, err
}

func (c *HTTPClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := c.get(ctx, "/api/v1/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) GetSession(ctx context.Context, id string) (views.SessionDetail, error) {
	var detail views.SessionDetail
	err := c.get(ctx, "/api/v1/sessions/"+url.PathEscape(id), nil, &detail)
	return detail, err
}

func (c *HTTPClient) ExportSessions(ctx context.Context) ([]models.EnrichedSession, error) {
	var sessions []models.EnrichedSession
	if err := c.get(ctx, "/api/v1/export/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
