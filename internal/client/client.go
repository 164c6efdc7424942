// Package client consumes the recipe API and keeps browsing state for a UI.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Client talks to the recipe HTTP API.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a client for the API rooted at baseURL. A nil httpClient uses a
// pooled client from go-cleanhttp.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	return &Client{base: base, http: httpClient}, nil
}

// List fetches one page of the unfiltered catalog.
func (c *Client) List(ctx context.Context, page, limit int) (*model.Envelope, error) {
	params := url.Values{}
	setWindow(params, page, limit)
	return c.get(ctx, "/api/recipes", params)
}

// Search fetches one page of recipes matching f. Blank fields are not sent.
func (c *Client) Search(ctx context.Context, f query.FilterInput, page, limit int) (*model.Envelope, error) {
	params := url.Values{}
	for _, kv := range [][2]string{
		{"title", f.Title},
		{"cuisine", f.Cuisine},
		{"rating", f.Rating},
		{"total_time", f.TotalTime},
		{"calories", f.Calories},
	} {
		if kv[1] != "" {
			params.Set(kv[0], kv[1])
		}
	}
	setWindow(params, page, limit)
	return c.get(ctx, "/api/recipes/search", params)
}

func setWindow(params url.Values, page, limit int) {
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*model.Envelope, error) {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var env model.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Data == nil {
		env.Data = []model.Recipe{}
	}
	return &env, nil
}
