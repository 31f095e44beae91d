// Package browser is the presentation tier's adapter for the proxy API. It
// only reads the "error" field of failed responses and never interprets
// status codes itself.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/github/github-user-browser/pkg/github"
)

const (
	fallbackUsers = "Failed to fetch users"
	fallbackRepos = "Failed to fetch user repositories"
)

// Client calls the user search and repository endpoints of the proxy.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the proxy at baseURL, for example
// "http://localhost:8080". A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SearchUsers calls GET /api/users?q=.
func (c *Client) SearchUsers(ctx context.Context, query string) (*github.UserSearchResult, error) {
	u := c.baseURL + "/api/users?q=" + url.QueryEscape(query)

	var result github.UserSearchResult
	if err := c.get(ctx, u, fallbackUsers, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchUserRepositories calls GET /api/users/{username}/repos?page=.
func (c *Client) FetchUserRepositories(ctx context.Context, username string, page int) (*github.RepositoryPage, error) {
	if page <= 0 {
		page = github.DefaultPage
	}
	u := c.baseURL + "/api/users/" + url.PathEscape(username) + "/repos?page=" + strconv.Itoa(page)

	var result github.RepositoryPage
	if err := c.get(ctx, u, fallbackRepos, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, u, fallback string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New(errorMessage(resp.Body, fallback))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the "error" field of a JSON error body, or returns
// fallback when the body is unreadable or has none.
func errorMessage(body io.Reader, fallback string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Error == "" {
		return fallback
	}
	return payload.Error
}
