package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v69/github"
)

const (
	// UserAgent identifies this application to the GitHub API.
	UserAgent = "GitHub-User-Search-App"

	DefaultSearchLimit = 5
	DefaultPage        = 1
	DefaultPerPage     = 30
)

// API is the upstream surface used by the proxy endpoints.
type API interface {
	SearchUsers(ctx context.Context, query string, limit int) (*UserSearchResult, error)
	GetUserRepositories(ctx context.Context, username string, page, perPage int) (*RepositoryPage, error)
}

// NewAPIFn returns the upstream client for a single request.
type NewAPIFn func(context.Context) (API, error)

// Client issues user search and repository listing calls against the GitHub
// REST API and classifies failures into *Error values.
type Client struct {
	gh *github.Client
}

// NewClient wraps an already configured go-github client.
func NewClient(gh *github.Client) *Client {
	return &Client{gh: gh}
}

// SearchUsers searches GitHub users matching query, returning at most limit
// items. A limit of zero or less uses DefaultSearchLimit.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) (*UserSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, EmptyQuery()
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{
			PerPage: limit,
		},
	}

	result, resp, err := c.gh.Search.Users(ctx, query, opts)
	if err != nil {
		return nil, searchError(resp, err)
	}
	defer func() { _ = resp.Body.Close() }()

	out := convertUserSearchResult(result)
	return &out, nil
}

// GetUserRepositories lists one page of username's public repositories sorted
// by full name.
func (c *Client) GetUserRepositories(ctx context.Context, username string, page, perPage int) (*RepositoryPage, error) {
	if strings.TrimSpace(username) == "" {
		return nil, EmptyUsername()
	}
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	opts := &github.RepositoryListByUserOptions{
		Sort: "full_name",
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, repositoriesError(resp, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return &RepositoryPage{
		Items:       convertRepositories(repos),
		HasNextPage: hasNextPage(resp),
	}, nil
}

// unexpected keeps the full cause for logging but leaves the request URL,
// and with it the query, out of the message sent to the browser.
func unexpected(op string, err error) *Error {
	e := Unknown(fmt.Errorf("%s: %w", op, err))
	reason := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		reason = urlErr.Err
	}
	e.Message = op + ": " + reason.Error()
	return e
}

func searchError(resp *github.Response, err error) *Error {
	status, ok := failedStatus(resp, err)
	if !ok {
		return unexpected("failed to search users", err)
	}
	switch status {
	case http.StatusForbidden:
		return RateLimited(err)
	case http.StatusUnprocessableEntity:
		return InvalidQuery(err)
	default:
		return Upstream(status, err)
	}
}

func repositoriesError(resp *github.Response, err error) *Error {
	status, ok := failedStatus(resp, err)
	if !ok {
		return unexpected("failed to list repositories", err)
	}
	switch status {
	case http.StatusForbidden:
		return RateLimited(err)
	case http.StatusNotFound:
		return UserNotFound(err)
	default:
		return Upstream(status, err)
	}
}

// failedStatus returns the non-2xx HTTP status behind err. It reports false
// when no HTTP answer was received or the answer was a success that failed
// later, for instance while decoding.
func failedStatus(resp *github.Response, err error) (int, bool) {
	var status int
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	switch {
	case errors.As(err, &rateErr) && rateErr.Response != nil:
		status = rateErr.Response.StatusCode
	case errors.As(err, &abuseErr) && abuseErr.Response != nil:
		status = abuseErr.Response.StatusCode
	case errors.As(err, &respErr) && respErr.Response != nil:
		status = respErr.Response.StatusCode
	case resp != nil && resp.Response != nil:
		status = resp.StatusCode
	}
	if status < 300 {
		return 0, false
	}
	return status, true
}

// NewGitHubClient builds a go-github client using httpClient. A non-empty
// host other than github.com points the client at a GitHub Enterprise
// Server instance.
func NewGitHubClient(host string, httpClient *http.Client) (*github.Client, error) {
	client := github.NewClient(httpClient)
	client.UserAgent = UserAgent

	baseURL, err := enterpriseBaseURL(host)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		return client, nil
	}
	client, err = client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure GitHub host %q: %w", host, err)
	}
	return client, nil
}

func enterpriseBaseURL(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", nil
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("failed to parse GitHub host %q: %w", host, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid GitHub host %q", host)
	}
	switch strings.ToLower(u.Hostname()) {
	case "github.com", "api.github.com":
		return "", nil
	}
	return u.String(), nil
}

// ClientFactory returns a NewAPIFn that builds a fresh client, and a fresh
// http.Client around transport, on every call.
func ClientFactory(host string, transport http.RoundTripper) NewAPIFn {
	return func(_ context.Context) (API, error) {
		gh, err := NewGitHubClient(host, &http.Client{Transport: transport})
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
		return NewClient(gh), nil
	}
}
