// Package ui holds the presentation state of the user browser: the search
// query and results, the expanded user and its paginated repositories.
//
// Every action performs at most one network call. The store lock is released
// while the call is in flight, so overlapping actions resolve in completion
// order and the last one to finish wins. The one exception is a load-more
// page for a selection that has since changed, which is discarded.
package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/github/github-user-browser/pkg/github"
)

// API is the subset of the browser client the store needs.
type API interface {
	SearchUsers(ctx context.Context, query string) (*github.UserSearchResult, error)
	FetchUserRepositories(ctx context.Context, username string, page int) (*github.RepositoryPage, error)
}

// State is a point-in-time view of the store.
type State struct {
	Query          string
	Users          []github.User
	SelectedUser   *github.User
	Repositories   []github.Repository
	Cursor         int
	IsLoadingUsers bool
	IsLoadingRepos bool
	HasMoreRepos   bool
	Error          string
}

// Store owns State and drives API calls in response to user actions.
type Store struct {
	api API

	mu    sync.Mutex
	state State
	// selections counts SelectUser calls so a load-more that outlives the
	// selection it was issued for can be dropped.
	selections uint64
}

func NewStore(api API) *Store {
	return &Store{
		api: api,
		state: State{
			Users:        []github.User{},
			Repositories: []github.Repository{},
			Cursor:       1,
		},
	}
}

// Snapshot returns a copy of the current state that is safe to keep.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Users = append([]github.User{}, s.state.Users...)
	snap.Repositories = append([]github.Repository{}, s.state.Repositories...)
	if s.state.SelectedUser != nil {
		u := *s.state.SelectedUser
		snap.SelectedUser = &u
	}
	return snap
}

// SetQuery replaces the search query without searching.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = query
}

// Search runs the current query. A blank query clears the results without
// calling the API.
func (s *Store) Search(ctx context.Context) {
	s.mu.Lock()
	query := s.state.Query
	if strings.TrimSpace(query) == "" {
		s.state.Users = []github.User{}
		s.mu.Unlock()
		return
	}
	s.state.IsLoadingUsers = true
	s.state.Error = ""
	s.mu.Unlock()

	result, err := s.api.SearchUsers(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoadingUsers = false
	if err != nil {
		s.state.Error = err.Error()
		s.state.Users = []github.User{}
		return
	}
	s.state.Users = append([]github.User{}, result.Items...)
	s.state.Error = ""
}

// SelectUser expands user and loads its first page of repositories.
// Selecting the user that is already expanded collapses it and discards its
// repositories.
func (s *Store) SelectUser(ctx context.Context, user github.User) {
	s.mu.Lock()
	s.selections++
	if s.state.SelectedUser != nil && s.state.SelectedUser.ID == user.ID {
		s.state.SelectedUser = nil
		s.state.IsLoadingRepos = false
		s.resetRepositories()
		s.mu.Unlock()
		return
	}

	selected := user
	s.state.SelectedUser = &selected
	s.resetRepositories()
	s.state.IsLoadingRepos = true
	s.state.Error = ""
	s.mu.Unlock()

	page, err := s.api.FetchUserRepositories(ctx, user.Login, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoadingRepos = false
	if err != nil {
		s.state.Error = err.Error()
		s.resetRepositories()
		return
	}
	s.state.Repositories = append([]github.Repository{}, page.Items...)
	s.state.HasMoreRepos = page.HasNextPage
	s.state.Cursor = 1
}

// LoadMore appends the next page of the expanded user's repositories. It
// does nothing when no user is expanded or a repository fetch is in flight,
// and reports whether a fetch was made. A page that arrives after the
// selection changed is discarded without touching the state.
func (s *Store) LoadMore(ctx context.Context) bool {
	s.mu.Lock()
	if s.state.SelectedUser == nil || s.state.IsLoadingRepos {
		s.mu.Unlock()
		return false
	}
	login := s.state.SelectedUser.Login
	selection := s.selections
	next := s.state.Cursor + 1
	s.state.IsLoadingRepos = true
	s.state.Error = ""
	s.mu.Unlock()

	page, err := s.api.FetchUserRepositories(ctx, login, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selections != selection {
		return true
	}
	s.state.IsLoadingRepos = false
	if err != nil {
		s.state.Error = err.Error()
		return true
	}
	s.state.Repositories = append(s.state.Repositories, page.Items...)
	s.state.HasMoreRepos = page.HasNextPage
	s.state.Cursor = next
	return true
}

// resetRepositories must be called with s.mu held.
func (s *Store) resetRepositories() {
	s.state.Repositories = []github.Repository{}
	s.state.Cursor = 1
	s.state.HasMoreRepos = false
}
