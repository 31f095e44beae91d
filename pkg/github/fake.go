package github

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Fake is an in-memory API with a fixed set of users. It applies the same
// input validation as Client and is used for local runs without network
// access and for end-to-end tests.
type Fake struct {
	users []User
	repos map[string][]Repository
}

// NewFake returns a Fake seeded with octocat (8 repositories), torvalds
// (100 repositories) and testuser (none).
func NewFake() *Fake {
	f := &Fake{repos: make(map[string][]Repository)}

	f.addUser(1, "octocat", 8)
	f.addUser(2, "torvalds", 100)
	f.addUser(3, "testuser", 0)

	f.repos["octocat"] = []Repository{
		fakeRepo(1, "octocat", "Hello-World", "My first repository on GitHub!", "TypeScript", 2000, 500, "2024-01-15T10:30:00Z"),
		fakeRepo(2, "octocat", "Spoon-Knife", "This repo is for demonstration purposes only.", "HTML", 12000, 8000, "2024-01-10T08:20:00Z"),
		fakeRepo(3, "octocat", "octocat.github.io", "Personal website", "JavaScript", 150, 30, "2023-12-20T14:45:00Z"),
		fakeRepo(4, "octocat", "test-repo", "Test repository", "Python", 50, 10, "2023-11-05T09:15:00Z"),
		fakeRepo(5, "octocat", "another-repo", "Another test repository", "Go", 25, 5, "2023-10-12T16:30:00Z"),
		fakeRepo(6, "octocat", "sample-project", "Sample project for testing", "Rust", 10, 2, "2023-09-18T11:00:00Z"),
		fakeRepo(7, "octocat", "demo-app", "Demo application", "Java", 5, 1, "2023-08-22T13:45:00Z"),
		fakeRepo(8, "octocat", "learning-git", "Learning git basics", "", 3, 0, "2023-07-30T10:20:00Z"),
	}

	languages := []string{"C", "C++", "Rust", "Python", ""}
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	torvalds := make([]Repository, 0, 100)
	for i := 0; i < 100; i++ {
		r := fakeRepo(int64(100+i), "torvalds", fmt.Sprintf("repo-%d", i+1),
			fmt.Sprintf("Repository %d description", i+1), languages[i%len(languages)],
			(i*7919)%10000, (i*104729)%1000, "")
		r.UpdatedAt = base.Add(-time.Duration(i) * 72 * time.Hour)
		torvalds = append(torvalds, r)
	}
	f.repos["torvalds"] = torvalds
	f.repos["testuser"] = []Repository{}

	for login := range f.repos {
		repos := f.repos[login]
		sort.SliceStable(repos, func(i, j int) bool {
			return strings.ToLower(repos[i].FullName) < strings.ToLower(repos[j].FullName)
		})
	}
	return f
}

func (f *Fake) addUser(id int64, login string, publicRepos int) {
	repos := publicRepos
	f.users = append(f.users, User{
		ID:          id,
		Login:       login,
		AvatarURL:   fmt.Sprintf("https://avatars.githubusercontent.com/u/%d", id),
		HTMLURL:     "https://github.com/" + login,
		PublicRepos: &repos,
	})
}

func fakeRepo(id int64, owner, name, description, language string, stars, forks int, updated string) Repository {
	r := Repository{
		ID:              id,
		Name:            name,
		FullName:        owner + "/" + name,
		HTMLURL:         "https://github.com/" + owner + "/" + name,
		StargazersCount: stars,
		ForksCount:      forks,
	}
	if description != "" {
		r.Description = &description
	}
	if language != "" {
		r.Language = &language
	}
	if updated != "" {
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	}
	return r
}

// SearchUsers matches logins containing query, case-insensitively.
func (f *Fake) SearchUsers(_ context.Context, query string, limit int) (*UserSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, EmptyQuery()
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]User, 0)
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Login), needle) {
			matches = append(matches, u)
		}
	}

	items := matches
	if len(items) > limit {
		items = items[:limit]
	}
	return &UserSearchResult{Items: items, TotalCount: len(matches)}, nil
}

// GetUserRepositories pages through the seeded repositories. Unknown users
// have no repositories.
func (f *Fake) GetUserRepositories(_ context.Context, username string, page, perPage int) (*RepositoryPage, error) {
	if strings.TrimSpace(username) == "" {
		return nil, EmptyUsername()
	}
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	repos := f.repos[strings.ToLower(username)]
	start := (page - 1) * perPage
	if start > len(repos) {
		start = len(repos)
	}
	end := start + perPage
	if end > len(repos) {
		end = len(repos)
	}

	items := make([]Repository, end-start)
	copy(items, repos[start:end])
	return &RepositoryPage{Items: items, HasNextPage: end < len(repos)}, nil
}

// FakeFactory returns a NewAPIFn that always hands out f.
func FakeFactory(f *Fake) NewAPIFn {
	return func(context.Context) (API, error) {
		return f, nil
	}
}
