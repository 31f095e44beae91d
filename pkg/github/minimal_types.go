package github

import (
	"time"

	"github.com/google/go-github/v69/github"
)

// User is the trimmed output type for user search results.
type User struct {
	ID          int64   `json:"id"`
	Login       string  `json:"login"`
	AvatarURL   string  `json:"avatar_url"`
	HTMLURL     string  `json:"html_url"`
	Name        *string `json:"name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PublicRepos *int    `json:"public_repos,omitempty"`
	Followers   *int    `json:"followers,omitempty"`
	Following   *int    `json:"following,omitempty"`
}

// UserSearchResult is the output type for user search. Items keep the
// relevance order GitHub returned them in.
type UserSearchResult struct {
	Items      []User `json:"items"`
	TotalCount int    `json:"total_count"`
}

// Repository is the trimmed output type for repository objects.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Language        *string   `json:"language"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RepositoryPage is one page of a user's repositories.
type RepositoryPage struct {
	Items       []Repository `json:"items"`
	HasNextPage bool         `json:"hasNextPage"`
}

func convertUser(u *github.User) User {
	return User{
		ID:          u.GetID(),
		Login:       u.GetLogin(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Name:        u.Name,
		Bio:         u.Bio,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
	}
}

func convertUserSearchResult(r *github.UsersSearchResult) UserSearchResult {
	items := make([]User, 0, len(r.Users))
	for _, u := range r.Users {
		if u == nil {
			continue
		}
		items = append(items, convertUser(u))
	}
	return UserSearchResult{
		Items:      items,
		TotalCount: r.GetTotal(),
	}
}

func convertRepository(r *github.Repository) Repository {
	return Repository{
		ID:              r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.Description,
		HTMLURL:         r.GetHTMLURL(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		Language:        r.Language,
		UpdatedAt:       r.GetUpdatedAt().Time,
	}
}

func convertRepositories(repos []*github.Repository) []Repository {
	items := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		items = append(items, convertRepository(r))
	}
	return items
}
