// Package api implements the browser facing HTTP endpoints that proxy user
// search and repository listing to GitHub.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/github/github-user-browser/pkg/github"
	ghlog "github.com/github/github-user-browser/pkg/log"
	log "github.com/sirupsen/logrus"
)

const (
	msgQueryRequired    = `Query parameter "q" is required`
	msgUsernameRequired = "Username parameter is required"

	fallbackUsers = "Failed to fetch users from GitHub"
	fallbackRepos = "Failed to fetch repositories from GitHub"
)

// Options tunes the upstream page sizes used by the handlers.
type Options struct {
	SearchLimit int
	PerPage     int
}

// UsersHandler serves GET /api/users?q=.
type UsersHandler struct {
	newAPI github.NewAPIFn
	logger *log.Entry
	limit  int
}

// NewUsersHandler creates the user search endpoint. newAPI is called once
// per request.
func NewUsersHandler(newAPI github.NewAPIFn, logger log.FieldLogger, limit int) *UsersHandler {
	if limit <= 0 {
		limit = github.DefaultSearchLimit
	}
	return &UsersHandler{
		newAPI: newAPI,
		logger: ghlog.Component(logger, "UserAPI"),
		limit:  limit,
	}
}

func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: msgQueryRequired})
		return
	}

	client, err := h.newAPI(r.Context())
	if err != nil {
		writeFailure(w, h.logger, err, fallbackUsers)
		return
	}

	result, err := client.SearchUsers(r.Context(), query, h.limit)
	if err != nil {
		writeFailure(w, h.logger, err, fallbackUsers)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

// ReposHandler serves GET /api/users/{username}/repos?page=.
type ReposHandler struct {
	newAPI  github.NewAPIFn
	logger  *log.Entry
	perPage int
}

// NewReposHandler creates the repository listing endpoint. newAPI is called
// once per request.
func NewReposHandler(newAPI github.NewAPIFn, logger log.FieldLogger, perPage int) *ReposHandler {
	if perPage <= 0 {
		perPage = github.DefaultPerPage
	}
	return &ReposHandler{
		newAPI:  newAPI,
		logger:  ghlog.Component(logger, "ReposAPI"),
		perPage: perPage,
	}
}

func (h *ReposHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: msgUsernameRequired})
		return
	}
	page := parsePage(r.URL.Query().Get("page"))

	client, err := h.newAPI(r.Context())
	if err != nil {
		writeFailure(w, h.logger, err, fallbackRepos)
		return
	}

	result, err := client.GetUserRepositories(r.Context(), username, page, h.perPage)
	if err != nil {
		writeFailure(w, h.logger, err, fallbackRepos)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

// parsePage reads the page query parameter. Missing, malformed or
// non-positive values select the first page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return github.DefaultPage
	}
	return page
}
