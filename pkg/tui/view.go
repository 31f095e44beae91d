package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/dustin/go-humanize"

	"github.com/github/github-user-browser/pkg/github"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GitHub User Search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.state.IsLoadingUsers {
		fmt.Fprintf(&b, "%s Searching users...\n\n", m.spinner.View())
	}

	if m.state.Error != "" {
		b.WriteString(errorStyle.Render("Error: " + m.state.Error))
		b.WriteString("\n\n")
	}

	switch {
	case m.inputIsBlank() && len(m.state.Users) == 0 && !m.state.IsLoadingUsers:
		b.WriteString(mutedStyle.Render("Enter a GitHub username to get started"))
		b.WriteString("\n")
	case m.state.IsLoadingUsers:
	case len(m.state.Users) == 0 && strings.TrimSpace(m.state.Query) != "":
		b.WriteString(mutedStyle.Render("No users found"))
		b.WriteString("\n")
	default:
		m.renderUsers(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderUsers(b *strings.Builder) {
	for i, user := range m.state.Users {
		marker := "  "
		if m.focus == focusList && i == m.cursor {
			marker = "› "
		}
		arrow := "▸"
		style := userStyle
		if m.isExpanded(user) {
			arrow = "▾"
			style = selectedUserStyle
		}
		fmt.Fprintf(b, "%s%s %s\n", marker, arrow, style.Render(user.Login))

		if m.isExpanded(user) {
			m.renderRepositories(b, user)
		}
	}
}

func (m Model) renderRepositories(b *strings.Builder, user github.User) {
	const indent = "      "
	repos := m.state.Repositories

	if len(repos) == 0 {
		if m.state.IsLoadingRepos {
			fmt.Fprintf(b, "%s%s Loading repositories...\n", indent, m.spinner.View())
		} else {
			fmt.Fprintf(b, "%s%s\n", indent, mutedStyle.Render("No public repositories found for "+user.Login))
		}
		return
	}

	now := m.now()
	for _, repo := range repos {
		b.WriteString(indent)
		b.WriteString(formatRepository(repo, now))
		b.WriteString("\n")
		if repo.Description != nil && *repo.Description != "" {
			fmt.Fprintf(b, "%s  %s\n", indent, mutedStyle.Render(*repo.Description))
		}
	}

	fmt.Fprintf(b, "%s%s\n", indent, mutedStyle.Render(showingCount(len(repos))))
	if m.state.HasMoreRepos {
		if m.state.IsLoadingRepos {
			fmt.Fprintf(b, "%s%s Loading more...\n", indent, m.spinner.View())
		} else {
			fmt.Fprintf(b, "%s%s\n", indent, helpStyle.Render("[m] Load more"))
		}
	}
}

// formatRepository renders one repository line: name, stars, language and
// the time since the last update relative to now.
func formatRepository(repo github.Repository, now time.Time) string {
	parts := []string{
		repoNameStyle.Render(repo.Name),
		starStyle.Render("★ " + humanize.Comma(int64(repo.StargazersCount))),
	}
	if repo.Language != nil && *repo.Language != "" {
		parts = append(parts, *repo.Language)
	}
	if !repo.UpdatedAt.IsZero() {
		parts = append(parts, mutedStyle.Render("updated "+humanize.RelTime(repo.UpdatedAt, now, "ago", "from now")))
	}
	return strings.Join(parts, "  ")
}

func showingCount(n int) string {
	if n == 1 {
		return "Showing 1 repository"
	}
	return fmt.Sprintf("Showing %s repositories", humanize.Comma(int64(n)))
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	if m.focus == focusSearch {
		bindings = []key.Binding{m.keys.Submit, m.keys.FocusList}
	} else {
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle}
		if m.canLoadMore() {
			bindings = append(bindings, m.keys.LoadMore)
		}
		bindings = append(bindings, m.keys.FocusSearch, m.keys.Quit)
	}

	parts := make([]string, 0, len(bindings)+1)
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	parts = append(parts, "ctrl+c quit")
	return helpStyle.Render(strings.Join(parts, " • "))
}
