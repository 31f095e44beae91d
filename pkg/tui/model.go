// Package tui implements the terminal front end of the user browser. It is a
// bubbletea program that renders a [ui.Store] and turns key presses into
// store actions.
//
// Every network call runs inside a tea.Cmd. The view re-reads the store on
// completion and on every spinner tick, so loading states show up while a
// call is in flight.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/github/github-user-browser/pkg/github"
	"github.com/github/github-user-browser/pkg/ui"
)

type focus int

const (
	focusSearch focus = iota
	focusList
)

// searchDueMsg is delivered when the debounce interval has passed without
// further typing.
type searchDueMsg struct {
	query string
}

// stateChangedMsg is delivered when a store action has completed.
type stateChangedMsg struct{}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx       context.Context
	store     *ui.Store
	debouncer *ui.Debouncer
	pending   chan string
	keys      KeyMap
	now       func() time.Time

	input   textinput.Model
	spinner spinner.Model

	state  ui.State
	cursor int
	focus  focus
	width  int
}

// NewModel returns a model driving store. Typing triggers a search once input
// has been stable for debounce.
func NewModel(ctx context.Context, store *ui.Store, debounce time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "Search GitHub users..."
	input.Prompt = "> "
	input.CharLimit = 256
	input.Focus()

	return Model{
		ctx:       ctx,
		store:     store,
		debouncer: ui.NewDebouncer(debounce),
		pending:   make(chan string, 1),
		keys:      DefaultKeyMap,
		now:       time.Now,
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		state:     store.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, listenForSearch(m.pending))
}

// listenForSearch blocks until the debouncer releases a query.
func listenForSearch(pending <-chan string) tea.Cmd {
	return func() tea.Msg {
		return searchDueMsg{query: <-pending}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.debouncer.Stop()
			return m, tea.Quit
		}
		if m.focus == focusSearch {
			return m.handleSearchKeys(msg)
		}
		return m.handleListKeys(msg)

	case searchDueMsg:
		m.store.SetQuery(msg.query)
		return m, tea.Batch(m.search(), listenForSearch(m.pending))

	case stateChangedMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		m.refresh()
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.debouncer.Stop()
		m.store.SetQuery(ui.SanitizeQuery(m.input.Value()))
		return m, m.search()

	case key.Matches(msg, m.keys.FocusList):
		if len(m.state.Users) > 0 {
			m.focusList()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.schedule(ui.SanitizeQuery(m.input.Value()))
	}
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.debouncer.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor == 0 {
			cmd := m.focusSearch()
			return m, cmd
		}
		m.cursor--

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Users)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.state.Users) {
			return m, m.selectUser(m.state.Users[m.cursor])
		}

	case key.Matches(msg, m.keys.LoadMore):
		if m.canLoadMore() {
			return m, m.loadMore()
		}

	case key.Matches(msg, m.keys.FocusSearch):
		cmd := m.focusSearch()
		return m, cmd
	}
	return m, nil
}

// schedule hands query to the debouncer. Only the latest query is kept if the
// listener has not picked up the previous one yet.
func (m Model) schedule(query string) {
	pending := m.pending
	m.debouncer.Trigger(func() {
		select {
		case <-pending:
		default:
		}
		select {
		case pending <- query:
		default:
		}
	})
}

func (m Model) search() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		store.Search(ctx)
		return stateChangedMsg{}
	}
}

func (m Model) selectUser(user github.User) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		store.SelectUser(ctx, user)
		return stateChangedMsg{}
	}
}

func (m Model) loadMore() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		store.LoadMore(ctx)
		return stateChangedMsg{}
	}
}

func (m Model) canLoadMore() bool {
	return m.state.SelectedUser != nil && m.state.HasMoreRepos && !m.state.IsLoadingRepos
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
}

func (m *Model) focusSearch() tea.Cmd {
	m.focus = focusSearch
	return m.input.Focus()
}

// refresh re-reads the store and keeps the cursor on a visible user.
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	if m.cursor >= len(m.state.Users) {
		m.cursor = max(len(m.state.Users)-1, 0)
	}
	if len(m.state.Users) == 0 && m.focus == focusList {
		m.focus = focusSearch
		m.input.Focus()
	}
}

func (m Model) isExpanded(user github.User) bool {
	return m.state.SelectedUser != nil && m.state.SelectedUser.ID == user.ID
}

func (m Model) inputIsBlank() bool {
	return strings.TrimSpace(m.input.Value()) == ""
}
