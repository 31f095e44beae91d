package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the browser.
type KeyMap struct {
	// List navigation.
	Up   key.Binding
	Down key.Binding

	Toggle   key.Binding // Expand or collapse the user under the cursor.
	LoadMore key.Binding // Fetch the next page of the expanded user.

	Submit      key.Binding // Search immediately, skipping the debounce.
	FocusSearch key.Binding // Return from the list to the search box.
	FocusList   key.Binding // Leave the search box for the results.

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap supports arrow keys alongside j/k.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "expand"),
	),
	LoadMore: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "load more"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	FocusSearch: key.NewBinding(
		key.WithKeys("/", "tab", "esc"),
		key.WithHelp("/", "search"),
	),
	FocusList: key.NewBinding(
		key.WithKeys("down", "tab"),
		key.WithHelp("↓/tab", "results"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
