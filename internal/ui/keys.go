package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings handled by the root model. View
// packages own their local keys.
type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Back      key.Binding
	Login     key.Binding
	Logout    key.Binding
	Feed      key.Binding
	MyPosts   key.Binding
	NewPost   key.Binding
	Profile   key.Binding
}

var Keys = KeyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Login:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "login")),
	Logout:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),
	Feed:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "feed")),
	MyPosts:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "my posts")),
	NewPost:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "new post")),
	Profile:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "profile")),
}
