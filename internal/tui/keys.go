package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit  key.Binding
	enter key.Binding
	esc   key.Binding
}

var keys = keyMap{
	quit:  key.NewBinding(key.WithKeys("q", "ctrl+c")),
	enter: key.NewBinding(key.WithKeys("enter")),
	esc:   key.NewBinding(key.WithKeys("esc")),
}
