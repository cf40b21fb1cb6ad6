package display

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit   key.Binding
	Resume key.Binding
	Pause  key.Binding
	Stats  key.Binding
	Help   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Stats, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "Q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Resume: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "resume")),
	Pause:  key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "pause")),
	Stats:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// EventForKey maps a key press onto a state machine event. Keys without a
// binding map to nil.
func EventForKey(msg tea.KeyMsg) Event {
	switch {
	case key.Matches(msg, keys.Quit):
		return Quit{}
	case key.Matches(msg, keys.Resume):
		return Resume{}
	case key.Matches(msg, keys.Pause):
		return TogglePause{}
	case key.Matches(msg, keys.Stats):
		return ToggleStats{}
	}
	return nil
}
