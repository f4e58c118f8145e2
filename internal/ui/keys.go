package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/ptop/internal/app"
)

// keyMap is the help bar content for one input mode.
type keyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return k.short }
func (k keyMap) FullHelp() [][]key.Binding { return k.full }

var (
	quitKey      = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	filterKey    = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter"))
	procNavKey   = key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "process"))
	alertNavKey  = key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "alert"))
	sortKey      = key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "sort"))
	terminateKey = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "terminate"))
	cpuAlertKey  = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cpu alert"))
	memAlertKey  = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mem alert"))
	exitAlertKey = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "exit alert"))
	armKey       = key.NewBinding(key.WithKeys("a", "d"), key.WithHelp("a/d", "arm/disarm"))

	commitKey    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply"))
	backspaceKey = key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete"))
	interruptKey = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
)

var normalKeys = keyMap{
	short: []key.Binding{quitKey, filterKey, procNavKey, alertNavKey, sortKey, terminateKey,
		cpuAlertKey, memAlertKey, exitAlertKey, armKey},
	full: [][]key.Binding{
		{procNavKey, alertNavKey, sortKey, filterKey},
		{cpuAlertKey, memAlertKey, exitAlertKey, armKey},
		{terminateKey, quitKey},
	},
}

var inputKeys = keyMap{
	short: []key.Binding{commitKey, backspaceKey, interruptKey},
	full:  [][]key.Binding{{commitKey, backspaceKey, interruptKey}},
}

func keysFor(m app.Mode) keyMap {
	if m == app.ModeNormal {
		return normalKeys
	}
	return inputKeys
}

// decode turns a terminal key message into logical keys. Pasted or
// batched runes yield one key each; unbound keys yield none.
func decode(msg tea.KeyMsg) []app.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]app.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, app.RuneKey(r))
		}
		return keys
	case tea.KeySpace:
		return []app.Key{app.RuneKey(' ')}
	case tea.KeyUp:
		return []app.Key{{Code: app.KeyUp}}
	case tea.KeyDown:
		return []app.Key{{Code: app.KeyDown}}
	case tea.KeyEnter:
		return []app.Key{{Code: app.KeyEnter}}
	case tea.KeyBackspace:
		return []app.Key{{Code: app.KeyBackspace}}
	case tea.KeyCtrlC:
		return []app.Key{{Code: app.KeyInterrupt}}
	}
	return nil
}
