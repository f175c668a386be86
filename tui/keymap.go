package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	stepBack, stepForward,
	jumpBack, jumpForward,
	start, end,
	save,
	clearCache,
	back,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		stepBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "step back"),
		),
		stepForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "step forward"),
		),
		jumpBack: key.NewBinding(
			key.WithKeys("pgdown", "H"),
			key.WithHelp("pgdn", "jump back"),
		),
		jumpForward: key.NewBinding(
			key.WithKeys("pgup", "L"),
			key.WithHelp("pgup", "jump forward"),
		),
		start: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "start"),
		),
		end: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "end"),
		),
		save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save thumbnail"),
		),
		clearCache: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear cache"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case scrubState:
		return h(k.stepBack, k.stepForward, k.save, k.quit),
			h(k.stepBack, k.stepForward, k.jumpBack, k.jumpForward, k.start, k.end, k.save, k.clearCache, k.quit)
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
