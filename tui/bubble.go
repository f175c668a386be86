// Package tui provides the interactive seek-bar scrubbing interface.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/framepeek-cli/framepeek/preview"
	"github.com/framepeek-cli/framepeek/util"
)

// statefulBubble encapsulates the scrubber's state, component models and the
// channel carrying preview engine updates.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	engine *preview.Engine

	hoverPercent   float64
	previewState   preview.State
	previewChannel chan preview.State

	statusMessage string
	lastError     error

	width, height int

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.setState(s)
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = b.width
	b.helpC.Width = b.width
}

// newBubble performs a complete initialization of the scrubber's UI model.
func newBubble(options *Options) *statefulBubble {
	bubble := statefulBubble{
		keymap:         newStatefulKeymap(),
		previewChannel: make(chan preview.State, 16),
		options:        options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
