package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/framepeek-cli/framepeek/icon"
	"github.com/framepeek-cli/framepeek/key"
	"github.com/framepeek-cli/framepeek/preview"
	"github.com/framepeek-cli/framepeek/store"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/spf13/viper"
)

// previewUpdateMsg carries a preview engine snapshot into the update loop.
type previewUpdateMsg preview.State

// waitForPreview blocks until the engine publishes its next snapshot.
func (b *statefulBubble) waitForPreview() tea.Cmd {
	return func() tea.Msg {
		return previewUpdateMsg(<-b.previewChannel)
	}
}

// Init kicks off the spinner, the engine update loop and the first preview.
func (b *statefulBubble) Init() tea.Cmd {
	b.hover(0)
	return tea.Batch(b.spinnerC.Tick, b.waitForPreview())
}

// hover moves the scrub position to a percentage of the media duration and
// requests a preview for it.
func (b *statefulBubble) hover(percent float64) {
	b.hoverPercent = util.Max(0, util.Min(100, percent))
	b.engine.RequestPreview(b.hoverPercent / 100 * b.engine.Duration())
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case previewUpdateMsg:
		b.previewState = preview.State(msg)
		return b, b.waitForPreview()
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		}
	}

	switch b.state {
	case scrubState:
		return b.updateScrub(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateScrub(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	step := float64(viper.GetInt(key.TUIStepPercent))
	jump := float64(viper.GetInt(key.TUIJumpPercent))

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.stepBack):
		b.hover(b.hoverPercent - step)
	case bubblesKey.Matches(keyMsg, b.keymap.stepForward):
		b.hover(b.hoverPercent + step)
	case bubblesKey.Matches(keyMsg, b.keymap.jumpBack):
		b.hover(b.hoverPercent - jump)
	case bubblesKey.Matches(keyMsg, b.keymap.jumpForward):
		b.hover(b.hoverPercent + jump)
	case bubblesKey.Matches(keyMsg, b.keymap.start):
		b.hover(0)
	case bubblesKey.Matches(keyMsg, b.keymap.end):
		b.hover(100)
	case bubblesKey.Matches(keyMsg, b.keymap.save):
		b.saveCurrent()
	case bubblesKey.Matches(keyMsg, b.keymap.clearCache):
		b.engine.ClearCache()
		b.statusMessage = icon.Get(icon.Success) + " Preview cache cleared"
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.back):
		b.lastError = nil
		b.newState(scrubState)
	}

	return b, nil
}

// saveCurrent persists the thumbnail on screen, if any.
func (b *statefulBubble) saveCurrent() {
	handle, ok := b.previewState.Thumbnail.Get()
	if !ok {
		b.statusMessage = icon.Get(icon.Fail) + " Nothing to save yet"
		return
	}

	record, err := store.Save(handle, b.options.Target, b.previewState.Time)
	if err != nil {
		b.raiseError(err)
		return
	}

	b.statusMessage = fmt.Sprintf("%s Saved %s", icon.Get(icon.Success), record.Path)
}
