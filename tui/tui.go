// Package tui provides the interactive seek-bar scrubbing interface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/framepeek-cli/framepeek/key"
	"github.com/framepeek-cli/framepeek/preview"
	"github.com/framepeek-cli/framepeek/source"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Source source.Source
	Target string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)

	engine, err := preview.NewEngine(options.Source, preview.Options{
		Precision: viper.GetFloat64(key.PreviewQuantizeSeconds),
		Debounce:  time.Duration(viper.GetInt(key.PreviewDebounceMs)) * time.Millisecond,
		Capacity:  viper.GetInt(key.CacheCapacity),
		Width:     viper.GetInt(key.CaptureWidth),
		Height:    viper.GetInt(key.CaptureHeight),
		Quality:   viper.GetInt(key.CaptureQuality),
		OnUpdate: func(state preview.State) {
			// The loop drains continuously; a full channel means it is gone.
			select {
			case bubble.previewChannel <- state:
			default:
			}
		},
	})
	if err != nil {
		return err
	}

	bubble.engine = engine

	if err := engine.Bind(options.Target); err != nil {
		return err
	}

	bubble.newState(scrubState)

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()

	if closeErr := engine.Close(); err == nil {
		err = closeErr
	}

	return err
}
