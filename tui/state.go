// Package tui provides the interactive seek-bar scrubbing interface.
package tui

type state int

const (
	scrubState state = iota
	errorState
)
