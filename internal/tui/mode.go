package tui

// Mode represents the current input mode of the TUI.
type Mode int

const (
	ModeQuery   Mode = iota // typing edits the filter query
	ModeCommand             // editing the command template in an overlay
)
