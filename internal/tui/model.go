package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shnupta/sift/internal/session"
	"github.com/shnupta/sift/internal/watch"
)

// msg types used by the BubbleTea event loop.

type engineUpdateMsg session.Update

type engineClosedMsg struct{}

type inputChangedMsg struct{}

// Model is the root BubbleTea model. It is a pure consumer of the session
// engine: keystrokes are forwarded as query edits, engine updates drive the
// result panel.
type Model struct {
	// Dimensions
	width  int
	height int

	engine  *session.Engine
	watcher watch.Iface // nil when the input has no watchable file

	// Input
	mode       Mode
	queryInput textinput.Model
	cmdInput   textinput.Model
	cmdRaw     string // current command template string

	// Result panel
	viewport    viewport.Model
	content     string // last rendered result content
	panelHeight int    // target height from the engine

	// Session state mirrored from the last update
	status   session.Status
	preview  string
	modeHint string
	errMsg   string

	surface session.Surface
	color   bool

	spinner spinner.Model
	ready   bool
	ending  bool // End() issued; waiting for the updates channel to close
}

// New returns an initialised Model driving the given engine.
func New(e *session.Engine, w watch.Iface, cfg session.Config, commandRaw string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	qi := textinput.New()
	qi.Placeholder = "query..."
	qi.CharLimit = 500
	qi.Focus()

	ci := textinput.New()
	ci.Placeholder = "command template..."
	ci.CharLimit = 500

	return Model{
		engine:      e,
		watcher:     w,
		queryInput:  qi,
		cmdInput:    ci,
		cmdRaw:      commandRaw,
		surface:     cfg.Surface,
		color:       cfg.Color,
		panelHeight: cfg.Bounds.Min,
		spinner:     sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForUpdate(m.engine),
		waitForInputChange(m.watcher),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// waitForUpdate waits for the next session update from the engine.
func waitForUpdate(e *session.Engine) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-e.Updates()
		if !ok {
			return engineClosedMsg{}
		}
		return engineUpdateMsg(u)
	}
}

// waitForInputChange waits for the next input-file change event.
func waitForInputChange(w watch.Iface) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-w.Events()
		if !ok {
			return nil
		}
		return inputChangedMsg{}
	}
}

// recalcLayout sizes the result viewport to the engine's target height,
// clipped to what the terminal can actually show.
func (m Model) recalcLayout() Model {
	// headerH is 2 because styleHeader has BorderBottom which adds a row.
	const headerH, queryH, helpH = 2, 1, 1

	vpWidth := m.panelWidth()
	avail := m.height - headerH - queryH - helpH

	vpHeight := m.panelHeight
	if vpHeight > avail {
		vpHeight = avail
	}
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	return m
}

// panelWidth is the host-chosen fraction of the viewport the result surface
// occupies: full width for the bottom panel, four fifths for the overlay.
func (m Model) panelWidth() int {
	if m.surface == session.SurfaceOverlay {
		w := m.width * 4 / 5
		if w < 20 {
			w = 20
		}
		return w
	}
	if m.width < 10 {
		return 10
	}
	return m.width
}
