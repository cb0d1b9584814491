package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	// ── Terminal resize ────────────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.recalcLayout()
		if !m.ready {
			m.ready = true
		}
		m.viewport.SetContent(truncateLines(m.content, m.viewport.Width))

	// ── Session engine update ──────────────────────────────────────────────
	case engineUpdateMsg:
		m.status = msg.Status
		m.preview = msg.Preview
		m.modeHint = msg.Mode
		m.errMsg = msg.Err
		if msg.Redraw {
			m.content = renderOutput(msg.Result, m.color)
			m.panelHeight = msg.Height
			m = m.recalcLayout()
			m.viewport.SetContent(truncateLines(m.content, m.viewport.Width))
			m.viewport.GotoTop()
		}
		cmds = append(cmds, waitForUpdate(m.engine))

	case engineClosedMsg:
		return m, tea.Quit

	// ── Input file changed on disk ─────────────────────────────────────────
	case inputChangedMsg:
		m.engine.Rerun()
		cmds = append(cmds, waitForInputChange(m.watcher))

	// ── Spinner ────────────────────────────────────────────────────────────
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	// ── Keyboard ──────────────────────────────────────────────────────────
	case tea.KeyMsg:
		if m.mode == ModeCommand {
			return m.updateCommandMode(msg)
		}
		return m.updateQueryMode(msg)
	}

	// Forward remaining events (mouse wheel etc.) to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// ── Per-mode key handlers ──────────────────────────────────────────────────

func (m Model) updateQueryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if !m.ending {
			m.ending = true
			m.engine.End()
		}
		// Quit happens when the updates channel closes.
		return m, nil

	case key.Matches(msg, keys.EditCommand):
		m.mode = ModeCommand
		m.cmdInput.SetValue(m.cmdRaw)
		m.cmdInput.CursorEnd()
		m.cmdInput.Focus()
		m.queryInput.Blur()
		return m, textinput.Blink

	case key.Matches(msg, keys.CycleFormat):
		m.engine.CycleWriteFormat()
		return m, nil

	case key.Matches(msg, keys.ScrollUp):
		m.viewport.ScrollUp(3)
		return m, nil

	case key.Matches(msg, keys.ScrollDown):
		m.viewport.ScrollDown(3)
		return m, nil
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	m.engine.QueryChanged(m.queryInput.Value())
	return m, cmd
}

func (m Model) updateCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		// Quit works from the overlay too; esc only cancels the edit.
		if !m.ending {
			m.ending = true
			m.engine.End()
		}
		return m, nil
	case "esc":
		m.mode = ModeQuery
		m.cmdInput.Blur()
		m.queryInput.Focus()
		return m, nil
	case "enter":
		raw := strings.TrimSpace(m.cmdInput.Value())
		if raw != "" && raw != m.cmdRaw {
			m.cmdRaw = raw
			m.engine.ModifyCommand(raw)
		}
		m.mode = ModeQuery
		m.cmdInput.Blur()
		m.queryInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.cmdInput, cmd = m.cmdInput.Update(msg)
	return m, cmd
}

// ── Helpers ────────────────────────────────────────────────────────────────

// renderOutput prepares result bytes for the viewport. Color mode preserves
// SGR escape codes; otherwise they are stripped so uncolored terminals don't
// show raw escapes.
func renderOutput(b []byte, color bool) string {
	s := strings.TrimRight(string(b), "\n")
	if color {
		return s
	}
	return ansi.Strip(s)
}

// truncateLines clips any line wider than maxWidth to prevent frame overflow.
// Uses ANSI-aware truncation so escape codes don't corrupt the layout.
func truncateLines(s string, maxWidth int) string {
	if maxWidth <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, maxWidth, "")
	}
	return strings.Join(lines, "\n")
}
