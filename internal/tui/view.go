package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/shnupta/sift/internal/session"
)

func (m Model) View() string {
	if !m.ready {
		return "initialising..."
	}

	if m.mode == ModeCommand {
		return m.renderCommandOverlay()
	}

	header := m.renderHeader()
	panel := m.renderPanel()
	query := m.renderQueryLine()
	help := m.renderHelp()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		panel,
		query,
		help,
	)
}

// renderHeader shows the effective command preview on the left and the
// status indicator on the right.
func (m Model) renderHeader() string {
	left := " " + m.preview
	right := m.statusLabel()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	// Hard-truncate so a long command never overflows the row.
	row := left + strings.Repeat(" ", gap) + right + " "
	return styleHeader.Width(m.width).Render(ansi.Truncate(row, m.width, ""))
}

func (m Model) statusLabel() string {
	switch m.status {
	case session.StatusRunning:
		return styleStatusRunning.Render(m.spinner.View() + " running")
	case session.StatusSucceed:
		return styleStatusSucceed.Render("✓ ok")
	case session.StatusError:
		label := "✗ error"
		if m.errMsg != "" {
			label = "✗ " + m.errMsg
		}
		return styleStatusError.Render(label)
	case session.StatusNull:
		return styleStatusNull.Render("∅ empty")
	default:
		return styleStatusWaiting.Render("· waiting")
	}
}

// renderPanel draws the result surface: bottom-anchored full width, or
// centered when the surface is an overlay. Error and null states keep the
// previous content on screen; only the status label changes.
func (m Model) renderPanel() string {
	content := m.viewport.View()
	if m.content == "" {
		hint := lipgloss.NewStyle().Foreground(colSubtext).Render("type a query to filter")
		content = lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, hint)
	}

	if m.surface == session.SurfaceOverlay {
		boxed := styleOverlay.Width(m.viewport.Width).Render(content)
		return lipgloss.Place(m.width, m.viewport.Height+2, lipgloss.Center, lipgloss.Center, boxed)
	}
	return stylePanel.Width(m.width).Render(content)
}

func (m Model) renderQueryLine() string {
	prompt := stylePrompt.Render("filter> ")
	line := prompt + m.queryInput.View()
	if m.modeHint != "" {
		hint := lipgloss.NewStyle().Foreground(colSubtext).Render("  [" + m.modeHint + "]")
		line += hint
	}
	return ansi.Truncate(line, m.width, "")
}

func (m Model) renderCommandOverlay() string {
	var sb strings.Builder
	sb.WriteString(styleCmdTitle.Width(m.width).Render("Edit Command") + "\n\n")
	sb.WriteString(styleCmdInput.Render(m.cmdInput.View()) + "\n\n")
	sb.WriteString(styleHelp.Render("[enter] apply and rerun  [esc] cancel"))
	return sb.String()
}

func (m Model) renderHelp() string {
	parts := []string{
		"[ctrl+e] edit command",
		"[ctrl+t] cycle format",
		"[ctrl+p/n] scroll",
		"[esc] quit",
	}
	return styleHelp.Width(m.width).Render(strings.Join(parts, "  "))
}
