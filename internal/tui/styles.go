package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colours
	colAccent  = lipgloss.Color("#7C3AED") // purple
	colRunning = lipgloss.Color("#F59E0B") // amber
	colSucceed = lipgloss.Color("#10B981") // emerald
	colError   = lipgloss.Color("#EF4444") // red
	colNull    = lipgloss.Color("#6B7280") // grey
	colText    = lipgloss.Color("#E5E7EB")
	colSubtext = lipgloss.Color("#6B7280")
	colBorder  = lipgloss.Color("#374151")

	styleHeader = lipgloss.NewStyle().
			Foreground(colSubtext).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colBorder)

	stylePanel = lipgloss.NewStyle().
			Foreground(colText)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colBorder).
			Padding(0, 1)

	stylePrompt = lipgloss.NewStyle().
			Foreground(colAccent).
			Bold(true)

	styleStatusRunning = lipgloss.NewStyle().Foreground(colRunning)
	styleStatusSucceed = lipgloss.NewStyle().Foreground(colSucceed)
	styleStatusError   = lipgloss.NewStyle().Foreground(colError)
	styleStatusNull    = lipgloss.NewStyle().Foreground(colNull)
	styleStatusWaiting = lipgloss.NewStyle().Foreground(colSubtext)

	styleHelp = lipgloss.NewStyle().
			Foreground(colSubtext).
			PaddingLeft(1)

	styleCmdTitle = lipgloss.NewStyle().
			Background(colAccent).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	styleCmdInput = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colAccent).
			Padding(0, 1)
)
