package ui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("45")).
			Padding(0, 1)

	cpuSeriesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	memSeriesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	swapSeriesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("201"))
	coreStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	headerCellStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")).Padding(0, 1)
	cellStyle         = lipgloss.NewStyle().Padding(0, 1)
	selectedCellStyle = cellStyle.Bold(true).Reverse(true)

	armedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	disarmedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	triggeredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
