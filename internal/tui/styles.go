package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	headingStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	barFullStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2")).Padding(0, 1)
)

// levelColors follows the level from bright to dim
var levelColors = map[domain.SunlightLevel]lipgloss.Color{
	domain.Strong:     lipgloss.Color("11"), // yellow
	domain.Moderate:   lipgloss.Color("10"), // green
	domain.Weak:       lipgloss.Color("6"),  // cyan
	domain.AlmostNone: lipgloss.Color("8"),  // gray
}

func levelStyle(level domain.SunlightLevel) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(levelColors[level])
}
