package controller

import (
	"github.com/charmbracelet/lipgloss"

	m "covrun.dev/pkg/covrun/internal/model"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	skipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// statusLabel renders a fixed-width, colored label for a status.
func statusLabel(status m.Status) string {
	switch status {
	case m.StatusPassed:
		return passStyle.Render("ok  ")
	case m.StatusFailed:
		return failStyle.Render("FAIL")
	case m.StatusSkipped:
		return skipStyle.Render("?   ")
	}

	return faintStyle.Render("----")
}

// actionStatus maps a terminal test2json action to a status.
func actionStatus(action m.Action) m.Status {
	switch action {
	case m.ActionPass:
		return m.StatusPassed
	case m.ActionSkip:
		return m.StatusSkipped
	default:
		return m.StatusFailed
	}
}
