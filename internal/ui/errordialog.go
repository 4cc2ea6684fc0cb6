package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// ErrorDialog is the modal notification shown when an evaluation fails.
type ErrorDialog struct {
	visible bool
	title   string
	message string
	detail  string
}

// NewErrorDialog creates a hidden dialog.
func NewErrorDialog() ErrorDialog {
	return ErrorDialog{}
}

// Show opens the dialog.
func (d *ErrorDialog) Show(title, message, detail string) {
	d.visible = true
	d.title = title
	d.message = message
	d.detail = detail
}

// Hide closes the dialog.
func (d *ErrorDialog) Hide() {
	d.visible = false
}

// IsVisible reports whether the dialog is shown.
func (d *ErrorDialog) IsVisible() bool {
	return d.visible
}

// Message returns the main message.
func (d *ErrorDialog) Message() string {
	return d.message
}

// View renders the dialog box; the caller centres it over the screen.
func (d *ErrorDialog) View(t theme.Theme) string {
	if !d.visible {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Error)

	messageStyle := lipgloss.NewStyle().
		Foreground(t.TextBright)

	detailStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true)

	lines := []string{
		titleStyle.Render("✖ " + d.title),
		"",
		messageStyle.Render(d.message),
	}
	if d.detail != "" {
		lines = append(lines, detailStyle.Render(d.detail))
	}
	lines = append(lines, "", dimStyle.Render("press any key to dismiss"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Background(t.Surface).
		Padding(1, 3)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
