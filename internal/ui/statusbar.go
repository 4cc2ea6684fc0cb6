package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// StatusBar shows the mode, a transient message and session info at the
// bottom of the screen.
type StatusBar struct {
	mode    string
	message string // temporary status message
	isError bool
	entries int
	sound   bool
	width   int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "CALC",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator (CALC, HISTORY, COMMAND, ...).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the current mode indicator.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetErrorMessage sets a temporary status message styled as an error.
func (s *StatusBar) SetErrorMessage(msg string) {
	s.message = msg
	s.isError = true
}

// Message returns the current status message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetEntryCount sets the number of history entries shown on the right.
func (s *StatusBar) SetEntryCount(n int) {
	s.entries = n
}

// SetSound sets the click sound indicator.
func (s *StatusBar) SetSound(on bool) {
	s.sound = on
}

// View renders the status bar.
func (s *StatusBar) View(t theme.Theme) string {
	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	switch s.mode {
	case "CALC":
		modeStyle = modeStyle.Background(t.Primary)
	case "HISTORY":
		modeStyle = modeStyle.Background(t.Secondary)
	case "COMMAND":
		modeStyle = modeStyle.Background(t.Accent)
	case "ERROR":
		modeStyle = modeStyle.Background(t.Error)
	default:
		modeStyle = modeStyle.Background(t.Info)
	}
	mode := modeStyle.Render(s.mode)

	var left string
	if s.message != "" {
		fg := t.Info
		if s.isError {
			fg = t.Error
		}
		msgStyle := lipgloss.NewStyle().
			Foreground(fg).
			Background(t.Surface).
			Padding(0, 1)
		left = msgStyle.Render(s.message)
	}

	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	sound := "🔇"
	if s.sound {
		sound = "🔔"
	}
	right := rightStyle.Render(fmt.Sprintf("%s %s  %s  %d in history", t.Icon(), t.Name, sound, s.entries))

	// Calculate spacing.
	spacerWidth := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}

	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	return barStyle.Render(mode + left + spacer + right)
}
