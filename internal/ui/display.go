package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// DisplayHeight is the rendered height of the entry field (border included).
const DisplayHeight = 3

// Display is the right-aligned entry field showing the expression buffer.
type Display struct {
	width int
	text  string
	err   bool
}

// NewDisplay creates an entry field as wide as the keypad.
func NewDisplay() Display {
	return Display{width: KeypadWidth}
}

// SetWidth updates the entry field width.
func (d *Display) SetWidth(w int) {
	d.width = w
}

// SetText sets the text shown.
func (d *Display) SetText(s string) {
	d.text = s
}

// SetError marks the field as holding an expression that failed to evaluate.
func (d *Display) SetError(failed bool) {
	d.err = failed
}

// Visible returns the text that fits in the field. Long expressions keep
// their tail, which is where typing happens.
func (d *Display) Visible() string {
	inner := d.width - 4 // border and padding
	return truncateLeft(d.text, inner)
}

// View renders the entry field.
func (d *Display) View(t theme.Theme) string {
	border := t.BorderFocus
	if d.err {
		border = t.Error
	}

	barStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Surface).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Align(lipgloss.Right).
		Width(d.width - 2)

	text := d.Visible()
	if text == "" {
		text = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("0")
	}
	return barStyle.Render(text)
}
