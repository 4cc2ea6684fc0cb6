package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// Control tokens emitted by the control row. They are handled by the app,
// not the session.
const (
	TokenToggleTheme   = "theme"
	TokenToggleHistory = "history"
	TokenClearHistory  = "clearhistory"
)

// Button is one keypad cell.
type Button struct {
	Label    string
	Token    string
	Operator bool
	width    int
}

// Keypad geometry.
const (
	buttonWidth   = 8
	buttonGap     = 1
	controlWidth  = 14
	gridColumns   = 5
	tallButton    = 3
	compactButton = 1
)

// KeypadWidth is the rendered width of the keypad.
const KeypadWidth = gridColumns*buttonWidth + (gridColumns-1)*buttonGap

// Keypad is the calculator button grid plus the control row.
type Keypad struct {
	grid     [][]Button
	controls []Button
	row, col int
	compact  bool
}

// NewKeypad creates the keypad in the classic layout.
func NewKeypad() Keypad {
	labels := [][]string{
		{"7", "8", "9", "/", "C"},
		{"4", "5", "6", "*", "("},
		{"1", "2", "3", "-", ")"},
		{"0", ".", "=", "+", "⌫"},
	}
	grid := make([][]Button, len(labels))
	for r, row := range labels {
		for _, label := range row {
			grid[r] = append(grid[r], Button{
				Label:    label,
				Token:    labelToken(label),
				Operator: strings.Contains("+-*/", label),
				width:    buttonWidth,
			})
		}
	}

	kp := Keypad{
		grid: grid,
		controls: []Button{
			{Token: TokenToggleTheme, width: controlWidth},
			{Token: TokenToggleHistory, width: controlWidth},
			{Label: "Clear History", Token: TokenClearHistory, width: controlWidth},
		},
	}
	kp.SetThemeIcon(theme.Default.Icon())
	kp.SetHistoryVisible(true)
	return kp
}

func labelToken(label string) string {
	switch label {
	case "C":
		return "clear"
	case "⌫":
		return "backspace"
	default:
		return label
	}
}

// SetThemeIcon updates the theme button label.
func (kp *Keypad) SetThemeIcon(icon string) {
	kp.controls[0].Label = icon + " Theme"
}

// SetHistoryVisible updates the history button label.
func (kp *Keypad) SetHistoryVisible(visible bool) {
	if visible {
		kp.controls[1].Label = "Hide History"
	} else {
		kp.controls[1].Label = "Show History"
	}
}

// SetCompact switches to one-line buttons for short terminals.
func (kp *Keypad) SetCompact(compact bool) {
	kp.compact = compact
}

// Height returns the rendered height of the keypad including the control row.
func (kp *Keypad) Height() int {
	rows := len(kp.grid)
	return rows*kp.buttonHeight() + (rows-1) + 1 + 1
}

func (kp *Keypad) buttonHeight() int {
	if kp.compact {
		return compactButton
	}
	return tallButton
}

func (kp *Keypad) rows() int {
	return len(kp.grid) + 1
}

func (kp *Keypad) rowAt(r int) []Button {
	if r < len(kp.grid) {
		return kp.grid[r]
	}
	return kp.controls
}

// Focused returns the button under the cursor.
func (kp *Keypad) Focused() Button {
	return kp.rowAt(kp.row)[kp.col]
}

// Move shifts the cursor by dr rows and dc columns, clamped to the keypad.
func (kp *Keypad) Move(dr, dc int) {
	kp.row = clamp(kp.row+dr, 0, kp.rows()-1)
	kp.col = clamp(kp.col+dc, 0, len(kp.rowAt(kp.row))-1)
}

// Focus places the cursor on the button with the given token.
func (kp *Keypad) Focus(token string) bool {
	for r := 0; r < kp.rows(); r++ {
		for c, b := range kp.rowAt(r) {
			if b.Token == token {
				kp.row, kp.col = r, c
				return true
			}
		}
	}
	return false
}

// HitTest maps a cell relative to the keypad's top-left corner to a button.
func (kp *Keypad) HitTest(x, y int) (Button, bool) {
	if x < 0 || y < 0 {
		return Button{}, false
	}
	h := kp.buttonHeight()
	gridHeight := len(kp.grid)*h + len(kp.grid) - 1

	if y < gridHeight {
		if y%(h+1) >= h {
			return Button{}, false
		}
		return hitRow(kp.grid[y/(h+1)], x)
	}
	if y == gridHeight+1 {
		return hitRow(kp.controls, x)
	}
	return Button{}, false
}

func hitRow(row []Button, x int) (Button, bool) {
	left := 0
	for _, b := range row {
		if x >= left && x < left+b.width {
			return b, true
		}
		left += b.width + buttonGap
	}
	return Button{}, false
}

// View renders the keypad.
func (kp *Keypad) View(t theme.Theme) string {
	h := kp.buttonHeight()

	var lines []string
	for r, row := range kp.grid {
		lines = append(lines, kp.renderRow(t, row, r, h))
		if r < len(kp.grid)-1 {
			lines = append(lines, "")
		}
	}
	lines = append(lines, "")
	lines = append(lines, kp.renderRow(t, kp.controls, len(kp.grid), 1))

	return strings.Join(lines, "\n")
}

func (kp *Keypad) renderRow(t theme.Theme, row []Button, r, height int) string {
	gap := lipgloss.NewStyle().Width(buttonGap).Height(height).Render("")

	var cells []string
	for c, b := range row {
		bg := t.Button
		if b.Operator {
			bg = t.Operator
		}
		if b.Token == "=" {
			bg = t.Primary
		}
		style := lipgloss.NewStyle().
			Width(b.width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.ButtonText).
			Background(bg)
		if r == kp.row && c == kp.col {
			style = style.Background(t.ButtonFocus).Bold(true)
		}
		cells = append(cells, style.Render(b.Label))
		if c < len(row)-1 {
			cells = append(cells, gap)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
