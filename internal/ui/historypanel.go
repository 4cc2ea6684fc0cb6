package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/history"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// HistoryPanel displays past evaluations, oldest at the top.
type HistoryPanel struct {
	entries []history.Entry
	cursor  int
	offset  int // scroll offset for visible window
	width   int
	height  int
	visible bool
	focused bool
}

// NewHistoryPanel creates a visible history panel.
func NewHistoryPanel() HistoryPanel {
	return HistoryPanel{visible: true}
}

// SetEntries updates the entries displayed and follows the newest one.
func (hp *HistoryPanel) SetEntries(entries []history.Entry) {
	hp.entries = entries
	hp.GotoBottom()
}

// Entries returns the entries displayed.
func (hp *HistoryPanel) Entries() []history.Entry {
	return hp.entries
}

// SetSize updates the panel dimensions.
func (hp *HistoryPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
	hp.ensureVisible()
}

// Width returns the panel width.
func (hp *HistoryPanel) Width() int {
	return hp.width
}

// SetVisible shows or hides the panel.
func (hp *HistoryPanel) SetVisible(v bool) {
	hp.visible = v
	if !v {
		hp.focused = false
	}
}

// IsVisible reports whether the panel is shown.
func (hp *HistoryPanel) IsVisible() bool {
	return hp.visible
}

// Toggle switches visibility.
func (hp *HistoryPanel) Toggle() {
	hp.SetVisible(!hp.visible)
}

// Focus gives the panel keyboard focus.
func (hp *HistoryPanel) Focus() {
	hp.focused = true
	hp.GotoBottom()
}

// Blur removes keyboard focus.
func (hp *HistoryPanel) Blur() {
	hp.focused = false
}

// CursorUp moves the cursor up one entry.
func (hp *HistoryPanel) CursorUp() {
	if hp.cursor > 0 {
		hp.cursor--
		hp.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (hp *HistoryPanel) CursorDown() {
	if hp.cursor < len(hp.entries)-1 {
		hp.cursor++
		hp.ensureVisible()
	}
}

// GotoTop moves to the oldest entry.
func (hp *HistoryPanel) GotoTop() {
	hp.cursor = 0
	hp.offset = 0
}

// GotoBottom moves to the newest entry.
func (hp *HistoryPanel) GotoBottom() {
	hp.cursor = 0
	if len(hp.entries) > 0 {
		hp.cursor = len(hp.entries) - 1
	}
	hp.ensureVisible()
}

// SelectedEntry returns the entry at the cursor, or nil if empty.
func (hp *HistoryPanel) SelectedEntry() *history.Entry {
	if len(hp.entries) == 0 || hp.cursor < 0 || hp.cursor >= len(hp.entries) {
		return nil
	}
	e := hp.entries[hp.cursor]
	return &e
}

// visibleCount returns how many entries fit in the visible area.
// Each entry takes 2 lines (expression + result).
func (hp *HistoryPanel) visibleCount() int {
	// 2 lines for header (title + separator), 1 for the hint
	available := hp.height - 3
	count := available / 2
	if count < 1 {
		count = 1
	}
	return count
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (hp *HistoryPanel) ensureVisible() {
	visible := hp.visibleCount()
	if hp.cursor < hp.offset {
		hp.offset = hp.cursor
	}
	if hp.cursor >= hp.offset+visible {
		hp.offset = hp.cursor - visible + 1
	}
	if hp.offset < 0 {
		hp.offset = 0
	}
}

// View renders the history panel.
func (hp *HistoryPanel) View(t theme.Theme) string {
	if !hp.visible {
		return ""
	}

	panelStyle := lipgloss.NewStyle().
		Width(hp.width).
		Height(hp.height).
		Background(t.Background)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(hp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.ButtonFocus).
		Bold(true).
		Width(hp.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(hp.width).
		Padding(0, 1)

	resultStyle := lipgloss.NewStyle().
		Foreground(t.Success).
		Width(hp.width).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	title := "History"
	if n := len(hp.entries); n > 0 {
		title = fmt.Sprintf("History (%d)", n)
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	sepWidth := hp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if len(hp.entries) == 0 {
		sb.WriteString(dimStyle.Render("No calculations yet."))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := hp.visibleCount()
	end := hp.offset + visible
	if end > len(hp.entries) {
		end = len(hp.entries)
	}

	maxLen := hp.width - 4
	if maxLen < 10 {
		maxLen = 10
	}

	for i := hp.offset; i < end; i++ {
		entry := hp.entries[i]

		expr := truncateLeft(entry.Expression, maxLen-2)
		result := truncateLeft("= "+entry.Result, maxLen-len(timeAgo(entry.At))-2)
		meta := fmt.Sprintf("%s  %s", result, timeAgo(entry.At))

		if hp.focused && i == hp.cursor {
			sb.WriteString(selectedStyle.Render("▸ " + expr))
			sb.WriteString("\n")
			sb.WriteString(selectedStyle.Render("  " + meta))
		} else {
			sb.WriteString(normalStyle.Render("  " + expr))
			sb.WriteString("\n")
			sb.WriteString(resultStyle.Render("  " + meta))
		}
		sb.WriteString("\n")
	}

	if hp.focused {
		linesUsed := 2 + (end-hp.offset)*2
		for i := linesUsed; i < hp.height-1; i++ {
			sb.WriteString("\n")
		}
		hintStyle := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Italic(true).
			Padding(0, 1)
		sb.WriteString(hintStyle.Render("j/k:move  Enter:recall  Esc:back"))
	}

	return panelStyle.Render(sb.String())
}

// truncateLeft keeps the last n runes of s, marking the cut with "…".
func truncateLeft(s string, n int) string {
	runes := []rune(s)
	if n < 1 {
		n = 1
	}
	if len(runes) <= n {
		return s
	}
	return "…" + string(runes[len(runes)-n+1:])
}

// timeAgo returns a human-readable relative time string.
func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
