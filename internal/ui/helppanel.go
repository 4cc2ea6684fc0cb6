package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// HelpPanel shows the keybinding reference, rendered from markdown.
type HelpPanel struct {
	viewport viewport.Model
	ready    bool
	visible  bool
	markdown string

	// Cached glamour renderer; recreated when the width or style changes.
	renderer      *glamour.TermRenderer
	rendererWidth int
	rendererStyle string
}

// NewHelpPanel creates a hidden help panel for the given markdown.
func NewHelpPanel(markdown string) HelpPanel {
	return HelpPanel{markdown: markdown}
}

// SetSize updates the panel dimensions.
func (hp *HelpPanel) SetSize(width, height int) {
	if !hp.ready {
		hp.viewport = viewport.New(width, height)
		hp.viewport.MouseWheelEnabled = true
		hp.viewport.MouseWheelDelta = 3
		hp.ready = true
	} else {
		hp.viewport.Width = width
		hp.viewport.Height = height
	}
}

// Show renders the markdown for the theme and opens the panel.
func (hp *HelpPanel) Show(t theme.Theme) error {
	hp.visible = true
	if !hp.ready {
		return nil
	}
	content, err := hp.render(t)
	if err != nil {
		// Fallback: show the raw markdown.
		content = hp.markdown
	}
	hp.viewport.SetContent(content)
	hp.viewport.GotoTop()
	return err
}

// Hide closes the panel.
func (hp *HelpPanel) Hide() {
	hp.visible = false
}

// IsVisible reports whether the panel is shown.
func (hp *HelpPanel) IsVisible() bool {
	return hp.visible
}

func (hp *HelpPanel) render(t theme.Theme) (string, error) {
	style := "light"
	if t.Dark {
		style = "dark"
	}
	width := hp.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	if hp.renderer == nil || hp.rendererWidth != width || hp.rendererStyle != style {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		hp.renderer = renderer
		hp.rendererWidth = width
		hp.rendererStyle = style
	}

	out, err := hp.renderer.Render(hp.markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// Update forwards scroll keys and mouse wheel events to the viewport.
func (hp *HelpPanel) Update(msg tea.Msg) tea.Cmd {
	if !hp.ready || !hp.visible {
		return nil
	}
	var cmd tea.Cmd
	hp.viewport, cmd = hp.viewport.Update(msg)
	return cmd
}

// View renders the panel.
func (hp *HelpPanel) View(t theme.Theme) string {
	if !hp.visible || !hp.ready {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(hp.viewport.Width).
		Padding(0, 1)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keybindings  (j/k scroll, Esc/? close)"),
		hp.viewport.View(),
	)
}
