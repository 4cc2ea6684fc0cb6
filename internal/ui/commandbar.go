package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// CommandBar handles vim-style : commands.
type CommandBar struct {
	input      textinput.Model
	active     bool
	width      int
	history    []string
	historyPos int
}

// NewCommandBar creates a new command bar.
func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ":"
	ti.Placeholder = "theme dark, sound off, clearhistory, q..."

	return CommandBar{
		input:      ti,
		historyPos: -1,
	}
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// Open activates the command bar.
func (c *CommandBar) Open() tea.Cmd {
	c.active = true
	c.input.Reset()
	c.historyPos = -1
	return c.input.Focus()
}

// Close deactivates the command bar.
func (c *CommandBar) Close() {
	c.active = false
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the command bar is open.
func (c *CommandBar) IsActive() bool {
	return c.active
}

// SetValue sets the text input value.
func (c *CommandBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Value returns the current input.
func (c *CommandBar) Value() string {
	return c.input.Value()
}

// Submit returns the entered command, records it and closes the bar.
func (c *CommandBar) Submit() string {
	val := strings.TrimSpace(c.input.Value())
	if val != "" {
		c.history = append(c.history, val)
	}
	c.Close()
	return val
}

// Update processes messages for the command bar.
func (c *CommandBar) Update(msg tea.Msg) tea.Cmd {
	if !c.active {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			c.Close()
			return nil
		case tea.KeyEnter:
			// Handled by the app, which calls Submit.
			return nil
		case tea.KeyUp:
			if len(c.history) > 0 {
				if c.historyPos < len(c.history)-1 {
					c.historyPos++
				}
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			}
			return nil
		case tea.KeyDown:
			if c.historyPos > 0 {
				c.historyPos--
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			} else if c.historyPos == 0 {
				c.historyPos = -1
				c.input.Reset()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the command bar.
func (c *CommandBar) View(t theme.Theme) string {
	if !c.active {
		return ""
	}

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width)

	return barStyle.Render(c.input.View())
}
