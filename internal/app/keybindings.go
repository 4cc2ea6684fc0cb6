package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for tcalc.
type KeyMap struct {
	// Calculator
	Evaluate  key.Binding
	Backspace key.Binding
	Clear     key.Binding

	// Keypad focus
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding

	// Controls
	ToggleTheme   key.Binding
	ToggleHistory key.Binding
	ClearHistory  key.Binding
	FocusHistory  key.Binding

	// Modes
	CommandMode key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Evaluate: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("Enter / =", "evaluate"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("Backspace", "delete last character"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("Esc / c", "clear entry"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("Up", "focus button above"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("Down", "focus button below"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("Left", "focus button left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("Right", "focus button right"),
		),
		Press: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "press focused button"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle light/dark theme"),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "show/hide history"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear history"),
		),
		FocusHistory: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "browse history"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q / Ctrl+c", "quit"),
		),
	}
}

// sections groups the bindings for the help panel.
func (k KeyMap) sections() []struct {
	name     string
	bindings []key.Binding
} {
	return []struct {
		name     string
		bindings []key.Binding
	}{
		{"Calculator", []key.Binding{k.Evaluate, k.Backspace, k.Clear}},
		{"Keypad", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Press}},
		{"Controls", []key.Binding{k.ToggleTheme, k.ToggleHistory, k.ClearHistory, k.FocusHistory}},
		{"Modes", []key.Binding{k.CommandMode, k.Help, k.Quit}},
	}
}

// commands lists the : commands for the help panel.
var commands = []struct{ k, d string }{
	{":theme <name>", "switch theme"},
	{":sound on|off", "turn key clicks on or off"},
	{":eval <expr>", "evaluate an expression"},
	{":history", "show/hide history"},
	{":clearhistory", "clear history"},
	{":write", "save settings to the config file"},
	{":quit", "quit tcalc"},
}

// helpMarkdown renders the keymap as a markdown document.
func helpMarkdown(k KeyMap) string {
	var sb strings.Builder
	sb.WriteString("# tcalc\n\n")
	sb.WriteString("Type digits, `+ - * /`, `.` and parentheses to build an expression.\n")

	row := func(keys, desc string) {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", keys, desc)
	}

	for _, section := range k.sections() {
		fmt.Fprintf(&sb, "\n## %s\n\n| Key | Action |\n|---|---|\n", section.name)
		for _, b := range section.bindings {
			row(b.Help().Key, b.Help().Desc)
		}
	}

	sb.WriteString("\n## Commands\n\n| Command | Action |\n|---|---|\n")
	for _, c := range commands {
		row(c.k, c.d)
	}

	sb.WriteString("\n## History panel\n\n| Key | Action |\n|---|---|\n")
	row("j / Down", "next entry")
	row("k / Up", "previous entry")
	row("g / G", "oldest / newest entry")
	row("Enter", "recall expression")
	row("Esc / H", "back to keypad")
	return sb.String()
}
