package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the calculator.
type Theme struct {
	Name string
	Dark bool

	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Text colors
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	// UI element colors
	Background  lipgloss.Color
	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Keypad
	Button      lipgloss.Color
	ButtonText  lipgloss.Color
	Operator    lipgloss.Color
	ButtonFocus lipgloss.Color

	// Semantic colors
	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
}

var themes = map[string]Theme{
	"light":   Light,
	"dark":    Dark,
	"gruvbox": Gruvbox,
	"nord":    Nord,
	"dracula": Dracula,
}

var Light = Theme{
	Name:        "light",
	Primary:     lipgloss.Color("#2563EB"),
	Secondary:   lipgloss.Color("#0891B2"),
	Accent:      lipgloss.Color("#D97706"),
	Text:        lipgloss.Color("#000000"),
	TextDim:     lipgloss.Color("#6B7280"),
	TextBright:  lipgloss.Color("#000000"),
	Background:  lipgloss.Color("#FFFFFF"),
	Surface:     lipgloss.Color("#F3F4F6"),
	Border:      lipgloss.Color("#D1D5DB"),
	BorderFocus: lipgloss.Color("#2563EB"),
	Button:      lipgloss.Color("#DDDDDD"),
	ButtonText:  lipgloss.Color("#000000"),
	Operator:    lipgloss.Color("#C7D2FE"),
	ButtonFocus: lipgloss.Color("#93C5FD"),
	Error:       lipgloss.Color("#DC2626"),
	Success:     lipgloss.Color("#16A34A"),
	Warning:     lipgloss.Color("#D97706"),
	Info:        lipgloss.Color("#2563EB"),
}

var Dark = Theme{
	Name:        "dark",
	Dark:        true,
	Primary:     lipgloss.Color("#7C3AED"),
	Secondary:   lipgloss.Color("#06B6D4"),
	Accent:      lipgloss.Color("#F59E0B"),
	Text:        lipgloss.Color("#FFFFFF"),
	TextDim:     lipgloss.Color("#9CA3AF"),
	TextBright:  lipgloss.Color("#FFFFFF"),
	Background:  lipgloss.Color("#333333"),
	Surface:     lipgloss.Color("#3F3F3F"),
	Border:      lipgloss.Color("#4B5563"),
	BorderFocus: lipgloss.Color("#7C3AED"),
	Button:      lipgloss.Color("#555555"),
	ButtonText:  lipgloss.Color("#FFFFFF"),
	Operator:    lipgloss.Color("#6D28D9"),
	ButtonFocus: lipgloss.Color("#7C3AED"),
	Error:       lipgloss.Color("#EF4444"),
	Success:     lipgloss.Color("#22C55E"),
	Warning:     lipgloss.Color("#F59E0B"),
	Info:        lipgloss.Color("#3B82F6"),
}

var Gruvbox = Theme{
	Name:        "gruvbox",
	Dark:        true,
	Primary:     lipgloss.Color("#D65D0E"),
	Secondary:   lipgloss.Color("#458588"),
	Accent:      lipgloss.Color("#D79921"),
	Text:        lipgloss.Color("#EBDBB2"),
	TextDim:     lipgloss.Color("#928374"),
	TextBright:  lipgloss.Color("#FBF1C7"),
	Background:  lipgloss.Color("#282828"),
	Surface:     lipgloss.Color("#3C3836"),
	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#D65D0E"),
	Button:      lipgloss.Color("#504945"),
	ButtonText:  lipgloss.Color("#EBDBB2"),
	Operator:    lipgloss.Color("#AF3A03"),
	ButtonFocus: lipgloss.Color("#D65D0E"),
	Error:       lipgloss.Color("#FB4934"),
	Success:     lipgloss.Color("#B8BB26"),
	Warning:     lipgloss.Color("#FABD2F"),
	Info:        lipgloss.Color("#83A598"),
}

var Nord = Theme{
	Name:        "nord",
	Dark:        true,
	Primary:     lipgloss.Color("#88C0D0"),
	Secondary:   lipgloss.Color("#81A1C1"),
	Accent:      lipgloss.Color("#EBCB8B"),
	Text:        lipgloss.Color("#ECEFF4"),
	TextDim:     lipgloss.Color("#4C566A"),
	TextBright:  lipgloss.Color("#ECEFF4"),
	Background:  lipgloss.Color("#2E3440"),
	Surface:     lipgloss.Color("#3B4252"),
	Border:      lipgloss.Color("#434C5E"),
	BorderFocus: lipgloss.Color("#88C0D0"),
	Button:      lipgloss.Color("#434C5E"),
	ButtonText:  lipgloss.Color("#ECEFF4"),
	Operator:    lipgloss.Color("#5E81AC"),
	ButtonFocus: lipgloss.Color("#88C0D0"),
	Error:       lipgloss.Color("#BF616A"),
	Success:     lipgloss.Color("#A3BE8C"),
	Warning:     lipgloss.Color("#EBCB8B"),
	Info:        lipgloss.Color("#5E81AC"),
}

var Dracula = Theme{
	Name:        "dracula",
	Dark:        true,
	Primary:     lipgloss.Color("#BD93F9"),
	Secondary:   lipgloss.Color("#8BE9FD"),
	Accent:      lipgloss.Color("#F1FA8C"),
	Text:        lipgloss.Color("#F8F8F2"),
	TextDim:     lipgloss.Color("#6272A4"),
	TextBright:  lipgloss.Color("#F8F8F2"),
	Background:  lipgloss.Color("#282A36"),
	Surface:     lipgloss.Color("#44475A"),
	Border:      lipgloss.Color("#6272A4"),
	BorderFocus: lipgloss.Color("#BD93F9"),
	Button:      lipgloss.Color("#44475A"),
	ButtonText:  lipgloss.Color("#F8F8F2"),
	Operator:    lipgloss.Color("#6272A4"),
	ButtonFocus: lipgloss.Color("#BD93F9"),
	Error:       lipgloss.Color("#FF5555"),
	Success:     lipgloss.Color("#50FA7B"),
	Warning:     lipgloss.Color("#F1FA8C"),
	Info:        lipgloss.Color("#8BE9FD"),
}

// Default is the palette used when none is configured.
var Default = Light

// Lookup returns the palette with the given name.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// Names returns all available theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Toggle flips between light and dark. Any dark palette toggles to light.
func Toggle(t Theme) Theme {
	if t.Dark {
		return Light
	}
	return Dark
}

// Icon returns the theme button label icon, sun for light and moon for dark.
func (t Theme) Icon() string {
	if t.Dark {
		return "🌚"
	}
	return "🌞"
}
