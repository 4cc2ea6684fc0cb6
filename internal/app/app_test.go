package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tcalc/internal/history"
	"github.com/vidyasagar/tcalc/internal/session"
	"github.com/vidyasagar/tcalc/internal/storage"
)

type countingBeeper struct {
	n int
}

func (b *countingBeeper) Beep() { b.n++ }

type failingLog struct {
	history.Memory
}

func (*failingLog) Record(string, string) error { return errors.New("disk full") }

func newModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	m := New(session.New(nil, nil), nil, opts...)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressKey(t *testing.T, m Model, kt tea.KeyType) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: kt})
}

func click(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	return update(t, m, tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
}

func TestTypeAndEvaluate(t *testing.T) {
	m := newModel(t)

	m = typeKeys(t, m, "2+3*4")
	assert.Equal(t, "2+3*4", m.Display())

	m = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, "14", m.Display())
	assert.Equal(t, ModeCalc, m.Mode())

	entries, err := m.session.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2+3*4 = 14", entries[0].String())
	assert.Len(t, m.historyPanel.Entries(), 1)
}

func TestEqualsKeyEvaluates(t *testing.T) {
	m := newModel(t)
	m = typeKeys(t, m, "(1+2)*3=")
	assert.Equal(t, "9", m.Display())
}

func TestEvaluationErrorsOpenDialog(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"division by zero", "5/0", "Division by zero"},
		{"invalid", "2++", "Invalid Expression"},
		{"unbalanced", "(1+2", "Invalid Expression"},
		{"empty", "", "Nothing to evaluate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)
			m = typeKeys(t, m, tt.input)
			m = pressKey(t, m, tea.KeyEnter)

			assert.Equal(t, ModeError, m.Mode())
			assert.True(t, m.errorDialog.IsVisible())
			assert.Equal(t, tt.message, m.errorDialog.Message())
			assert.Equal(t, tt.input, m.Display())
			assert.Empty(t, m.historyPanel.Entries())
		})
	}
}

func TestAnyKeyDismissesError(t *testing.T) {
	m := newModel(t)
	m = typeKeys(t, m, "5/0=")
	require.Equal(t, ModeError, m.Mode())

	// x would clear history in calc mode; here it only dismisses.
	m = typeKeys(t, m, "x")
	assert.Equal(t, ModeCalc, m.Mode())
	assert.False(t, m.errorDialog.IsVisible())
	assert.Equal(t, "5/0", m.Display())

	m = typeKeys(t, m, "5/0=")
	require.Equal(t, ModeError, m.Mode())
	m = click(t, m, 0, 0)
	assert.Equal(t, ModeCalc, m.Mode())
}

func TestBackspaceAndClear(t *testing.T) {
	m := newModel(t)

	m = pressKey(t, m, tea.KeyBackspace)
	assert.Equal(t, "", m.Display())

	m = typeKeys(t, m, "12")
	m = pressKey(t, m, tea.KeyBackspace)
	assert.Equal(t, "1", m.Display())

	m = typeKeys(t, m, "c")
	assert.Equal(t, "", m.Display())

	m = typeKeys(t, m, "34")
	m = pressKey(t, m, tea.KeyEsc)
	assert.Equal(t, "", m.Display())
}

func TestControls(t *testing.T) {
	m := newModel(t)
	require.False(t, m.Theme().Dark)
	require.True(t, m.historyPanel.IsVisible())

	m = typeKeys(t, m, "t")
	assert.True(t, m.Theme().Dark)
	m = typeKeys(t, m, "t")
	assert.False(t, m.Theme().Dark)

	m = typeKeys(t, m, "h")
	assert.False(t, m.historyPanel.IsVisible())
	m = typeKeys(t, m, "h")
	assert.True(t, m.historyPanel.IsVisible())

	m = typeKeys(t, m, "1+1=2*2=")
	require.Len(t, m.historyPanel.Entries(), 2)
	m = typeKeys(t, m, "x")
	assert.Empty(t, m.historyPanel.Entries())
	assert.Equal(t, "History cleared", m.statusBar.Message())
}

func TestMouseClicksPressButtons(t *testing.T) {
	m := newModel(t)
	top := m.keypadTop
	require.Equal(t, 5, top)

	m = click(t, m, keypadLeft, top)     // 7
	m = click(t, m, keypadLeft+9, top+4) // 5
	assert.Equal(t, "75", m.Display())

	m = click(t, m, keypadLeft+27, top+4) // *
	m = click(t, m, keypadLeft, top+8)    // 1
	m = click(t, m, keypadLeft+18, top+12)
	assert.Equal(t, "75", m.Display())

	// Gap between buttons.
	m = click(t, m, keypadLeft+8, top)
	assert.Equal(t, "75", m.Display())

	// Control row.
	m = click(t, m, keypadLeft, top+16)
	assert.True(t, m.Theme().Dark)
	m = click(t, m, keypadLeft+15, top+16)
	assert.False(t, m.historyPanel.IsVisible())
}

func TestMouseIgnoresOtherButtons(t *testing.T) {
	m := newModel(t)
	m = update(t, m, tea.MouseMsg{
		X:      keypadLeft,
		Y:      m.keypadTop,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonRight,
	})
	assert.Equal(t, "", m.Display())
}

func TestCompactKeypadHitTest(t *testing.T) {
	m := New(session.New(nil, nil), nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	require.True(t, m.keypad.Height() < 17)

	m = click(t, m, keypadLeft, m.keypadTop+2)
	assert.Equal(t, "4", m.Display())
}

func TestKeypadFocusNavigation(t *testing.T) {
	m := newModel(t)

	m = pressKey(t, m, tea.KeyDown)
	m = pressKey(t, m, tea.KeyRight)
	assert.Equal(t, "5", m.keypad.Focused().Token)

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	m = update(t, m, space)
	m = update(t, m, space)
	assert.Equal(t, "55", m.Display())
}

func TestClickSound(t *testing.T) {
	beeper := &countingBeeper{}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newModel(t, WithBeeper(beeper), WithClock(func() time.Time { return now }))

	// Held key: the repeat does not click.
	m = typeKeys(t, m, "11")
	assert.Equal(t, 1, beeper.n)

	m = typeKeys(t, m, "2")
	assert.Equal(t, 2, beeper.n)

	// A click is always a fresh press.
	m = click(t, m, keypadLeft+9, m.keypadTop+8)
	assert.Equal(t, 3, beeper.n)

	// Controls are silent.
	m = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, 3, beeper.n)
	assert.Equal(t, "1122", m.Display())
}

func TestMutedModel(t *testing.T) {
	beeper := &countingBeeper{}
	m := newModel(t, WithBeeper(beeper), WithMuted())

	m = typeKeys(t, m, "123")
	assert.Equal(t, 0, beeper.n)
	assert.False(t, m.sound)

	// A config reload cannot unmute a muted run.
	cfg := storage.DefaultConfig()
	m = update(t, m, ConfigReloadedMsg{Config: &cfg})
	assert.False(t, m.sound)
}

func TestCommandMode(t *testing.T) {
	m := newModel(t)

	m = typeKeys(t, m, ":")
	require.Equal(t, ModeCommand, m.Mode())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("theme nord")})
	m = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, ModeCalc, m.Mode())
	assert.Equal(t, "nord", m.Theme().Name)

	m = typeKeys(t, m, ":")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("eval 6 * 7")})
	m = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, "42", m.Display())

	m = typeKeys(t, m, ":")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sound off")})
	m = pressKey(t, m, tea.KeyEnter)
	assert.False(t, m.sound)

	m = typeKeys(t, m, ":")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bogus")})
	m = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, "Unknown command: bogus", m.statusBar.Message())

	m = typeKeys(t, m, ":")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("theme neon")})
	m = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, "nord", m.Theme().Name)
	assert.Contains(t, m.statusBar.Message(), "Unknown theme: neon")
}

func TestCommandModeEscape(t *testing.T) {
	m := newModel(t)
	m = typeKeys(t, m, ":")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("12")})
	m = pressKey(t, m, tea.KeyEsc)

	assert.Equal(t, ModeCalc, m.Mode())
	assert.False(t, m.commandBar.IsActive())
	assert.Equal(t, "", m.Display())
}

func TestWriteCommandSavesConfig(t *testing.T) {
	path := t.TempDir() + "/config.toml"
	cfg, err := storage.LoadConfigFile(path)
	require.NoError(t, err)

	m := New(session.New(nil, nil), cfg)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = typeKeys(t, m, "t:")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("write")})
	m = pressKey(t, m, tea.KeyEnter)

	saved, err := storage.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", saved.Theme)
}

func TestHistoryModeRecall(t *testing.T) {
	m := newModel(t)
	m = typeKeys(t, m, "1+1=c2*3=")

	m = typeKeys(t, m, "H")
	require.Equal(t, ModeHistory, m.Mode())
	require.NotNil(t, m.historyPanel.SelectedEntry())
	assert.Equal(t, "2*3", m.historyPanel.SelectedEntry().Expression)

	m = typeKeys(t, m, "k")
	m = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, ModeCalc, m.Mode())
	assert.Equal(t, "1+1", m.Display())
}

func TestHistoryModeShowsHiddenPanel(t *testing.T) {
	m := newModel(t)
	m = typeKeys(t, m, "h")
	require.False(t, m.historyPanel.IsVisible())

	m = typeKeys(t, m, "H")
	assert.True(t, m.historyPanel.IsVisible())
	m = pressKey(t, m, tea.KeyEsc)
	assert.Equal(t, ModeCalc, m.Mode())
}

func TestHelpMode(t *testing.T) {
	m := newModel(t)
	m = typeKeys(t, m, "?")
	assert.Equal(t, ModeHelp, m.Mode())
	assert.Contains(t, m.View(), "Keybindings")

	// Digits do not reach the calculator while help is open.
	m = typeKeys(t, m, "5")
	assert.Equal(t, "", m.Display())

	m = pressKey(t, m, tea.KeyEsc)
	assert.Equal(t, ModeCalc, m.Mode())
}

func TestConfigReload(t *testing.T) {
	m := newModel(t)

	cfg := storage.DefaultConfig()
	cfg.Theme = "dracula"
	cfg.ShowHistory = false
	cfg.Sound.Enabled = false
	m = update(t, m, ConfigReloadedMsg{Config: &cfg})

	assert.Equal(t, "dracula", m.Theme().Name)
	assert.False(t, m.historyPanel.IsVisible())
	assert.False(t, m.sound)
	assert.Equal(t, "Config reloaded", m.statusBar.Message())

	m = update(t, m, ConfigErrorMsg{Err: errors.New("parsing config: bad")})
	assert.Equal(t, "Config: parsing config: bad", m.statusBar.Message())
}

func TestHistoryWriteFailureIsReported(t *testing.T) {
	m := New(session.New(nil, &failingLog{}), nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = typeKeys(t, m, "1+1=")
	assert.Equal(t, "2", m.Display())
	assert.Equal(t, ModeCalc, m.Mode())
	assert.Contains(t, m.statusBar.Message(), "disk full")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m := New(session.New(nil, nil), nil)
	assert.Contains(t, m.View(), "Loading tcalc")

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = typeKeys(t, m, "12+7")
	view := m.View()
	assert.Contains(t, view, "tcalc")
	assert.Contains(t, view, "12+7")
	assert.Contains(t, view, "Clear History")
	assert.Contains(t, view, "History")

	m = typeKeys(t, m, "/0=")
	assert.Contains(t, m.View(), "Division by zero")
}

func TestHelpMarkdownListsBindings(t *testing.T) {
	md := helpMarkdown(DefaultKeyMap())
	assert.Contains(t, md, "| `Enter / =` | evaluate |")
	assert.Contains(t, md, "| `:theme <name>` | switch theme |")
}
