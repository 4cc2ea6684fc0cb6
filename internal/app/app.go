package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/feedback"
	"github.com/vidyasagar/tcalc/internal/session"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
	"github.com/vidyasagar/tcalc/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeCalc    Mode = iota
	ModeHistory      // history panel focused
	ModeCommand      // command bar active
	ModeHelp         // help panel open
	ModeError        // error dialog open
)

// String returns the status bar label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeHistory:
		return "HISTORY"
	case ModeCommand:
		return "COMMAND"
	case ModeHelp:
		return "HELP"
	case ModeError:
		return "ERROR"
	default:
		return "CALC"
	}
}

// Layout constants.
const (
	headerHeight = 1
	statusHeight = 1
	keypadLeft   = 2
	panelGap     = 2
	minPanel     = 20
)

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *storage.Config
}

// ConfigErrorMsg is sent when the config file could not be reloaded.
type ConfigErrorMsg struct {
	Err error
}

// Model is the top-level bubbletea model for tcalc.
type Model struct {
	// UI components
	display      ui.Display
	keypad       ui.Keypad
	historyPanel ui.HistoryPanel
	statusBar    ui.StatusBar
	commandBar   ui.CommandBar
	errorDialog  ui.ErrorDialog
	help         ui.HelpPanel

	session   *session.Session
	theme     theme.Theme
	keys      KeyMap
	mode      Mode
	width     int
	height    int
	ready     bool
	keypadTop int // screen row of the keypad's first line

	// Sound
	beeper    feedback.Beeper
	debouncer *feedback.Debouncer
	sound     bool
	muted     bool // -no-sound; config reloads cannot turn sound back on

	config *storage.Config
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the model logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithBeeper sets the click sound.
func WithBeeper(b feedback.Beeper) Option {
	return func(m *Model) {
		m.beeper = b
	}
}

// WithTheme overrides the configured theme.
func WithTheme(t theme.Theme) Option {
	return func(m *Model) {
		m.setTheme(t)
	}
}

// WithMuted disables key clicks for the whole run.
func WithMuted() Option {
	return func(m *Model) {
		m.muted = true
		m.sound = false
		m.statusBar.SetSound(false)
	}
}

// WithClock sets the time source used for key repeat detection.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new tcalc Model around a session. A nil config uses the
// defaults.
func New(sess *session.Session, cfg *storage.Config, opts ...Option) Model {
	if sess == nil {
		sess = session.New(nil, nil)
	}
	if cfg == nil {
		def := storage.DefaultConfig()
		cfg = &def
	}

	m := Model{
		display:      ui.NewDisplay(),
		keypad:       ui.NewKeypad(),
		historyPanel: ui.NewHistoryPanel(),
		statusBar:    ui.NewStatusBar(),
		commandBar:   ui.NewCommandBar(),
		errorDialog:  ui.NewErrorDialog(),
		help:         ui.NewHelpPanel(helpMarkdown(DefaultKeyMap())),
		session:      sess,
		theme:        theme.Default,
		keys:         DefaultKeyMap(),
		mode:         ModeCalc,
		beeper:       feedback.Silent{},
		config:       cfg,
		logger:       zerolog.Nop(),
		now:          time.Now,
	}
	m.applyConfig(cfg)

	for _, opt := range opts {
		opt(&m)
	}

	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("tcalc")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.applyConfig(msg.Config)
			m.layout()
			m.statusBar.SetMessage("Config reloaded")
			m.logger.Info().Str("path", msg.Config.Path()).Msg("config reloaded")
		}
		return m, nil

	case ConfigErrorMsg:
		m.statusBar.SetErrorMessage(fmt.Sprintf("Config: %v", msg.Err))
		m.logger.Warn().Err(msg.Err).Msg("config reload failed")
		return m, nil
	}

	if m.mode == ModeCommand {
		return m, m.commandBar.Update(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tcalc..."
	}

	// Layout:
	// [header]
	// [display]     [history panel]
	// [keypad]
	// [status bar]
	// [command bar] (if active)

	if m.errorDialog.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.errorDialog.View(m.theme),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(m.theme.Background),
		)
	}

	var sections []string
	sections = append(sections, m.headerView())

	if m.help.IsVisible() {
		sections = append(sections, m.help.View(m.theme))
	} else {
		pad := lipgloss.NewStyle().PaddingLeft(keypadLeft)
		calcColumn := pad.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.display.View(m.theme),
			"",
			m.keypad.View(m.theme),
		))

		body := calcColumn
		if m.historyPanel.IsVisible() && m.historyPanel.Width() >= minPanel {
			gap := lipgloss.NewStyle().Width(panelGap).Render("")
			body = lipgloss.JoinHorizontal(lipgloss.Top, calcColumn, gap, m.historyPanel.View(m.theme))
		}
		sections = append(sections, body)
	}

	used := 0
	for _, s := range sections {
		used += lipgloss.Height(s)
	}
	footer := statusHeight
	if m.commandBar.IsActive() {
		footer++
	}
	if filler := m.height - used - footer; filler > 0 {
		sections = append(sections, strings.Repeat("\n", filler-1))
	}

	sections = append(sections, m.statusBar.View(m.theme))
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View(m.theme))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		Padding(0, keypadLeft)
	return style.Render("tcalc")
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	// Switch to one-line buttons when the tall keypad does not fit.
	m.keypad.SetCompact(false)
	full := headerHeight + ui.DisplayHeight + 1 + m.keypad.Height() + statusHeight + 1
	m.keypad.SetCompact(m.height < full)

	m.keypadTop = headerHeight + ui.DisplayHeight + 1

	panelWidth := m.width - keypadLeft - ui.KeypadWidth - panelGap - 1
	if panelWidth < 0 {
		panelWidth = 0
	}
	m.historyPanel.SetSize(panelWidth, ui.DisplayHeight+1+m.keypad.Height())

	helpHeight := m.height - headerHeight - statusHeight - 1
	if helpHeight < 1 {
		helpHeight = 1
	}
	m.help.SetSize(m.width, helpHeight)
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeError:
		m.dismissError()
		return m, nil
	case ModeCommand:
		return m.handleCommandMode(msg)
	case ModeHistory:
		return m.handleHistoryMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	default:
		return m.handleCalcMode(msg)
	}
}

// handleCalcMode processes keys on the keypad.
func (m Model) handleCalcMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp()
		return m, nil

	case key.Matches(msg, m.keys.CommandMode):
		m.setMode(ModeCommand)
		m.layout()
		return m, m.commandBar.Open()

	case key.Matches(msg, m.keys.FocusHistory):
		if !m.historyPanel.IsVisible() {
			m.historyPanel.SetVisible(true)
			m.keypad.SetHistoryVisible(true)
		}
		m.historyPanel.Focus()
		m.setMode(ModeHistory)
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		return m.press(ui.TokenToggleTheme)

	case key.Matches(msg, m.keys.ToggleHistory):
		return m.press(ui.TokenToggleHistory)

	case key.Matches(msg, m.keys.ClearHistory):
		return m.press(ui.TokenClearHistory)

	case key.Matches(msg, m.keys.Evaluate):
		return m.press(session.ActionEvaluate)

	case key.Matches(msg, m.keys.Backspace):
		return m.press(session.ActionBackspace)

	case key.Matches(msg, m.keys.Clear):
		return m.press(session.ActionClear)

	case key.Matches(msg, m.keys.Up):
		m.keypad.Move(-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.keypad.Move(1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.keypad.Move(0, -1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.keypad.Move(0, 1)
		return m, nil

	case key.Matches(msg, m.keys.Press):
		return m.press(m.keypad.Focused().Token)
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if token := string(msg.Runes); session.IsInput(token) {
			return m.press(token)
		}
	}
	return m, nil
}

// handleHistoryMode processes keys when the history panel is focused.
func (m Model) handleHistoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.historyPanel.CursorDown()
	case "k", "up":
		m.historyPanel.CursorUp()
	case "g", "home":
		m.historyPanel.GotoTop()
	case "G", "end":
		m.historyPanel.GotoBottom()
	case "enter":
		if entry := m.historyPanel.SelectedEntry(); entry != nil {
			m.session.Recall(entry.Expression)
			m.display.SetError(false)
			m.display.SetText(m.session.Display())
		}
		m.historyPanel.Blur()
		m.setMode(ModeCalc)
	case "esc", "H", "q":
		m.historyPanel.Blur()
		m.setMode(ModeCalc)
	}
	return m, nil
}

// handleHelpMode scrolls or closes the help panel.
func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		m.help.Hide()
		m.setMode(ModeCalc)
		return m, nil
	}
	return m, m.help.Update(msg)
}

// handleCommandMode processes keys while the command bar is open.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.setMode(ModeCalc)
		m.layout()
		return m, nil

	case tea.KeyEnter:
		cmd := m.commandBar.Submit()
		m.setMode(ModeCalc)
		m.layout()
		return m.executeCommand(cmd)
	}

	return m, m.commandBar.Update(msg)
}

// handleMouseMsg presses the keypad button under a left click.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeError:
		if msg.Action == tea.MouseActionPress {
			m.dismissError()
		}
		return m, nil
	case ModeHelp:
		return m, m.help.Update(msg)
	case ModeCalc:
	default:
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	b, ok := m.keypad.HitTest(msg.X-keypadLeft, msg.Y-m.keypadTop)
	if !ok {
		return m, nil
	}
	// Each click is a separate press, never a held key.
	m.debouncer.Release()
	m.keypad.Focus(b.Token)
	return m.press(b.Token)
}

// press handles one keypad token from the keyboard or the mouse.
func (m Model) press(token string) (tea.Model, tea.Cmd) {
	if m.debouncer.Press(token, m.now()) && m.sound {
		m.beeper.Beep()
	}

	switch token {
	case ui.TokenToggleTheme:
		m.setTheme(theme.Toggle(m.theme))
		m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", m.theme.Name))
		return m, nil

	case ui.TokenToggleHistory:
		m.historyPanel.Toggle()
		m.keypad.SetHistoryVisible(m.historyPanel.IsVisible())
		m.layout()
		return m, nil

	case ui.TokenClearHistory:
		if err := m.session.ClearHistory(); err != nil {
			m.statusBar.SetErrorMessage(err.Error())
			m.logger.Error().Err(err).Msg("clearing history")
			return m, nil
		}
		m.statusBar.SetMessage("History cleared")
		m.sync()
		return m, nil
	}

	if err := m.session.Apply(token); err != nil {
		m.showError(err)
		return m, nil
	}
	m.display.SetError(false)
	if token == session.ActionEvaluate {
		m.statusBar.SetMessage("")
	}
	m.sync()
	return m, nil
}

// showError opens the error dialog for a failed evaluation.
func (m *Model) showError(err error) {
	message := "Invalid Expression"
	switch calc.KindOf(err) {
	case calc.KindDivisionByZero:
		message = "Division by zero"
	case calc.KindEmptyExpression:
		message = "Nothing to evaluate"
	case calc.KindOverflow:
		message = "Result out of range"
	case calc.KindInvalidExpression:
	default:
		if errors.Is(err, session.ErrUnknownAction) {
			message = "Unknown key"
		}
	}

	var detail string
	var ce *calc.Error
	if errors.As(err, &ce) && ce.Detail != "" {
		detail = ce.Error()
	}

	m.display.SetError(true)
	m.errorDialog.Show("Error", message, detail)
	m.setMode(ModeError)
}

func (m *Model) dismissError() {
	m.errorDialog.Hide()
	m.setMode(ModeCalc)
}

// executeCommand handles :commands.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "q", "quit":
		return m, tea.Quit

	case "theme":
		if len(parts) < 2 {
			m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s", m.theme.Name, strings.Join(theme.Names(), ", ")))
			return m, nil
		}
		t, ok := theme.Lookup(parts[1])
		if !ok {
			m.statusBar.SetErrorMessage(fmt.Sprintf("Unknown theme: %s (available: %s)", parts[1], strings.Join(theme.Names(), ", ")))
			return m, nil
		}
		m.setTheme(t)
		m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", t.Name))

	case "sound":
		on := !m.sound
		if len(parts) > 1 {
			switch parts[1] {
			case "on":
				on = true
			case "off":
				on = false
			default:
				m.statusBar.SetErrorMessage("Usage: :sound on|off")
				return m, nil
			}
		}
		m.sound = on
		m.muted = false
		m.statusBar.SetSound(on)
		if on {
			m.statusBar.SetMessage("Sound on")
		} else {
			m.statusBar.SetMessage("Sound off")
		}

	case "e", "eval":
		if len(parts) < 2 {
			m.statusBar.SetErrorMessage("Usage: :eval <expression>")
			return m, nil
		}
		m.session.Recall(strings.Join(parts[1:], " "))
		return m.press(session.ActionEvaluate)

	case "history":
		return m.press(ui.TokenToggleHistory)

	case "clearhistory":
		return m.press(ui.TokenClearHistory)

	case "help":
		m.showHelp()

	case "w", "write":
		m.config.Theme = m.theme.Name
		m.config.ShowHistory = m.historyPanel.IsVisible()
		m.config.Sound.Enabled = m.sound
		if err := m.config.Save(); err != nil {
			m.statusBar.SetErrorMessage(err.Error())
			m.logger.Error().Err(err).Msg("saving config")
			return m, nil
		}
		m.statusBar.SetMessage(fmt.Sprintf("Saved %s", m.config.Path()))

	default:
		m.statusBar.SetErrorMessage(fmt.Sprintf("Unknown command: %s", parts[0]))
	}

	return m, nil
}

// showHelp opens the keybinding reference.
func (m *Model) showHelp() {
	if err := m.help.Show(m.theme); err != nil {
		m.logger.Warn().Err(err).Msg("rendering help")
	}
	m.setMode(ModeHelp)
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.statusBar.SetMode(mode.String())
}

func (m *Model) setTheme(t theme.Theme) {
	m.theme = t
	m.keypad.SetThemeIcon(t.Icon())
	if m.help.IsVisible() {
		m.showHelp()
	}
}

// applyConfig applies user settings from a (re)loaded config file.
func (m *Model) applyConfig(cfg *storage.Config) {
	m.config = cfg
	if t, ok := theme.Lookup(cfg.Theme); ok {
		m.setTheme(t)
	} else if cfg.Theme != "" {
		m.statusBar.SetErrorMessage(fmt.Sprintf("Unknown theme: %s", cfg.Theme))
	}

	m.historyPanel.SetVisible(cfg.ShowHistory)
	m.keypad.SetHistoryVisible(cfg.ShowHistory)
	if m.mode == ModeHistory && !cfg.ShowHistory {
		m.setMode(ModeCalc)
	}

	m.sound = cfg.Sound.Enabled && !m.muted
	m.statusBar.SetSound(m.sound)
	m.debouncer = feedback.NewDebouncer(cfg.Sound.RepeatWindow.Duration)
}

// sync updates the display and history widgets from the session.
func (m *Model) sync() {
	m.display.SetText(m.session.Display())

	entries, err := m.session.Entries()
	if err != nil {
		m.statusBar.SetErrorMessage(fmt.Sprintf("History: %v", err))
		m.logger.Error().Err(err).Msg("listing history")
		return
	}
	m.historyPanel.SetEntries(entries)
	m.statusBar.SetEntryCount(len(entries))

	if err := m.session.HistoryErr(); err != nil {
		m.statusBar.SetErrorMessage(fmt.Sprintf("History not saved: %v", err))
	}
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Display returns the entry field text.
func (m Model) Display() string {
	return m.session.Display()
}

// Theme returns the active theme.
func (m Model) Theme() theme.Theme {
	return m.theme
}
