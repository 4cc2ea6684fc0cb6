package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/app"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/feedback"
	"github.com/vidyasagar/tcalc/internal/history"
	"github.com/vidyasagar/tcalc/internal/logger"
	"github.com/vidyasagar/tcalc/internal/session"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	var (
		themeName   string
		configPath  string
		expr        string
		noSound     bool
		logLevel    string
		showVersion bool
		listThemes  bool
	)

	flag.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.Names(), ", ")+")")
	flag.StringVar(&configPath, "config", "", "config file (default <config dir>/tcalc/config.toml)")
	flag.StringVar(&expr, "e", "", "evaluate an expression, print the result and exit")
	flag.BoolVar(&noSound, "no-sound", false, "disable key clicks")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.BoolVar(&listThemes, "themes", false, "list available themes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tcalc - a keyboard and mouse calculator for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tcalc [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tcalc                    # start the calculator\n")
		fmt.Fprintf(os.Stderr, "  tcalc -theme dark        # start with the dark theme\n")
		fmt.Fprintf(os.Stderr, "  tcalc -e '(2+3)*4'       # print 20 and exit\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("tcalc %s\n", version)
		os.Exit(0)
	}

	if listThemes {
		for _, name := range theme.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	if expr != "" {
		os.Exit(evalOnce(expr, os.Stdout, logger.NewConsole(os.Stderr, logLevel)))
	}

	// Load config (best-effort, defaults on error).
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		def := storage.DefaultConfig()
		cfg = &def
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	var opts []app.Option
	if themeName != "" {
		t, ok := theme.Lookup(themeName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", themeName, strings.Join(theme.Names(), ", "))
			os.Exit(1)
		}
		opts = append(opts, app.WithTheme(t))
	}
	if noSound {
		opts = append(opts, app.WithMuted())
	}

	// The TUI owns the terminal, so logs go to a file.
	log := zerolog.Nop()
	if path, err := cfg.LogPath(); err == nil {
		l, closer, err := logger.NewFile(path, cfg.Log.Level)
		if err == nil {
			log = l
			defer closer.Close()
		}
	}
	log.Info().Str("version", version).Str("config", cfg.Path()).Msg("starting")

	historyLog, closeHistory := openHistory(cfg, logger.Component(log, "storage"))
	defer closeHistory()

	eval, err := calc.NewCachedEvaluator(calc.DefaultCacheSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(eval, historyLog, session.WithLogger(logger.Component(log, "session")))
	opts = append(opts,
		app.WithLogger(logger.Component(log, "app")),
		app.WithBeeper(feedback.Bell{W: os.Stderr}),
	)

	m := app.New(sess, cfg, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if cfg.Path() != "" {
		watcher, err := storage.NewConfigWatcher(cfg.Path(),
			func(c *storage.Config) { p.Send(app.ConfigReloadedMsg{Config: c}) },
			func(err error) { p.Send(app.ConfigErrorMsg{Err: err}) },
		)
		if err == nil {
			err = watcher.Start()
		}
		if err != nil {
			log.Warn().Err(err).Msg("config watcher disabled")
		} else {
			defer watcher.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("exiting")
}

// evalOnce evaluates expr for -e and returns the exit code.
func evalOnce(expr string, out io.Writer, log zerolog.Logger) int {
	v, err := calc.Evaluate(expr)
	if err != nil {
		log.Error().Err(err).Str("expression", expr).Msg("evaluation failed")
		return 1
	}
	fmt.Fprintln(out, calc.Format(v))
	return 0
}

func loadConfig(path string) (*storage.Config, error) {
	if path != "" {
		return storage.LoadConfigFile(path)
	}
	return storage.LoadConfig()
}

// openHistory returns the sqlite history store when persistence is enabled,
// falling back to an in-memory log.
func openHistory(cfg *storage.Config, log zerolog.Logger) (history.Log, func()) {
	noop := func() {}
	if !cfg.History.Persist {
		return history.NewMemory(), noop
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		log.Warn().Err(err).Msg("history path unavailable, keeping history in memory")
		return history.NewMemory(), noop
	}
	db, err := storage.OpenDB(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("opening history database, keeping history in memory")
		return history.NewMemory(), noop
	}
	log.Info().Str("path", path).Msg("history database opened")
	return storage.NewHistoryStore(db), func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("closing history database")
		}
	}
}
