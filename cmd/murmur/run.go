package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	toml "github.com/pelletier/go-toml/v2"

	"murmur/internal/app"
	"murmur/internal/config"
	"murmur/internal/logging"
	"murmur/internal/notify"
	"murmur/internal/signal"
	"murmur/internal/store"
	"murmur/internal/ui"
)

type runFlags struct {
	account  string
	dataDir  string
	logLevel string
}

func parseRunFlags(name string, args []string) (runFlags, error) {
	var rf runFlags
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&rf.account, "account", "", "signal account number")
	fs.StringVar(&rf.dataDir, "data-dir", "", "data directory")
	fs.StringVar(&rf.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return runFlags{}, err
	}
	if fs.NArg() > 0 {
		return runFlags{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if rf.dataDir != "" {
		if err := os.Setenv("MURMUR_DATA_DIR", rf.dataDir); err != nil {
			return runFlags{}, err
		}
	}
	return rf, nil
}

func runClient(args []string) error {
	rf, err := parseRunFlags("run", args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	account := cfg.Account()
	if rf.account != "" {
		account = strings.TrimSpace(rf.account)
	}
	levelName := cfg.LogLevel()
	if rf.logLevel != "" {
		levelName = rf.logLevel
	}
	level := logging.ParseLevel(levelName)

	if _, err := config.EnsureDataDir(); err != nil {
		return fmt.Errorf("prepare data dir: %w", err)
	}
	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	log, logFile, err := logging.NewFile(logPath, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	cli := signal.NewCLI(cfg.SignalCommand(), account, log.With(logging.F("component", "signal")))
	if err := cli.Check(); err != nil {
		return err
	}

	snapshotPath, err := config.SnapshotPath()
	if err != nil {
		return err
	}
	engine := app.New(app.Options{
		Client:   cli,
		Store:    store.NewFileSnapshotStore(snapshotPath),
		Notifier: notify.NewDesktop(cfg.NotificationsEnabled()),
		Logger:   log.With(logging.F("component", "engine")),
		SelfName: cfg.UserName(),
	})

	seed := false
	switch err := engine.Load(context.Background()); {
	case err == nil:
	case errors.Is(err, store.ErrSnapshotNotFound):
		seed = true
	default:
		return fmt.Errorf("load snapshot: %w", err)
	}

	model := ui.New(ui.Options{
		Engine:   engine,
		Client:   cli,
		Logger:   log.With(logging.F("component", "ui")),
		Seed:     seed,
		Markdown: cfg.MarkdownEnabled(),
		Sidebar:  cfg.SidebarWidth(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// The receiver feeds decoded envelopes into the bubbletea queue, which
	// is the engine's one serialized event stream.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := cli.Receive(ctx, func(msg signal.InboundMessage) {
			program.Send(app.MessageReceived{Message: msg})
		})
		if err != nil && ctx.Err() == nil {
			log.Error("receive stream stopped", logging.F("error", err))
		}
	}()

	log.Info("murmur starting", logging.F("version", version), logging.F("account", account))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func runConfig(args []string) error {
	if _, err := parseRunFlags("config", args); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n%s", path, out)
	return nil
}
