package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/pflag"

	"github.com/vancomm/tilesweeper/internal/board"
	"github.com/vancomm/tilesweeper/internal/config"
	"github.com/vancomm/tilesweeper/internal/tui"
)

var log = logrus.New()

// setupLogging sends everything to a rotating file, the terminal belongs
// to the UI.
func setupLogging(cfg *config.Config) error {
	logLevel := logrus.InfoLevel
	if cfg.Development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(io.Discard)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Level:      logLevel,
		Formatter:  &logrus.TextFormatter{FullTimestamp: true},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", cfg.Log.File, err)
	}
	log.AddHook(hook)
	return nil
}

func run() error {
	fs := config.Flags("tilesweeper")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	if err := setupLogging(cfg); err != nil {
		return err
	}
	log.WithFields(cfg.Fields()).Debug("config")

	boardLog := log.WriterLevel(logrus.DebugLevel)
	defer boardLog.Close()
	board.Log = slog.New(slog.NewTextHandler(boardLog, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b, err := board.New(cfg.Game.Board())
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(tui.NewModel(b, log), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("unable to run ui: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.WithError(err).Error("exit")
		fmt.Fprintln(os.Stderr, "exit reason:", err)
		os.Exit(1)
	}
}
