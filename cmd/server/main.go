package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/vancomm/tilesweeper/internal/app"
	"github.com/vancomm/tilesweeper/internal/board"
	"github.com/vancomm/tilesweeper/internal/config"
)

func newLogger(development bool) *slog.Logger {
	if development {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func run() error {
	fs := config.Flags("tilesweeper-server")
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

	logger := newLogger(cfg.Development)
	board.Log = logger.With(slog.String("component", "board"))

	logger.Info("starting up", slog.Bool("development", cfg.Development))
	logger.Debug("config", slog.Any("config", cfg.Fields()))

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	return app.New(logger, cfg).Start(ctx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "exit reason:", err)
		os.Exit(1)
	}
}
