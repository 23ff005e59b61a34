package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/tilesweeper/internal/config"
	"github.com/vancomm/tilesweeper/internal/middleware"
	"github.com/vancomm/tilesweeper/internal/session"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	logger *slog.Logger
	config *config.Config
	router *http.ServeMux
	store  *session.Store
	ws     *config.WebSocket
}

func New(logger *slog.Logger, cfg *config.Config, opts ...session.Option) *App {
	app := &App{
		logger: logger,
		config: cfg,
		router: http.NewServeMux(),
		store:  session.NewStore(createRand(), cfg.Sessions.Max, opts...),
		ws:     config.NewWebSocket(cfg),
	}
	app.loadRoutes()

	return app
}

// Handler is the router with every middleware applied.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.logger),
		middleware.Cors(a.config.Cors.AllowedOrigins),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is done or the listener fails, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Port,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info(
			"server listening",
			slog.String("addr", a.config.Port),
			slog.String("base path", a.config.BasePath),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down", slog.Int("live sessions", a.store.Len()))
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
