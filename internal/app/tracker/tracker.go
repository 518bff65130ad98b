package tracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
)

// App объединяет HTTP-сервер трекера вместе с фоновыми напоминаниями.
type App struct {
	server *http.Server
	logger *slog.Logger
	core   *Core
	cfg    *config.Config
}

// New открывает хранилище и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	core, err := NewCore(ctx, cfg, logger, CoreOptions{Bell: os.Stdout})
	if err != nil {
		return nil, err
	}
	return NewWithCore(core, cfg, logger), nil
}

// NewWithCore собирает HTTP-сервер поверх готового Core.
func NewWithCore(core *Core, cfg *config.Config, logger *slog.Logger) *App {
	router := chi.NewRouter()
	RegisterRoutes(router, logger, core, cfg.HTTPServer)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		core:   core,
		cfg:    cfg,
	}
}

// Handler возвращает корневой обработчик HTTP.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает напоминания и HTTP-сервер и блокируется до отмены ctx или
// ошибки сервера. При выходе сервер останавливается, хранилище закрывается.
func (a *App) Run(ctx context.Context) error {
	if !a.cfg.Reminder.Disabled {
		if err := a.core.Reminder.Start(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		runErr = a.server.Shutdown(timeoutCtx)
	}

	if err := a.core.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return runErr
}
