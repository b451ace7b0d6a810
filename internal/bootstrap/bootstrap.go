// Package bootstrap assembles the application graph: config, logging, the
// shared HTTP client, the session store, and each module's adapter, service,
// and usecase.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	authadapter "fitterm/internal/modules/auth/adapter/out"
	authin "fitterm/internal/modules/auth/port/in"
	authusecase "fitterm/internal/modules/auth/usecase"
	libraryadapter "fitterm/internal/modules/library/adapter/out"
	libraryin "fitterm/internal/modules/library/port/in"
	libraryusecase "fitterm/internal/modules/library/usecase"
	progressadapter "fitterm/internal/modules/progress/adapter/out"
	progressin "fitterm/internal/modules/progress/port/in"
	"fitterm/internal/modules/progress/service"
	progressusecase "fitterm/internal/modules/progress/usecase"
	"fitterm/internal/platform/clock"
	"fitterm/internal/platform/config"
	"fitterm/internal/platform/httpx"
	"fitterm/internal/platform/id"
	"fitterm/internal/platform/logging"
	"fitterm/internal/ui/app"
)

// Options select what the container is built for.
type Options struct {
	ServerFlag string
	Debug      bool

	// FileLog routes logs to the state directory instead of stderr; the
	// TUI owns the terminal.
	FileLog bool
}

// Container holds everything a command needs.
type Container struct {
	Config   config.Config
	Log      *slog.Logger
	Clock    clock.Clock
	Sessions *authadapter.FileSessionStore
	Auth     authin.Usecase
	Progress progressin.Usecase
	Library  libraryin.Usecase

	closers []io.Closer
}

func New(opts Options) (*Container, error) {
	cfg, err := config.Load(opts.ServerFlag)
	if err != nil {
		return nil, err
	}

	var (
		log     *slog.Logger
		closers []io.Closer
	)
	if opts.FileLog {
		fileLog, closer, err := logging.NewFile(cfg.LogPath(), opts.Debug)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log = fileLog
		closers = append(closers, closer)
	} else {
		log = logging.NewCLI(opts.Debug)
	}

	clk := clock.SystemClock{}
	sessions := authadapter.NewFileSessionStore(cfg.SessionPath())

	// A rejected token is cleared immediately so the next start goes
	// straight to login instead of retrying a dead session.
	client := httpx.New(cfg.ServerURL, cfg.RequestTimeout, sessions, id.UUID{}, log, func() {
		if err := sessions.Clear(context.Background()); err != nil {
			log.Warn("clear rejected session", "error", err)
		}
	})

	cache, err := libraryadapter.NewSQLiteCache(cfg.CachePath())
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("open library cache: %w", err)
	}
	closers = append(closers, cache)

	auth := authusecase.NewInteractor(authadapter.NewRESTAuth(client), sessions, clk, log)
	library := libraryusecase.NewInteractor(libraryadapter.NewRESTLibrary(client), cache, log)
	progress := progressusecase.NewInteractor(
		service.NewProgressService(clk),
		progressadapter.NewRESTStore(client),
	)

	return &Container{
		Config:   cfg,
		Log:      log,
		Clock:    clk,
		Sessions: sessions,
		Auth:     auth,
		Progress: progress,
		Library:  library,
		closers:  closers,
	}, nil
}

func (c *Container) Close() {
	closeAll(c.closers)
}

func closeAll(closers []io.Closer) {
	for _, closer := range closers {
		_ = closer.Close()
	}
}

// RunTUI starts the full-screen interface.
func (c *Container) RunTUI() error {
	model := app.New(c.Auth, c.Progress, c.Library, c.Clock, c.Log)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
