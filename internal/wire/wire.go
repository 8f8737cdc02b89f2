// Package wire provides dependency injection for the ninegrid application.
// It assembles the store, surface, scheduler and services chosen by the config.
package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	cliadapter "github.com/example/ninegrid/internal/adapters/cli"
	"github.com/example/ninegrid/internal/adapters/clock"
	"github.com/example/ninegrid/internal/adapters/memory"
	"github.com/example/ninegrid/internal/adapters/redis"
	"github.com/example/ninegrid/internal/adapters/sqlite"
	"github.com/example/ninegrid/internal/adapters/terminal"
	"github.com/example/ninegrid/internal/app"
	"github.com/example/ninegrid/internal/config"
	"github.com/example/ninegrid/internal/core/puzzle"
	"github.com/example/ninegrid/internal/db"
	"github.com/example/ninegrid/internal/logging"
	"github.com/example/ninegrid/internal/ports/primary"
	"github.com/example/ninegrid/internal/ports/secondary"
)

// Options controls process-level wiring that is not part of the config.
type Options struct {
	Out      io.Writer // surface and adapter output; defaults to stdout
	LogOut   io.Writer // log output when no log file is configured; defaults to stderr
	OnChange func()    // forwarded to the terminal surface
}

// App holds the wired application.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Puzzle  primary.PuzzleService
	Logs    primary.LogService
	Surface *terminal.Surface

	out     io.Writer
	closers []func() error
}

// New builds the application for cfg and restores stored progress.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.LogOut == nil {
		opts.LogOut = os.Stderr
	}

	a := &App{Config: cfg, out: opts.Out}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	if err := a.initLogger(cfg, opts.LogOut); err != nil {
		return nil, err
	}

	store, activity, err := a.initStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	board := puzzle.DefaultBoard()
	game := puzzle.NewGame(board, puzzle.Links{BaseURL: cfg.PagesBaseURL}, cfg.Timing())

	a.Surface = terminal.NewSurface(board.Tiles(), terminal.Options{
		Out:         opts.Out,
		Sound:       cfg.Sound,
		OpenBrowser: cfg.OpenBrowser,
		OnChange:    opts.OnChange,
	})

	executor := app.NewEffectExecutor(a.Surface, store, activity, cfg.Profile, a.Logger)
	service := app.NewPuzzleService(game, store, executor, clock.NewScheduler(), a.Logger)
	a.closers = append(a.closers, service.Close)

	a.Puzzle = service
	a.Logs = app.NewLogService(activity)

	if err := service.LoadProgress(ctx); err != nil {
		return nil, err
	}

	ok = true
	return a, nil
}

func (a *App) initLogger(cfg *config.Config, logOut io.Writer) error {
	opts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Out: logOut}

	if cfg.LogFile != "" {
		logger, closeFn, err := logging.NewFile(cfg.LogFile, opts)
		if err != nil {
			return err
		}
		a.Logger = logger
		a.closers = append(a.closers, closeFn)
		return nil
	}

	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.Logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})
	return nil
}

// initStore opens the configured store. Only sqlite keeps an activity log.
func (a *App) initStore(ctx context.Context, cfg *config.Config) (secondary.KeyValueStore, secondary.ActivityLog, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		path := cfg.DBPath
		if path == "" {
			var err error
			if path, err = db.DefaultPath(); err != nil {
				return nil, nil, err
			}
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		a.Logger.Debug("sqlite store opened", zap.String("path", path), zap.String("profile", cfg.Profile))
		return sqlite.NewKeyValueStore(database, cfg.Profile), sqlite.NewActivityLog(database, cfg.Profile), nil

	case config.StoreRedis:
		store, err := redis.Dial(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.Profile)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, store.Close)
		a.Logger.Debug("redis store connected", zap.String("addr", cfg.RedisAddr), zap.String("profile", cfg.Profile))
		return store, nil, nil

	case config.StoreMemory:
		return memory.NewKeyValueStore(cfg.Profile), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// PuzzleAdapter returns a new PuzzleAdapter writing to the app's output.
// Each call creates a new adapter (adapters are stateless translators).
func (a *App) PuzzleAdapter() *cliadapter.PuzzleAdapter {
	return cliadapter.NewPuzzleAdapter(a.Puzzle, a.Logs, a.out)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
