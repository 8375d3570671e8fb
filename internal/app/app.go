package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/five82/dreamwall/internal/catalog"
	"github.com/five82/dreamwall/internal/config"
	"github.com/five82/dreamwall/internal/imagegen"
	"github.com/five82/dreamwall/internal/instance"
	"github.com/five82/dreamwall/internal/logging"
	"github.com/five82/dreamwall/internal/refresh"
	"github.com/five82/dreamwall/internal/secret"
	"github.com/five82/dreamwall/internal/settings"
	"github.com/five82/dreamwall/internal/state"
	"github.com/five82/dreamwall/internal/ui"
	"github.com/five82/dreamwall/internal/wallpaper"
)

// Options configure the dreamwall application.
type Options struct {
	ConfigPath string // empty uses ~/.config/dreamwall/config.toml
	Debug      bool
	Stderr     bool // mirror logs to stderr

	// Setter overrides the desktop integration; nil uses the OS setter.
	Setter wallpaper.Setter
}

// App holds the wired components.
type App struct {
	Config   config.Config
	Logger   *log.Logger
	Settings *settings.Store
	Pipeline *Pipeline
	Engine   *refresh.Engine
	State    *state.Store

	closer io.Closer
}

// New loads configuration and wires every component. Callers must Close the
// returned App.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Debug {
		cfg.Debug = true
	}

	logger, closer, err := logging.New(logging.Options{
		Dir:    cfg.LogDir(),
		Debug:  cfg.Debug,
		Stderr: opts.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := imagegen.NewClient(imagegen.Options{
		Endpoint: cfg.Image.Endpoint,
		Model:    cfg.Image.Model,
		Timeout:  cfg.Image.Timeout,
		Token:    secret.TokenOrEmpty(),
	})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init image client: %w", err)
	}

	setter := opts.Setter
	if setter == nil {
		setter = wallpaper.System()
	}

	store := settings.NewStore(cfg.SettingsPath(), logger)
	pipeline := &Pipeline{
		Catalog:   catalog.Load(cfg.CatalogPath, logger),
		Fetcher:   client,
		Setter:    setter,
		ImagePath: cfg.ImagePath(),
		Width:     cfg.Image.Width,
		Height:    cfg.Image.Height,
		Fit:       cfg.Image.Fit,
		Logger:    logger,
	}
	status := &state.Store{}
	engine, err := refresh.New(refresh.Options{
		Settings:  store,
		Cycler:    pipeline,
		State:     status,
		Logger:    logger,
		PollEvery: cfg.PollEvery,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Settings: store,
		Pipeline: pipeline,
		Engine:   engine,
		State:    status,
		closer:   closer,
	}, nil
}

// Close stops the refresh loop and flushes the log file.
func (a *App) Close() error {
	a.Engine.Disarm()
	a.Engine.Wait()
	return a.closer.Close()
}

// lock takes the single-instance lock that guards the refresh loop.
// acquireLock is swapped in tests.
var acquireLock = instance.Acquire

func (a *App) lock() (*instance.Lock, error) {
	lock, err := acquireLock(a.Config.LockPath())
	if err != nil {
		if errors.Is(err, instance.ErrAlreadyRunning) {
			return nil, fmt.Errorf("%w; stop it first or use 'dreamwall auto' to change its settings", err)
		}
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	return lock, nil
}

// RunTUI boots the terminal UI until the user quits or ctx is cancelled.
func RunTUI(ctx context.Context, opts Options) error {
	a, err := New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	lock, err := a.lock()
	if err != nil {
		return err
	}
	defer lock.Release()

	a.Logger.Info("dreamwall started", "mode", "tui", "data", a.Config.DataDir)
	st := a.Settings.Load()

	// The startup check may run a full cycle; the UI shows it as it happens.
	go func() {
		_ = a.Engine.Resume(ctx)
	}()

	return ui.Run(ctx, ui.Options{
		Engine:    a.Engine,
		Store:     a.State,
		Settings:  a.Settings,
		Catalog:   a.Pipeline.Catalog,
		LogPath:   a.Config.LogPath(),
		ThemeName: st.Theme,
	})
}

// RunDaemon runs the refresh loop headless until ctx is cancelled or
// auto-refresh is switched off.
func RunDaemon(ctx context.Context, opts Options) error {
	a, err := New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	lock, err := a.lock()
	if err != nil {
		return err
	}
	defer lock.Release()

	a.Logger.Info("dreamwall started", "mode", "daemon", "data", a.Config.DataDir)
	if err := a.Engine.Resume(ctx); err != nil {
		a.Logger.Warn("startup refresh failed", "err", err)
	}
	if !a.Engine.Armed() {
		if err := a.Engine.Enable(ctx); err != nil {
			return fmt.Errorf("enable auto-refresh: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		a.Engine.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("dreamwall stopping", "reason", ctx.Err())
	case <-done:
		a.Logger.Info("dreamwall stopping", "reason", "auto-refresh disabled")
	}
	return nil
}
