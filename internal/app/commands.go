package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/dreamwall/internal/catalog"
	"github.com/five82/dreamwall/internal/config"
	"github.com/five82/dreamwall/internal/instance"
	"github.com/five82/dreamwall/internal/prompt"
	"github.com/five82/dreamwall/internal/refresh"
	"github.com/five82/dreamwall/internal/settings"
)

// Generate runs one cycle now. A non-empty text replaces the persisted
// custom prompt for this cycle only. The next scheduled update moves to now
// plus the interval. It refuses to run while another instance holds the
// lock; that instance's "g" key does the same job.
func Generate(ctx context.Context, opts Options, text string) (refresh.Result, error) {
	a, err := New(opts)
	if err != nil {
		return refresh.Result{}, err
	}
	defer a.Close()

	lock, err := a.lock()
	if err != nil {
		return refresh.Result{}, err
	}
	defer lock.Release()

	a.Pipeline.SetOverride(text)
	return a.Engine.RunNow(ctx)
}

// Preview resolves a prompt from the persisted selections without fetching
// anything. A non-nil seed makes the result reproducible.
func Preview(opts Options, text string, seed *uint64) (string, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	st := settings.NewStore(cfg.SettingsPath(), nil).Load()
	p := &Pipeline{Catalog: catalog.Load(cfg.CatalogPath, nil)}
	if seed != nil {
		p.Rand = prompt.NewRand(*seed)
	}
	p.SetOverride(text)
	return p.Prompt(st), nil
}

// Report summarizes persisted state for the status command.
type Report struct {
	DataDir     string
	Style       string
	Descriptor  string
	Category    string
	Custom      string
	Interval    time.Duration
	AutoRefresh bool
	NextUpdate  time.Time
	OwnerPID    int
	Running     bool
}

// Status reads the persisted settings and the instance lock.
func Status(opts Options) (Report, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return Report{}, fmt.Errorf("load config: %w", err)
	}
	st := settings.NewStore(cfg.SettingsPath(), nil).Load()
	pid, running, err := instance.Owner(cfg.LockPath())
	if err != nil {
		return Report{}, err
	}
	return Report{
		DataDir:     cfg.DataDir,
		Style:       st.Style,
		Descriptor:  st.Descriptor,
		Category:    st.Category,
		Custom:      st.LastPrompt,
		Interval:    st.Interval(),
		AutoRefresh: st.AutoRefresh,
		NextUpdate:  st.NextUpdate,
		OwnerPID:    pid,
		Running:     running,
	}, nil
}

// SetAuto persists the auto-refresh flag. A running instance picks the
// change up on its next poll tick; turning it off stops that loop.
func SetAuto(opts Options, on bool) (settings.Settings, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("load config: %w", err)
	}
	return settings.NewStore(cfg.SettingsPath(), nil).Update(func(s *settings.Settings) {
		s.AutoRefresh = on
	})
}
