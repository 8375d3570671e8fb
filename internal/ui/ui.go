package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dreamwall/internal/catalog"
	"github.com/five82/dreamwall/internal/refresh"
	"github.com/five82/dreamwall/internal/state"
)

// Engine is the part of refresh.Engine the UI drives.
type Engine interface {
	RunNow(ctx context.Context) (refresh.Result, error)
	Enable(ctx context.Context) error
	Disable() error
	Armed() bool
}

var _ Engine = (*refresh.Engine)(nil)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Engine    Engine
	Store     *state.Store
	Settings  refresh.SettingsStore
	Catalog   catalog.Catalog
	LogPath   string
	ThemeName string
	PollTick  time.Duration
	Now       func() time.Time
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil || opts.Engine == nil || opts.Settings == nil {
		return errors.New("ui requires an engine, a status store and a settings store")
	}
	if opts.Context == nil {
		opts.Context = ctx
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
