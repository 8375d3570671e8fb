package refresh

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/five82/dreamwall/internal/failure"
	"github.com/five82/dreamwall/internal/settings"
	"github.com/five82/dreamwall/internal/state"
)

const defaultPollEvery = time.Second

// Status lines reported outside of cycle outcomes.
const (
	StatusGenerating = "Generating wallpaper..."
	StatusStarted    = "Auto-refresh started."
	StatusStopped    = "Auto-refresh stopped."
)

// SettingsStore is the persistence the engine needs. *settings.Store
// satisfies it.
type SettingsStore interface {
	Load() settings.Settings
	Update(fn func(*settings.Settings)) (settings.Settings, error)
}

var _ SettingsStore = (*settings.Store)(nil)

// Result describes a successful cycle.
type Result struct {
	Prompt    string
	ImagePath string
}

// Cycler performs one generate-and-set cycle for the given settings.
type Cycler interface {
	Cycle(ctx context.Context, st settings.Settings) (Result, error)
}

// CyclerFunc adapts a function to Cycler.
type CyclerFunc func(ctx context.Context, st settings.Settings) (Result, error)

// Cycle calls f.
func (f CyclerFunc) Cycle(ctx context.Context, st settings.Settings) (Result, error) {
	return f(ctx, st)
}

// Options wire an Engine.
type Options struct {
	Settings  SettingsStore
	Cycler    Cycler
	State     *state.Store // nil allocates a private store
	Logger    *log.Logger  // nil discards
	PollEvery time.Duration
	Now       func() time.Time
}

// Engine drives scheduled wallpaper refreshes.
type Engine struct {
	settings  SettingsStore
	cycler    Cycler
	state     *state.Store
	logger    *log.Logger
	pollEvery time.Duration
	now       func() time.Time

	cycleMu sync.Mutex
	cycling atomic.Bool
	armed   atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
	wg     sync.WaitGroup

	// nextDue is the last due-time this engine computed. It holds the
	// schedule when the settings document could not be written.
	dueMu   sync.Mutex
	nextDue time.Time
}

// New returns an idle Engine.
func New(opts Options) (*Engine, error) {
	if opts.Settings == nil {
		return nil, errors.New("refresh: settings store is required")
	}
	if opts.Cycler == nil {
		return nil, errors.New("refresh: cycler is required")
	}
	e := &Engine{
		settings:  opts.Settings,
		cycler:    opts.Cycler,
		state:     opts.State,
		logger:    opts.Logger,
		pollEvery: opts.PollEvery,
		now:       opts.Now,
	}
	if e.state == nil {
		e.state = &state.Store{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.pollEvery <= 0 {
		e.pollEvery = defaultPollEvery
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// State exposes the status store the engine writes to.
func (e *Engine) State() *state.Store {
	return e.state
}

// Armed reports whether the loop is running.
func (e *Engine) Armed() bool {
	return e.armed.Load()
}

// Resume performs the startup check. A due-time already in the past triggers
// one synchronous cycle with that due-time as the scheduling basis, so the
// next due-time stays on the original cadence. Missed intervals are not
// replayed. When auto-refresh is persisted as enabled the loop is armed.
func (e *Engine) Resume(ctx context.Context) error {
	st := e.settings.Load()
	e.state.SetNextUpdate(st.NextUpdate)

	var err error
	if st.HasNextUpdate() && !e.now().Before(st.NextUpdate) {
		_, err = e.runCycle(ctx, st.NextUpdate, "resume")
	} else {
		e.state.SetStatus("Ready. Next update: " + st.NextUpdateText())
	}

	if e.settings.Load().AutoRefresh {
		e.Arm(ctx)
	}
	return err
}

// Enable persists auto-refresh as on and arms the loop.
func (e *Engine) Enable(ctx context.Context) error {
	st, err := e.settings.Update(func(s *settings.Settings) {
		s.AutoRefresh = true
	})
	if err != nil {
		err = failure.Wrap(failure.ConfigLoad, "enable auto-refresh", err)
		e.state.SetStatus(failure.Describe(err))
		return err
	}
	e.state.SetNextUpdate(st.NextUpdate)
	e.state.SetStatus(StatusStarted)
	e.Arm(ctx)
	return nil
}

// Disable persists auto-refresh as off and disarms the loop. A cycle that is
// already running completes. The loop is disarmed even when the save fails.
func (e *Engine) Disable() error {
	_, err := e.settings.Update(func(s *settings.Settings) {
		s.AutoRefresh = false
	})
	e.Disarm()
	if err != nil {
		err = failure.Wrap(failure.ConfigLoad, "disable auto-refresh", err)
		e.state.SetStatus(failure.Describe(err))
		return err
	}
	e.state.SetStatus(StatusStopped)
	return nil
}

// RunNow performs a user-triggered cycle scheduled from the current time.
func (e *Engine) RunNow(ctx context.Context) (Result, error) {
	return e.runCycle(ctx, e.now(), "manual")
}

// Arm starts the loop unless one is already running. Cycles started by the
// loop run on ctx; Disarm only stops the loop from starting new ones.
func (e *Engine) Arm(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.gen++
	gen := e.gen
	e.armed.Store(true)
	e.state.SetPhase(e.phase())

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.release(gen)
		e.loop(ctx, loopCtx)
	}()
	e.logger.Debug("refresh loop armed", "poll", e.pollEvery)
	return true
}

// Disarm stops the loop. It does not wait for it to exit.
func (e *Engine) Disarm() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel == nil {
		return
	}
	e.cancel()
	e.cancel = nil
	e.armed.Store(false)
	e.state.SetPhase(e.phase())
	e.logger.Debug("refresh loop disarmed")
}

// Wait blocks until every loop started by the engine has exited.
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) release(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen || e.cancel == nil {
		return
	}
	e.cancel()
	e.cancel = nil
	e.armed.Store(false)
	e.state.SetPhase(e.phase())
}

func (e *Engine) loop(ctx, loopCtx context.Context) {
	ticker := time.NewTicker(e.pollEvery)
	defer ticker.Stop()

	for {
		if loopCtx.Err() != nil {
			return
		}
		st := e.settings.Load()
		if !st.AutoRefresh {
			e.logger.Debug("auto-refresh disabled, loop exiting")
			return
		}
		now := e.now()
		due := e.dueAfter(st.NextUpdate)
		if due.IsZero() || !now.Before(due) {
			_, _ = e.runCycle(ctx, now, "scheduled")
		}

		select {
		case <-loopCtx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (e *Engine) runCycle(ctx context.Context, basis time.Time, reason string) (Result, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	e.cycling.Store(true)
	e.state.SetPhase(state.Running)
	e.state.SetStatus(StatusGenerating)
	defer func() {
		e.cycling.Store(false)
		e.state.SetPhase(e.phase())
	}()

	logger := e.logger.With("cycle", uuid.NewString(), "reason", reason)
	logger.Info("cycle started", "basis", basis.Format(settings.TimeLayout))
	started := time.Now()

	current := e.settings.Load()
	res, err := e.cycler.Cycle(ctx, current)

	next := current
	next.ScheduleFrom(basis)
	if _, saveErr := e.settings.Update(func(s *settings.Settings) {
		s.ScheduleFrom(basis)
		next = *s
	}); saveErr != nil {
		logger.Warn("next update not persisted, keeping it in memory", "err", saveErr)
	}
	e.rememberDue(next.NextUpdate)
	e.state.SetNextUpdate(next.NextUpdate)
	e.state.RecordCycle(res.Prompt, res.ImagePath, err)

	if err != nil {
		logger.Error("cycle failed", "kind", failure.KindOf(err), "err", err, "next", next.NextUpdateText())
		return res, err
	}
	logger.Info("cycle finished", "prompt", res.Prompt, "elapsed", time.Since(started).Round(time.Millisecond), "next", next.NextUpdateText())
	return res, nil
}

func (e *Engine) rememberDue(due time.Time) {
	e.dueMu.Lock()
	defer e.dueMu.Unlock()
	e.nextDue = due
}

// dueAfter returns the later of the persisted due-time and the one this
// engine last computed.
func (e *Engine) dueAfter(persisted time.Time) time.Time {
	e.dueMu.Lock()
	defer e.dueMu.Unlock()
	if e.nextDue.After(persisted) {
		return e.nextDue
	}
	return persisted
}

func (e *Engine) phase() state.Phase {
	switch {
	case e.cycling.Load():
		return state.Running
	case e.armed.Load():
		return state.Armed
	default:
		return state.Idle
	}
}
