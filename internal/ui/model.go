package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/five82/dreamwall/internal/catalog"
	"github.com/five82/dreamwall/internal/logtail"
	"github.com/five82/dreamwall/internal/refresh"
	"github.com/five82/dreamwall/internal/settings"
	"github.com/five82/dreamwall/internal/state"
)

const (
	defaultPollTick = time.Second
	logFetchLimit   = 200
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	engine   Engine
	store    *state.Store
	settings refresh.SettingsStore
	catalog  catalog.Catalog
	logPath  string
	pollTick time.Duration
	now      func() time.Time

	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	width   int
	height  int

	snapshot state.Snapshot
	current  settings.Settings
	armed    bool
	logs     []logtail.Entry

	busy     bool // a manual cycle was requested and has not returned
	spinning bool
	notice   string
	showHelp bool

	form   *huh.Form
	values *formValues
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultPollTick
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:      ctx,
		engine:   opts.Engine,
		store:    opts.Store,
		settings: opts.Settings,
		catalog:  opts.Catalog,
		logPath:  opts.LogPath,
		pollTick: pollTick,
		now:      now,
		theme:    GetTheme(opts.ThemeName),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
	}
	if m.settings != nil {
		m.current = m.settings.Load()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		m.fetchSnapshotCmd(),
		m.fetchLogsCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)

	case tickMsg:
		return m, tea.Batch(m.fetchSnapshotCmd(), m.fetchLogsCmd(), tickCmd(m.pollTick))

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.current = msg.settings
		m.armed = msg.armed
		cmd := m.syncSpinner()
		return m, cmd

	case logsMsg:
		m.logs = msg
		return m, nil

	case cycleDoneMsg:
		m.busy = false
		return m, m.fetchSnapshotCmd()

	case noticeMsg:
		m.notice = string(msg)
		return m, m.fetchSnapshotCmd()

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.form != nil {
		return m.renderForm()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		if m.busy || m.snapshot.Phase == state.Running {
			m.notice = "A refresh is already in progress."
			return m, nil
		}
		m.busy = true
		m.notice = ""
		m.spinning = true
		return m, tea.Batch(m.runNowCmd(), m.spinner.Tick)

	case key.Matches(msg, m.keys.ToggleAuto):
		m.notice = ""
		return m, m.toggleAutoCmd(!m.armed)

	case key.Matches(msg, m.keys.Edit):
		m.notice = ""
		m.values = newFormValues(m.current)
		m.form = newSettingsForm(m.values, m.catalog.Names())
		if m.width > 0 {
			m.form = m.form.WithWidth(formWidth(m.width))
		}
		return m, m.form.Init()

	case key.Matches(msg, m.keys.ClearText):
		if m.current.LastPrompt == "" {
			m.notice = "No custom prompt set."
			return m, nil
		}
		m.current.LastPrompt = ""
		return m, m.clearTextCmd()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, m.saveThemeCmd(m.theme.Name)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		values := m.values
		m.form, m.values = nil, nil
		return m, m.applyFormCmd(values)
	case huh.StateAborted:
		m.form, m.values = nil, nil
		m.notice = "Edit cancelled."
		return m, nil
	}
	return m, cmd
}

func (m *Model) syncSpinner() tea.Cmd {
	running := m.busy || m.snapshot.Phase == state.Running
	if running && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	m.spinning = running
	return nil
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot state.Snapshot
	settings settings.Settings
	armed    bool
}

type logsMsg []logtail.Entry

type cycleDoneMsg struct{ err error }

type noticeMsg string

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchSnapshotCmd() tea.Cmd {
	store, st, engine := m.store, m.settings, m.engine
	return func() tea.Msg {
		msg := snapshotMsg{}
		if store != nil {
			msg.snapshot = store.Snapshot()
		}
		if st != nil {
			msg.settings = st.Load()
		}
		if engine != nil {
			msg.armed = engine.Armed()
		}
		return msg
	}
}

func (m Model) fetchLogsCmd() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Entries(path, logFetchLimit)
		if err != nil {
			return logsMsg(nil)
		}
		return logsMsg(entries)
	}
}

func (m Model) runNowCmd() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		_, err := engine.RunNow(ctx)
		return cycleDoneMsg{err: err}
	}
}

// toggleAutoCmd flips auto-refresh. The engine reports failures on the
// status line itself.
func (m Model) toggleAutoCmd(on bool) tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		if on {
			_ = engine.Enable(ctx)
		} else {
			_ = engine.Disable()
		}
		return noticeMsg("")
	}
}

func (m Model) saveThemeCmd(name string) tea.Cmd {
	store := m.settings
	return func() tea.Msg {
		if store == nil {
			return noticeMsg("Theme: " + name)
		}
		if _, err := store.Update(func(s *settings.Settings) { s.Theme = name }); err != nil {
			return noticeMsg("Theme not saved: " + err.Error())
		}
		return noticeMsg("Theme: " + name)
	}
}

func (m Model) clearTextCmd() tea.Cmd {
	store := m.settings
	return func() tea.Msg {
		if _, err := store.Update(func(s *settings.Settings) { s.LastPrompt = "" }); err != nil {
			return noticeMsg("Custom prompt not cleared: " + err.Error())
		}
		return noticeMsg("Custom prompt cleared.")
	}
}

func (m Model) applyFormCmd(v *formValues) tea.Cmd {
	store := m.settings
	return func() tea.Msg {
		if _, err := store.Update(v.apply); err != nil {
			return noticeMsg("Settings not saved: " + err.Error())
		}
		return noticeMsg("Settings saved.")
	}
}
