package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dreamwall/internal/logtail"
	"github.com/five82/dreamwall/internal/state"
)

const labelWidth = 15

// renderMain renders the dashboard: header, status panel, activity, footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	status := m.renderStatus()
	footer := m.renderFooter()

	used := lipgloss.Height(header) + lipgloss.Height(status) + lipgloss.Height(footer)
	activity := m.renderActivity(m.height - used)

	return lipgloss.JoinVertical(lipgloss.Left, header, status, activity, footer)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	phase := m.phaseName()
	left := styles.Logo.Render("dreamwall") + styles.Header.Render(" ") + styles.PhaseStyle(phase).Render(strings.ToUpper(phase))
	if m.spinning {
		left += styles.Header.Render(" " + m.spinner.View())
	}
	right := styles.Header.Render("Theme: " + m.theme.Name)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + styles.Header.Render(strings.Repeat(" ", gap)) + right
}

func (m Model) phaseName() string {
	switch {
	case m.snapshot.Phase == state.Running || m.busy:
		return state.Running.String()
	case m.snapshot.IsFailing():
		return "failing"
	case m.armed:
		return state.Armed.String()
	default:
		return state.Idle.String()
	}
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	inner := max(m.width-6, 20)
	valueWidth := max(inner-labelWidth, 10)

	statusText := m.snapshot.Status
	if statusText == "" {
		statusText = "Ready."
	}
	statusStyle := styles.Text
	switch {
	case m.snapshot.LastError != nil && m.snapshot.Phase != state.Running:
		statusStyle = styles.DangerText
	case statusText == state.SuccessStatus:
		statusStyle = styles.SuccessText
	}

	auto := styles.MutedText.Render("off")
	if m.armed {
		auto = styles.SuccessText.Render("on")
	}
	auto += styles.MutedText.Render("  " + formatInterval(m.current.Interval()))

	selections := strings.Join([]string{
		"style " + orRandom(m.current.Style),
		"descriptor " + orRandom(m.current.Descriptor),
		"category " + orRandom(m.current.Category),
	}, " · ")

	rows := []string{
		m.row("Status", statusStyle.Render(truncate(statusText, valueWidth))),
		m.row("Next update", styles.Text.Render(formatDue(m.current.NextUpdate, m.now()))),
		m.row("Auto-refresh", auto),
		m.row("Selections", styles.Text.Render(truncate(selections, valueWidth))),
		m.row("Custom prompt", styles.InfoText.Render(truncate(orDash(m.current.LastPrompt), valueWidth))),
		m.row("Last generated", styles.MutedText.Render(truncate(orDash(m.snapshot.LastPrompt), valueWidth))),
	}
	if m.notice != "" {
		rows = append(rows, "", styles.WarningText.Render(truncate(m.notice, inner)))
	}

	return styles.Panel.Width(max(m.width-2, 20)).Render(strings.Join(rows, "\n"))
}

func (m Model) row(label, value string) string {
	return m.theme.Styles().Label.Render(label) + value
}

func (m Model) renderActivity(height int) string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render(" Recent activity")
	if height < 2 {
		return title
	}

	lines := height - 1
	entries := m.logs
	if len(entries) > lines {
		entries = entries[len(entries)-lines:]
	}

	var b strings.Builder
	b.WriteString(title)
	width := max(m.width-2, 10)
	for _, e := range entries {
		b.WriteString("\n ")
		b.WriteString(m.renderEntry(e, width))
	}
	for i := len(entries); i < lines; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEntry(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	if e.Level == logtail.LevelNone {
		return styles.FaintText.Render(truncate(e.Raw, width))
	}

	level := styles.InfoText
	label := "INFO"
	switch e.Level {
	case logtail.LevelDebug:
		level, label = styles.FaintText, "DEBU"
	case logtail.LevelWarn:
		level, label = styles.WarningText, "WARN"
	case logtail.LevelError:
		level, label = styles.DangerText, "ERRO"
	}
	clock := e.Time
	if i := strings.IndexByte(clock, ' '); i >= 0 {
		clock = clock[i+1:]
	}
	rest := max(width-len(clock)-len(label)-2, 0)
	return styles.FaintText.Render(clock) + " " + level.Render(label) + " " + styles.Text.Render(truncate(e.Message, rest))
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Render(m.help.View(m.keys))
}
