package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// PhaseColors keys are the engine phase names plus "failing".
	PhaseColors map[string]string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style
	Panel  lipgloss.Style
	Label  lipgloss.Style

	phaseColors map[string]string
	background  string
	muted       string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Label: fg(t.Muted).Width(labelWidth),

		phaseColors: t.PhaseColors,
		background:  t.Background,
		muted:       t.Muted,
	}
}

// PhaseStyle returns a badge style for the given phase name.
func (s Styles) PhaseStyle(phase string) lipgloss.Style {
	color := s.phaseColors[phase]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		Border:     "#39506d", // bg4
		Text:       "#cdcecf", // fg1
		Muted:      "#738091", // comment
		Faint:      "#71839b", // fg3
		Accent:     "#719cd6", // blue
		Success:    "#81b29a", // green
		Warning:    "#dbc074", // yellow
		Danger:     "#c94f6d", // red
		Info:       "#63cdcf", // cyan
		PhaseColors: map[string]string{
			"idle":    "#738091",
			"armed":   "#81b29a",
			"running": "#9d79d6", // magenta
			"failing": "#c94f6d",
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		Border:     "#54546D", // sumiInk6
		Text:       "#DCD7BA", // fujiWhite
		Muted:      "#C8C093", // oldWhite
		Faint:      "#727169", // fujiGray
		Accent:     "#7E9CD8", // crystalBlue
		Success:    "#98BB6C", // springGreen
		Warning:    "#E6C384", // carpYellow
		Danger:     "#E46876", // waveRed
		Info:       "#7FB4CA", // springBlue
		PhaseColors: map[string]string{
			"idle":    "#727169",
			"armed":   "#98BB6C",
			"running": "#957FB8", // oniViolet
			"failing": "#E46876",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:       "Slate",
		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		Border:     "#334155", // slate-700
		Text:       "#f1f5f9", // slate-100
		Muted:      "#94a3b8", // slate-400
		Faint:      "#64748b", // slate-500
		Accent:     "#38bdf8", // sky-400
		Success:    "#22c55e", // green-500
		Warning:    "#f59e0b", // amber-500
		Danger:     "#ef4444", // red-500
		Info:       "#06b6d4", // cyan-500
		PhaseColors: map[string]string{
			"idle":    "#64748b",
			"armed":   "#22c55e",
			"running": "#06b6d4",
			"failing": "#dc2626",
		},
	}
}
