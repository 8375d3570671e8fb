package ui

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dreamwall/internal/prompt"
	"github.com/five82/dreamwall/internal/settings"
)

// formValues is what the settings form edits. Fields are bound by pointer,
// so it lives outside the Model value.
type formValues struct {
	style      string
	descriptor string
	category   string
	userText   string
	interval   string
}

func newFormValues(st settings.Settings) *formValues {
	return &formValues{
		style:      orRandom(st.Style),
		descriptor: orRandom(st.Descriptor),
		category:   orRandom(st.Category),
		userText:   st.LastPrompt,
		interval:   strconv.Itoa(int(st.Interval().Minutes())),
	}
}

// apply copies the edited selections and custom prompt onto st. The
// interval has already passed validation.
func (v *formValues) apply(st *settings.Settings) {
	st.Style = v.style
	st.Descriptor = v.descriptor
	st.Category = v.category
	st.LastPrompt = strings.TrimSpace(v.userText)
	if minutes, err := strconv.Atoi(strings.TrimSpace(v.interval)); err == nil && minutes > 0 {
		st.IntervalMinutes = minutes
	}
}

func validateInterval(s string) error {
	minutes, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number of minutes")
	}
	if minutes < 1 {
		return errors.New("interval must be at least 1 minute")
	}
	if minutes > settings.MaxIntervalMinutes {
		return errors.New("interval must be at most one year")
	}
	return nil
}

func newSettingsForm(v *formValues, categories []string) *huh.Form {
	keys := huh.NewDefaultKeyMap()
	keys.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Style").
				Options(huh.NewOptions(pickerOptions(prompt.Styles, v.style)...)...).
				Height(8).
				Value(&v.style),
			huh.NewSelect[string]().
				Title("Descriptor").
				Options(huh.NewOptions(pickerOptions(prompt.Descriptors, v.descriptor)...)...).
				Height(8).
				Value(&v.descriptor),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(pickerOptions(categories, v.category)...)...).
				Height(8).
				Value(&v.category),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Custom prompt").
				Description("Replaces the category prompt while set. Leave blank to use the category.").
				Placeholder("e.g. a lighthouse on a cliff").
				Value(&v.userText),
			huh.NewInput().
				Title("Refresh interval (minutes)").
				Value(&v.interval).
				Validate(validateInterval),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithKeyMap(keys).
		WithShowHelp(true)
}

// pickerOptions returns Random followed by vocab, keeping an unknown
// current value selectable so editing never silently changes it.
func pickerOptions(vocab []string, current string) []string {
	out := prompt.WithSentinel(vocab)
	if current != "" && !slices.Contains(out, current) {
		out = append(out, current)
	}
	return out
}

func orRandom(s string) string {
	if strings.TrimSpace(s) == "" {
		return prompt.Random
	}
	return s
}

func formWidth(total int) int {
	if total > 80 {
		return 72
	}
	return max(total-4, 20)
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Edit settings")
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
