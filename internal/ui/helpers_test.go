package ui

import (
	"testing"
	"time"

	"github.com/five82/dreamwall/internal/settings"
)

func TestFormatDue(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	cases := []struct {
		name string
		due  time.Time
		want string
	}{
		{"unscheduled", time.Time{}, "Not yet scheduled"},
		{"future", now.Add(30 * time.Minute), "2024-01-01 10:30:00 (30 minutes from now)"},
		{"past", now.Add(-5 * time.Minute), "2024-01-01 09:55:00 (due now)"},
		{"exact", now, "2024-01-01 10:00:00 (due now)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatDue(tc.due, now); got != tc.want {
				t.Fatalf("formatDue = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatInterval(t *testing.T) {
	cases := map[time.Duration]string{
		time.Minute:      "every minute",
		30 * time.Minute: "every 30 minutes",
		time.Hour:        "every hour",
		3 * time.Hour:    "every 3 hours",
		90 * time.Minute: "every 90 minutes",
	}
	for in, want := range cases {
		if got := formatInterval(in); got != want {
			t.Errorf("formatInterval(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  ", 10); got != "" {
		t.Fatalf("truncate blank = %q, want empty", got)
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("truncate = %q, want abc…", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate zero = %q", got)
	}
}

func TestValidateInterval(t *testing.T) {
	for _, ok := range []string{"1", " 30 ", "1440"} {
		if err := validateInterval(ok); err != nil {
			t.Errorf("validateInterval(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "0", "-5", "ten", "1.5"} {
		if err := validateInterval(bad); err == nil {
			t.Errorf("validateInterval(%q) accepted", bad)
		}
	}
}

func TestFormValuesRoundTrip(t *testing.T) {
	st := settings.Defaults()
	st.Style = ""
	st.IntervalMinutes = 15
	st.LastPrompt = "text"

	v := newFormValues(st)
	if v.style != "Random" || v.interval != "15" || v.userText != "text" {
		t.Fatalf("values = %+v", v)
	}
	v.interval = "60"
	v.category = "Space"
	v.userText = "  harbor at night "
	v.apply(&st)
	if st.IntervalMinutes != 60 || st.Category != "Space" || st.Style != "Random" || st.LastPrompt != "harbor at night" {
		t.Fatalf("applied = %+v", st)
	}
}

func TestPickerOptionsKeepsUnknownSelection(t *testing.T) {
	got := pickerOptions([]string{"a", "b"}, "custom")
	want := []string{"Random", "a", "b", "custom"}
	if len(got) != len(want) {
		t.Fatalf("pickerOptions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pickerOptions = %v, want %v", got, want)
		}
	}
	if got := pickerOptions([]string{"a"}, "a"); len(got) != 2 {
		t.Fatalf("known value duplicated: %v", got)
	}
}
