package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/dreamwall/internal/settings"
)

// formatDue renders a due-time the way it is stored, plus a relative hint.
func formatDue(due, now time.Time) string {
	if due.IsZero() {
		return "Not yet scheduled"
	}
	rel := humanize.RelTime(due, now, "ago", "from now")
	if !due.After(now) {
		rel = "due now"
	}
	return fmt.Sprintf("%s (%s)", due.Format(settings.TimeLayout), rel)
}

func formatInterval(d time.Duration) string {
	minutes := int(d.Minutes())
	switch {
	case minutes == 1:
		return "every minute"
	case minutes%60 == 0 && minutes >= 60:
		hours := minutes / 60
		if hours == 1 {
			return "every hour"
		}
		return fmt.Sprintf("every %d hours", hours)
	default:
		return fmt.Sprintf("every %d minutes", minutes)
	}
}

// truncate shortens s to at most limit runes, ending in an ellipsis.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
