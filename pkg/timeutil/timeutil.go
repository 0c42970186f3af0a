// Package timeutil provides the small set of duration/relative-time
// helpers the UI buffers need for display: episode duration formatting,
// playback position formatting, and "time ago" rendering of published/
// last-refreshed timestamps. Grounded on the teacher's handling of
// duration fields in internal/services/episodes (display formatting
// lived inline there); split out here since multiple buffers need it.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders d as H:MM:SS, or M:SS when under an hour, for
// durations and playback positions alike.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseDurationSeconds parses a plain integer-seconds duration, the form
// RSS itunes:duration sometimes uses as an alternative to HH:MM:SS.
func ParseDurationSeconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// RelativeTime renders t relative to now in the coarse Emacs-buffer style
// ("just now", "5m ago", "3h ago", "2d ago", falling back to a plain date
// past a week) rather than a precise timestamp, for published/last-
// refreshed columns where precision past a day adds noise.
func RelativeTime(t, now time.Time) string {
	if t.After(now) {
		return "just now"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
