package ui

import "strings"

// matchesQuery reports whether query is a case-insensitive substring of
// any of fields. An empty query matches everything, so a buffer with no
// active filter can call this unconditionally instead of special-casing
// the empty-query case itself. Grounded on the text-query half of the
// original's EpisodeFilter.matches_text (original_source/src/ui/
// filters.rs) - status/date-range/duration/favorites filtering is out
// of scope here (see SPEC_FULL.md's supplemented-features note).
func matchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
