package util

import (
	"strconv"
	"strings"
	"time"
)

// DayLayout is the calendar-day format used for price history points.
const DayLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DayLayout,
	"2006/01/02",
}

// ParseTime tries RFC3339, common date-time layouts, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// CalendarDay reduces a timestamp string to YYYY-MM-DD. Unparseable input
// falls back to the text before the first space or 'T', which is how the
// history exports write their dates.
func CalendarDay(s string) string {
	if t, ok := ParseTime(s); ok {
		return t.Format(DayLayout)
	}
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i > 0 {
		return s[:i]
	}
	return s
}

// Today returns the current UTC calendar day.
func Today(now time.Time) string {
	return now.UTC().Format(DayLayout)
}
