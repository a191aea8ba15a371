package render

import (
	"fmt"
	"strconv"
	"time"
)

// RelativeTime describes how long ago t was relative to now: minutes under an
// hour, hours under a day, days under a week, otherwise the calendar date in
// loc. The zero time renders as an empty string.
func RelativeTime(t, now time.Time, locale Locale, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	m := MessagesFor(locale)
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))
	switch {
	case minutes <= 0:
		return m.JustNow
	case minutes < 60:
		return fmt.Sprintf(m.MinutesAgo, minutes)
	case hours < 24:
		return fmt.Sprintf(m.HoursAgo, hours)
	case days < 7:
		return fmt.Sprintf(m.DaysAgo, days)
	default:
		return m.DateLayout(t.In(loc))
	}
}

// AbsoluteTime renders t as a calendar date with clock time in loc.
func AbsoluteTime(t time.Time, locale Locale, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return MessagesFor(locale).DateLayout(t) + " " + t.Format("15:04")
}

// LongDate renders t as a spelled-out calendar date in loc.
func LongDate(t time.Time, locale Locale, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return MessagesFor(locale).LongDate(t.In(loc))
}

// FormatCount abbreviates counts of a thousand or more to one decimal "k".
func FormatCount(n int) string {
	if n >= 1000 {
		return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "k"
	}
	return strconv.Itoa(n)
}

// ViewCount is FormatCount with "-" for articles nobody has opened yet.
func ViewCount(n int) string {
	if n <= 0 {
		return "-"
	}
	return FormatCount(n)
}
