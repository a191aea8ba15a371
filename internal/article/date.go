package article

import (
	"strings"
	"time"
)

// Layouts accepted for naive publish dates. Values without an offset are UTC.
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// PublishDateLayout is the layout written for newly published articles.
const PublishDateLayout = "2006-01-02 15:04"

// ParsePublishDate parses a stored publish date. RFC3339 values keep their
// offset; naive values are read as UTC. Unparseable input yields the zero time.
func ParsePublishDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatPublishDate renders t in the layout used for stored articles.
func FormatPublishDate(t time.Time) string {
	return t.UTC().Format(PublishDateLayout)
}

// NewerFirst orders a before b when a was published later. Zero dates sort last.
func NewerFirst(a, b time.Time) bool {
	az, bz := a.IsZero(), b.IsZero()
	if az != bz {
		return !az
	}
	return a.After(b)
}
