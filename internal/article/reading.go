package article

import "unicode/utf8"

// CharsPerMinute is the reading speed assumed for Japanese text.
const CharsPerMinute = 400

// ReadingMinutes estimates how long text takes to read, rounding up.
// Empty text takes zero minutes.
func ReadingMinutes(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + CharsPerMinute - 1) / CharsPerMinute
}
