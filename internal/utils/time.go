package utils

import "time"

const layoutDateTime = "2006-01-02 15:04"

// FormatDateTime renders a timestamp the way rider-facing documents show
// departure times.
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}
