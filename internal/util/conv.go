package util

import "time"

// Today returns the calendar date of t in YYYY-MM-DD form.
func Today(t time.Time) string {
	return t.Format(DateFormat)
}

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := time.Parse(DateFormat, s)
	return err == nil
}
