// Package dateutils provides the date parsing helpers shared by the message
// sources and CLI commands.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common layouts accepted wherever a date is taken from user input or a
// filename. Tried in order; first successful parse wins.
var CommonFormats = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a date string using the common formats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

var datePrefixRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[_-]`)

// DateFromFilename extracts a leading YYYY-MM-DD date from a filename like
// "2026-01-12_hdfc-alert.txt".
func DateFromFilename(name string) (time.Time, bool) {
	match := datePrefixRe.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", match[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var spaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and normalizes whitespace in a date string.
func CleanDateString(dateStr string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
