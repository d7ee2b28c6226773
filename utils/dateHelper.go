package utils

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDateTime accepts the ISO 8601 forms the FERB API and clients send.
func ParseDateTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date as MM/DD/YYYY, or "" when it cannot be parsed.
func FormatDate(value *string) string {
	if value == nil {
		return ""
	}
	t, ok := ParseDateTime(*value)
	if !ok {
		return ""
	}
	return t.Format("01/02/2006")
}
