package models

import "strings"

var unspacedSuffixes = map[string]bool{"ii": true, "iii": true, "iv": true}

// FormatName renders a person's name for display, e.g. "Jane Q Doe, Jr".
// With neither first nor last name the person is shown as unknown.
func FormatName(first, middle, last, suffix *string) string {
	f, m, l, s := deref(first), deref(middle), deref(last), deref(suffix)
	if f == "" && l == "" {
		if m != "" {
			return "Unknown " + m
		}
		return "Unknown Person"
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{f, m, l} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, " ")
	if s == "" {
		return name
	}
	if unspacedSuffixes[strings.ToLower(s)] {
		return name + " " + strings.ToUpper(s)
	}
	return name + ", " + s
}

func (p Participant) DisplayName() string {
	return FormatName(p.FirstName, p.MiddleName, p.LastName, p.NameSuffix)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
