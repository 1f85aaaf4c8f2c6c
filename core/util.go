package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// DefaultString returns `s` cleaned, or `def` when nothing is left.
func DefaultString(s, def string) string {
	if s = CleanString(s); s == "" {
		return def
	}
	return s
}
