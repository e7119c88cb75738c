package core

import "strings"

// CleanString normalizes user input (names, subjects, DNIs) by trimming the
// surrounding whitespace, optionally lowering it too (emails).
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
