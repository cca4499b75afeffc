package utils

import "github.com/charmbracelet/x/ansi"

// Truncate shortens s to maxLen display cells and appends "...". Escape
// sequences do not count towards the width.
func Truncate(s string, maxLen int) string {
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	return ansi.Truncate(s, maxLen, "") + "..."
}
