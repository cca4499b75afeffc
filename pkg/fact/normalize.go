package fact

import (
	"regexp"
	"strings"
)

var (
	// parenRe is greedy on purpose: "a (b) c (d) e" collapses to "a  e".
	parenRe      = regexp.MustCompile(`\(.*\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize strips the parenthetical aside (first "(" to last ")") and
// collapses runs of whitespace into a single space.
func Normalize(raw string) string {
	s := parenRe.ReplaceAllString(raw, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeAll normalizes every raw string, dropping the ones that end up empty.
func NormalizeAll(raws []string) []string {
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		if s := Normalize(raw); s != "" {
			out = append(out, s)
		}
	}
	return out
}
