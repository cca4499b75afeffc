package formatter

import (
	"strings"
	"unicode"
)

// Tokens returns the raw directive tokens of template in order of
// appearance, duplicates included.
func Tokens(template string) []string {
	var (
		tokens []string
		cur    strings.Builder
		inside bool
	)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		inside = false
	}

	for _, r := range template {
		switch {
		case unicode.IsSpace(r):
			flush()
		case inside:
			cur.WriteRune(r)
		case r == '$' || r == '_':
			inside = true
			cur.WriteRune(r)
		}
	}
	flush()

	return tokens
}
