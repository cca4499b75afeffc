package formatter

import (
	"sort"

	"github.com/muesli/termenv"
)

type styleFunc func(termenv.Style) termenv.Style

func foreground(c termenv.Color) styleFunc {
	return func(s termenv.Style) termenv.Style {
		return s.Foreground(c)
	}
}

var styles = map[string]styleFunc{
	"black":   foreground(termenv.ANSIBlack),
	"red":     foreground(termenv.ANSIRed),
	"green":   foreground(termenv.ANSIGreen),
	"yellow":  foreground(termenv.ANSIYellow),
	"blue":    foreground(termenv.ANSIBlue),
	"magenta": foreground(termenv.ANSIMagenta),
	"purple":  foreground(termenv.ANSIMagenta),
	"cyan":    foreground(termenv.ANSICyan),
	"white":   foreground(termenv.ANSIWhite),

	"bold":      termenv.Style.Bold,
	"dimmed":    termenv.Style.Faint,
	"italic":    termenv.Style.Italic,
	"underline": termenv.Style.Underline,
}

// Styles returns the recognised style names, sorted.
func Styles() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
