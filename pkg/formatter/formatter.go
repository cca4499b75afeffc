// Package formatter renders facts through the cultura template language.
//
// A template is plain text with directives. A directive starts with "$" or
// "_" and runs until the next whitespace. Its first ":"-separated segment is
// the body: surrounding "__" markers are stripped and "$fact" is replaced by
// the fact text. Remaining segments name styles applied left to right, e.g.
//
//	__Cultura__:magenta:bold
//	$fact:yellow
//
// Text outside directives is copied verbatim. Rendering never fails: unknown
// styles are ignored and a template without "$fact" renders without the fact.
package formatter

import (
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

// DefaultTemplate renders a cyan marker followed by the fact in yellow.
const DefaultTemplate = "__|>__:cyan $fact:yellow"

// Placeholder is substituted with the fact text inside a directive body.
const Placeholder = "$fact"

const spanMarker = "__"

// Formatter renders facts with a fixed template.
type Formatter struct {
	template string
	tokens   []string
	profile  termenv.Profile
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithProfile sets the color profile. termenv.Ascii disables every escape
// sequence.
func WithProfile(p termenv.Profile) Option {
	return func(f *Formatter) {
		f.profile = p
	}
}

// New parses template once and returns a reusable Formatter.
func New(template string, opts ...Option) *Formatter {
	f := &Formatter{
		template: template,
		profile:  termenv.ANSI,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.tokens = distinctLongestFirst(Tokens(template))
	return f
}

// Template returns the template the formatter renders.
func (f *Formatter) Template() string {
	return f.template
}

// Render renders fact through the template.
func (f *Formatter) Render(fact string) string {
	if len(f.tokens) == 0 {
		return f.template
	}

	pairs := make([]string, 0, len(f.tokens)*2)
	for _, token := range f.tokens {
		pairs = append(pairs, token, f.renderToken(token, fact))
	}

	// strings.Replacer scans once and prefers earlier pairs at the same
	// position, so rendered output is never rescanned and a token that
	// prefixes a longer one cannot split it.
	return strings.NewReplacer(pairs...).Replace(f.template)
}

// Render renders fact through template with the default ANSI profile.
func Render(template, fact string) string {
	return New(template).Render(fact)
}

func (f *Formatter) renderToken(token, fact string) string {
	segments := strings.Split(token, ":")

	body := segments[0]
	body = strings.TrimPrefix(body, spanMarker)
	body = strings.TrimSuffix(body, spanMarker)
	body = strings.ReplaceAll(body, Placeholder, fact)

	style := f.profile.String(body)
	styled := false
	for _, name := range segments[1:] {
		if apply, ok := styles[name]; ok {
			style = apply(style)
			styled = true
		}
	}

	if !styled {
		return body
	}
	return style.String()
}

func distinctLongestFirst(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
