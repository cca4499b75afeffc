package formatter_test

import (
	"github.com/muesli/termenv"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/formatter"
)

const (
	reset   = "\x1b[0m"
	red     = "\x1b[31m"
	yellow  = "\x1b[33m"
	magenta = "\x1b[35m"
	cyan    = "\x1b[36m"
)

var _ = Describe("Render", func() {
	It("styles a bare placeholder", func() {
		Expect(formatter.Render("$fact:red", "fact1")).To(Equal(red + "fact1" + reset))
	})

	It("renders several directives independently", func() {
		out := formatter.Render("__Cultura__:magenta:bold\n\n__|>__:cyan $fact:yellow", "fact1")
		Expect(out).To(Equal(
			"\x1b[35;1mCultura" + reset +
				"\n\n" +
				cyan + "|>" + reset +
				" " +
				yellow + "fact1" + reset,
		))
	})

	It("leaves spans without styles unstyled", func() {
		out := formatter.Render("__ATextWithoutStyle__ __ATextWithStyles__:magenta", "fact1")
		Expect(out).To(Equal("ATextWithoutStyle " + magenta + "ATextWithStyles" + reset))
	})

	It("substitutes an unstyled placeholder", func() {
		Expect(formatter.Render("Fact: $fact", "water is wet")).To(Equal("Fact: water is wet"))
	})

	It("substitutes the placeholder inside a span", func() {
		Expect(formatter.Render("__>$fact<__", "x")).To(Equal(">x<"))
	})

	It("ignores unknown styles", func() {
		Expect(formatter.Render("$fact:sparkly", "fact1")).To(Equal("fact1"))
		Expect(formatter.Render("$fact:sparkly:red", "fact1")).To(Equal(red + "fact1" + reset))
	})

	It("renders a template without placeholder unchanged", func() {
		Expect(formatter.Render("just text", "fact1")).To(Equal("just text"))
	})

	It("renders an empty template as empty", func() {
		Expect(formatter.Render("", "fact1")).To(Equal(""))
	})

	It("applies styles in order", func() {
		Expect(formatter.Render("$fact:bold:magenta", "x")).To(Equal("\x1b[1;35mx" + reset))
	})

	It("maps purple to magenta and dimmed to faint", func() {
		Expect(formatter.Render("$fact:purple", "x")).To(Equal(magenta + "x" + reset))
		Expect(formatter.Render("$fact:dimmed", "x")).To(Equal("\x1b[2mx" + reset))
	})

	It("does not rescan rendered output", func() {
		Expect(formatter.Render("$fact", "$fact:red")).To(Equal("$fact:red"))
	})

	It("replaces a prefix token without corrupting the longer one", func() {
		out := formatter.Render("$fact $fact:red", "f")
		Expect(out).To(Equal("f " + red + "f" + reset))
	})

	It("replaces every occurrence of a repeated token", func() {
		Expect(formatter.Render("$fact:red / $fact:red", "f")).To(Equal(red + "f" + reset + " / " + red + "f" + reset))
	})

	It("treats text up to whitespace as a single token", func() {
		Expect(formatter.Render("$fact:red/$fact:red", "f")).To(Equal(red + "f" + reset))
	})
})

var _ = Describe("Formatter", func() {
	It("emits no escapes with the ascii profile", func() {
		f := formatter.New(formatter.DefaultTemplate, formatter.WithProfile(termenv.Ascii))
		Expect(f.Render("fact1")).To(Equal("|> fact1"))
	})

	It("can be reused across facts", func() {
		f := formatter.New("$fact:red")
		Expect(f.Render("a")).To(Equal(red + "a" + reset))
		Expect(f.Render("b")).To(Equal(red + "b" + reset))
		Expect(f.Template()).To(Equal("$fact:red"))
	})
})

var _ = Describe("Tokens", func() {
	It("splits directives at whitespace", func() {
		Expect(formatter.Tokens("__|>__:cyan $fact:yellow")).To(Equal([]string{"__|>__:cyan", "$fact:yellow"}))
	})

	It("ends a span at inner whitespace", func() {
		Expect(formatter.Tokens("__A text between space__")).To(Equal([]string{"__A", "__"}))
		Expect(formatter.Render("__A text between space__", "x")).To(Equal("A text between space"))
	})

	It("skips plain text", func() {
		Expect(formatter.Tokens("hello world")).To(BeEmpty())
		Expect(formatter.Tokens("say $fact now")).To(Equal([]string{"$fact"}))
	})

	It("starts a token mid-word", func() {
		Expect(formatter.Tokens("x$fact")).To(Equal([]string{"$fact"}))
	})

	It("keeps duplicates", func() {
		Expect(formatter.Tokens("$fact $fact")).To(Equal([]string{"$fact", "$fact"}))
	})
})

var _ = Describe("Styles", func() {
	It("lists every recognised style", func() {
		Expect(formatter.Styles()).To(ConsistOf(
			"black", "red", "green", "yellow", "blue", "magenta", "purple", "cyan", "white",
			"bold", "dimmed", "italic", "underline",
		))
	})
})
