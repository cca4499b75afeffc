package shellcmder_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	shellcmder "github.com/papercomputeco/cultura/cmd/cultura/shell"
)

var _ = Describe("Snippet", func() {
	It("wraps fish in a greeting function", func() {
		s, err := shellcmder.Snippet("fish")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(HavePrefix("function fish_greeting"))
		Expect(s).To(ContainSubstring("cultura fact generate-random"))
	})

	DescribeTable("starts the daemon and prints a fact",
		func(shell string) {
			s, err := shellcmder.Snippet(shell)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(ContainSubstring("cultura daemon start"))
			Expect(s).To(ContainSubstring("cultura fact generate-random"))
		},
		Entry("bash", "bash"),
		Entry("zsh", "zsh"),
	)

	It("rejects unknown shells", func() {
		_, err := shellcmder.Snippet("tcsh")
		Expect(err).To(MatchError(ContainSubstring(`unsupported shell: "tcsh"`)))
	})
})

var _ = Describe("NewShellCmd", func() {
	It("prints the snippet", func() {
		cmd := shellcmder.NewShellCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"bash"})
		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("cultura daemon start"))
	})

	It("rejects unknown shells as arguments", func() {
		cmd := shellcmder.NewShellCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"tcsh"})
		Expect(cmd.Execute()).NotTo(Succeed())
	})
})
