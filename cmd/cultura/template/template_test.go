package templatecmder_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	templatecmder "github.com/papercomputeco/cultura/cmd/cultura/template"
)

var _ = Describe("template syntax", func() {
	It("documents every style and the default template", func() {
		doc := templatecmder.SyntaxDoc()
		Expect(doc).To(ContainSubstring("`magenta`"))
		Expect(doc).To(ContainSubstring("`bold`"))
		Expect(doc).To(ContainSubstring("__|>__:cyan $fact:yellow"))
	})

	It("renders the help", func() {
		cmd := templatecmder.NewTemplateCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"syntax", "--plain"})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Template syntax"))
	})
})
