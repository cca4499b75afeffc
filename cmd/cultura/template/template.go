// Package templatecmder provides help for the fact template language.
package templatecmder

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/formatter"
)

const syntaxDoc = `# Template syntax

A template is plain text with **directives**. A directive starts with ` + "`$`" + ` or ` + "`_`" + `
and runs until the next space or newline. Text outside directives is printed
as is.

## The fact

` + "`$fact`" + ` is replaced by the fact text:

    $fact:yellow

## Literal text

Wrap text in ` + "`__`" + ` to style it. The span cannot contain spaces:

    __Cultura__:magenta:bold

## Styles

Append styles with ` + "`:`" + `. They apply left to right; unknown names are ignored.

%s

## Default

    %s
`

func NewTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Help for the fact output template",
	}

	var plain bool
	syntax := &cobra.Command{
		Use:   "syntax",
		Short: "Explain the template language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := SyntaxDoc()
			rendered, err := cliui.RenderMarkdown(doc, plain || os.Getenv("NO_COLOR") != "")
			if err != nil {
				rendered = doc
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	syntax.Flags().BoolVar(&plain, "plain", false, "Print without colors")

	cmd.AddCommand(syntax)
	return cmd
}

// SyntaxDoc returns the template language help as markdown.
func SyntaxDoc() string {
	var styles strings.Builder
	for _, name := range formatter.Styles() {
		fmt.Fprintf(&styles, "- `%s`\n", name)
	}
	return fmt.Sprintf(syntaxDoc, strings.TrimRight(styles.String(), "\n"), formatter.DefaultTemplate)
}
