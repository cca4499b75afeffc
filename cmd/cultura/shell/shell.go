// Package shellcmder prints shell snippets that start the daemon and greet
// new shells with a fact.
package shellcmder

import (
	"fmt"

	"github.com/spf13/cobra"
)

const shellLongDesc string = `Print the shell integration snippet.

The snippet starts the background harvester if needed and prints a fact
whenever a new shell opens.

Examples:
  cultura shell fish | source              # in ~/.config/fish/config.fish
  eval "$(cultura shell bash)"             # in ~/.bashrc
  eval "$(cultura shell zsh)"              # in ~/.zshrc`

var snippets = map[string]string{
	"fish": `function fish_greeting
    cultura daemon start >/dev/null 2>&1
    cultura fact generate-random
end
`,
	"bash": `cultura daemon start >/dev/null 2>&1
cultura fact generate-random
`,
	"zsh": `cultura daemon start >/dev/null 2>&1
cultura fact generate-random
`,
}

func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "shell <fish|bash|zsh>",
		Short:     "Print the shell integration snippet",
		Long:      shellLongDesc,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"fish", "bash", "zsh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			snippet, err := Snippet(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), snippet)
			return err
		},
	}

	return cmd
}

// Snippet returns the integration snippet for shell.
func Snippet(shell string) (string, error) {
	s, ok := snippets[shell]
	if !ok {
		return "", fmt.Errorf("unsupported shell: %q (supported: fish, bash, zsh)", shell)
	}
	return s, nil
}
