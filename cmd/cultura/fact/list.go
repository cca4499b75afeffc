package factcmder

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/fact"
	"github.com/papercomputeco/cultura/pkg/storage"
	"github.com/papercomputeco/cultura/pkg/utils"
)

const listLongDesc string = `List stored facts, newest first.

Unread facts are marked with a filled dot. Listing never marks facts as read.

Examples:
  cultura fact list
  cultura fact list --unread --limit 10`

const listShortDesc string = "List stored facts"

const defaultWidth = 80

type listCommander struct {
	unread bool
	limit  int
}

func newListCmd() *cobra.Command {
	cmder := &listCommander{}
	var storageBinding app.Binding

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd, storageBinding)
		},
	}

	storageBinding = addStorageFlags(cmd)
	cmd.Flags().BoolVar(&cmder.unread, "unread", false, "Only list unread facts")
	cmd.Flags().IntVarP(&cmder.limit, "limit", "n", 20, "Maximum number of facts (0 for all)")

	return cmd
}

func (c *listCommander) run(cmd *cobra.Command, storageBinding app.Binding) error {
	cfg, _, err := app.LoadConfig(cmd, storageBinding)
	if err != nil {
		return err
	}

	env, err := app.Open(cmd.Context(), app.EnvOpts{
		Config: cfg,
		Logger: app.NewLogger(app.GlobalFlags(cmd).Debug),
	})
	if err != nil {
		return err
	}
	defer env.Close()

	list, err := env.Service.List(cmd.Context(), storage.ListOptions{
		UnreadOnly: c.unread,
		Limit:      c.limit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintf(out, "  %s\n", cliui.DimStyle.Render("No facts stored. Run \"cultura fact update\"."))
		return nil
	}

	writeFacts(out, list, terminalWidth(out))
	return nil
}

// writeFacts prints one fact per line, truncated to width cells.
func writeFacts(out io.Writer, list []*fact.Fact, width int) {
	for _, f := range list {
		mark := cliui.ValueStyle.Render("●")
		if f.Displayed {
			mark = cliui.DimStyle.Render("○")
		}
		prefix := fmt.Sprintf("  %s %s ", mark, cliui.KeyStyle.Render(fmt.Sprintf("%-6s", f.ProviderID)))

		room := width - ansi.StringWidth(prefix) - len("...")
		if room < 10 {
			room = 10
		}
		fmt.Fprintln(out, prefix+utils.Truncate(f.Text, room))
	}
}

func terminalWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
