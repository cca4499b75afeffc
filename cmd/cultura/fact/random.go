package factcmder

import (
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/config"
)

const randomLongDesc string = `Print the newest unread fact and mark it as read.

The fact is rendered through the configured template. Nothing is printed
when every stored fact has been read, so the command is safe to run from a
shell greeting. Use --plain (or set NO_COLOR) to drop colors.

Examples:
  cultura fact generate-random
  cultura fact random --plain
  cultura fact random --template '$fact:green'`

const randomShortDesc string = "Print the newest unread fact"

type randomCommander struct {
	plain    bool
	template string
}

func newRandomCmd() *cobra.Command {
	cmder := &randomCommander{}
	var storage app.Binding

	cmd := &cobra.Command{
		Use:     "generate-random",
		Aliases: []string{"random"},
		Short:   randomShortDesc,
		Long:    randomLongDesc,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd, storage)
		},
	}

	storage = addStorageFlags(cmd)
	config.AddStringFlag(cmd, config.RenderFlags, config.FlagTemplate, &cmder.template)
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print without colors")

	return cmd
}

func (c *randomCommander) run(cmd *cobra.Command, storage app.Binding) error {
	cfg, _, err := app.LoadConfig(cmd, storage,
		app.Binding{Set: config.RenderFlags, Keys: []string{config.FlagTemplate}},
	)
	if err != nil {
		return err
	}

	profile := termenv.EnvColorProfile()
	if c.plain || os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}

	env, err := app.Open(cmd.Context(), app.EnvOpts{
		Config:  cfg,
		Logger:  app.NewLogger(app.GlobalFlags(cmd).Debug),
		Profile: &profile,
	})
	if err != nil {
		return err
	}
	defer env.Close()

	return env.Service.PrintRandom(cmd.Context(), cmd.OutOrStdout())
}
