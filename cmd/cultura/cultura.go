// Package culturacmder
package culturacmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/cultura/cmd/cultura/config"
	daemoncmder "github.com/papercomputeco/cultura/cmd/cultura/daemon"
	doctorcmder "github.com/papercomputeco/cultura/cmd/cultura/doctor"
	factcmder "github.com/papercomputeco/cultura/cmd/cultura/fact"
	initcmder "github.com/papercomputeco/cultura/cmd/cultura/init"
	shellcmder "github.com/papercomputeco/cultura/cmd/cultura/shell"
	templatecmder "github.com/papercomputeco/cultura/cmd/cultura/template"
	versioncmder "github.com/papercomputeco/cultura/cmd/version"
)

const culturaLongDesc string = `Cultura harvests fun facts from the web and prints one in every new shell.

Get started:
  cultura fact update            Harvest facts now
  cultura fact generate-random   Print the newest unread fact
  cultura daemon start           Harvest in the background
  cultura shell fish | source    Greet new shells with a fact`

const culturaShortDesc string = "Cultura - fun facts for your terminal"

func NewCulturaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cultura",
		Short:         culturaShortDesc,
		Long:          culturaLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the cultura directory (default: ./.cultura or ~/.config/cultura)")

	// Add subcommands
	cmd.AddCommand(factcmder.NewFactCmd())
	cmd.AddCommand(daemoncmder.NewDaemonCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(templatecmder.NewTemplateCmd())
	cmd.AddCommand(shellcmder.NewShellCmd())
	cmd.AddCommand(doctorcmder.NewDoctorCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
