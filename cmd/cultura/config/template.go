package configcmder

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/pkg/config"
	"github.com/papercomputeco/cultura/pkg/formatter"
)

const templateLongDesc string = `Set the template used to print facts.

Without an argument, prints the current template. With --preview, renders a
sample fact through the template instead of saving it. See
"cultura template syntax" for the template language.

Examples:
  cultura config template
  cultura config template '__|>__:cyan $fact:yellow'
  cultura config template --preview '__Cultura__:magenta:bold $fact'`

const templateShortDesc string = "Show or set the output template"

const previewFact = "Honey never spoils."

func newTemplateCmd() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "template [template]",
		Short: templateShortDesc,
		Long:  templateLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				cfg, err := cfger.LoadConfig()
				if err != nil {
					return err
				}
				if preview {
					fmt.Fprintln(out, renderPreview(cfg.Facts.Template))
					return nil
				}
				fmt.Fprintln(out, cfg.Facts.Template)
				return nil
			}

			if preview {
				fmt.Fprintln(out, renderPreview(args[0]))
				return nil
			}

			if err := cfger.SetTemplate(args[0]); err != nil {
				return err
			}
			printSaved(cmd, cfger, "facts.template", args[0])
			fmt.Fprintln(out, renderPreview(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Render a sample fact without saving")

	return cmd
}

func renderPreview(template string) string {
	return formatter.New(template, formatter.WithProfile(termenv.EnvColorProfile())).Render(previewFact)
}
