package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newEnginesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List detected Unreal Engine installations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			installs := c.app.Engines(cmd.Context())
			if len(installs) == 0 {
				_, _ = fmt.Fprintln(out, "No engine installations found.")
				return nil
			}

			for _, install := range installs {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", install.Name, install.Path)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "use <path>",
		Short: "Set the default engine installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.SetEngine(cmd.Context(), args[0])
		},
	})

	return cmd
}
