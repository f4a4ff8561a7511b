package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			projects, selected, err := c.app.Projects(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				_, _ = fmt.Fprintln(out, "No projects registered.")
				return nil
			}

			for _, p := range projects {
				marker := " "
				if p.Name == selected {
					marker = "*"
				}
				_, _ = fmt.Fprintf(out, "%s %s\t%s\n", marker, p.Name, p.Path)
			}
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a .uproject file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			return c.app.AddProject(cmd.Context(), name, args[0])
		},
	}
	addCmd.Flags().StringP("name", "n", "", "Name for the project (defaults to the file stem)")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Unregister a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RemoveProject(cmd.Context(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "select <name>",
		Short: "Make a registered project the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.SelectProject(cmd.Context(), args[0])
		},
	})

	return cmd
}
