package commands

import (
	"github.com/spf13/cobra"
	"github.com/stellarforge/ubuild/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [project]",
		Short: "Build a project's editor target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := ""
			if len(args) == 1 {
				project = args[0]
			}
			clean, _ := cmd.Flags().GetBool("clean")
			engine, _ := cmd.Flags().GetString("engine")
			targetName, _ := cmd.Flags().GetString("target")
			platform, _ := cmd.Flags().GetString("platform")
			configuration, _ := cmd.Flags().GetString("configuration")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")
			watch, _ := cmd.Flags().GetBool("watch")

			// If --ci is set, override output-mode to "linear"
			if ci {
				outputMode = "linear"
			}

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Project:       project,
				Engine:        engine,
				Clean:         clean,
				Target:        targetName,
				Platform:      platform,
				Configuration: configuration,
				OutputMode:    outputMode,
				Watch:         watch,
			})
		},
	}
	cmd.Flags().BoolP("clean", "C", false, "Remove build artifacts and regenerate project files before compiling")
	cmd.Flags().StringP("engine", "e", "", "Engine installation root (overrides configuration)")
	cmd.Flags().StringP("target", "t", "", "Build target name (overrides discovery)")
	cmd.Flags().StringP("platform", "p", "", "Target platform (default Win64)")
	cmd.Flags().StringP("configuration", "c", "", "Build configuration (default Development)")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild when source files change")
	return cmd
}
