package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [manifests...]",
		Short: "Validate requirement manifests",
		Long: "Check parses the given manifests (or the configured ones), validates\n" +
			"every declaration and reports duplicates and syntax problems.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Check(cmd.Context(), app.CheckOptions{
				Paths: args,
				Watch: watch,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Re-check whenever a manifest changes")
	return cmd
}
