package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/app"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [manifests...]",
		Short: "Show drift between the lockfile and the manifests",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Diff(cmd.Context(), app.DiffOptions{Paths: args})
		},
	}
}
