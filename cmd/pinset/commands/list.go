package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [manifests...]",
		Short: "List declarations with their environment applicability",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.List(cmd.Context(), app.ListOptions{Paths: args})
		},
	}
}
