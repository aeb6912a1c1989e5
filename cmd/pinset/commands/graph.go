package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [manifests...]",
		Short: "Render the dependency graph among the declared packages",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Graph(cmd.Context(), app.GraphOptions{Paths: args})
		},
	}
}
