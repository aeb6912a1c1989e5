package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/app"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [manifests...]",
		Short: "Render manifests in canonical form",
		Long: "Fmt prints the given manifests (or the configured ones) with normalized\n" +
			"spacing around specifiers and markers. With --write the files are rewritten in place.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")

			return c.app.Fmt(cmd.Context(), app.FmtOptions{
				Paths: args,
				Write: write,
			})
		},
	}
	cmd.Flags().Bool("write", false, "Rewrite the manifest files instead of printing")
	return cmd
}
