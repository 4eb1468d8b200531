package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/canopy/internal/app"
)

func (c *CLI) newNavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav <id>",
		Short: "Print the node displayed after the given one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, _ := cmd.Flags().GetBool("prev")
			expandAll, _ := cmd.Flags().GetBool("expand-all")
			return c.app.Nav(cmd.Context(), app.NavOptions{
				ConfigPath: configPath(cmd),
				ID:         args[0],
				Prev:       prev,
				ExpandAll:  expandAll,
			})
		},
	}
	cmd.Flags().Bool("prev", false, "Print the node displayed before instead")
	cmd.Flags().BoolP("expand-all", "e", false, "Expand every node first")
	return cmd
}
