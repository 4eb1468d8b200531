package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/canopy/internal/app"
)

func (c *CLI) newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the tree interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			fuzzy, _ := cmd.Flags().GetBool("fuzzy")
			return c.app.Browse(cmd.Context(), app.BrowseOptions{
				ConfigPath: configPath(cmd),
				Fuzzy:      fuzzy,
				Watch:      watch,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Reload the tree when its data changes")
	cmd.Flags().Bool("fuzzy", false, "Match the filter fuzzily")
	return cmd
}
