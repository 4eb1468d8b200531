package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/canopy/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the visible nodes of the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expandAll, _ := cmd.Flags().GetBool("expand-all")
			filter, _ := cmd.Flags().GetString("filter")
			fuzzy, _ := cmd.Flags().GetBool("fuzzy")
			positions, _ := cmd.Flags().GetBool("positions")
			events, _ := cmd.Flags().GetBool("events")
			return c.app.Show(cmd.Context(), app.ShowOptions{
				ConfigPath: configPath(cmd),
				ExpandAll:  expandAll,
				Filter:     filter,
				Fuzzy:      fuzzy,
				Positions:  positions,
				Events:     events,
			})
		},
	}
	cmd.Flags().BoolP("expand-all", "e", false, "Expand every node, loading children as needed")
	cmd.Flags().StringP("filter", "f", "", "Only show nodes whose label matches")
	cmd.Flags().Bool("fuzzy", false, "Match the filter fuzzily")
	cmd.Flags().BoolP("positions", "p", false, "Prefix each node with its position and height")
	cmd.Flags().Bool("events", false, "Print the events fired while building the listing")
	return cmd
}
