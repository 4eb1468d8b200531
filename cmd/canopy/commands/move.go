package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/canopy/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <index>",
		Short: "Move a node to a new parent and index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid index"), "index", args[1])
			}
			parent, _ := cmd.Flags().GetString("parent")
			write, _ := cmd.Flags().GetBool("write")
			return c.app.Move(cmd.Context(), app.MoveOptions{
				ConfigPath: configPath(cmd),
				ID:         args[0],
				Parent:     parent,
				Index:      index,
				Write:      write,
			})
		},
	}
	cmd.Flags().String("parent", "", "Id of the new parent (default: top level)")
	cmd.Flags().BoolP("write", "w", false, "Write the reshaped tree back to the data file")
	return cmd
}
