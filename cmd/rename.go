package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
)

// NewRenameCmd creates the `cocobolo rename` command.
func NewRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <folder-path> <new-name>",
		Short: "Rename a folder in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			if err := v.Coord.RenameFolder(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed %s to %s\n", args[0], args[1])
			return nil
		},
	}
}
