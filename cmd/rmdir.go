package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
)

// NewRmdirCmd creates the `cocobolo rmdir` command.
func NewRmdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir <folder-path>",
		Short: "Delete an empty folder",
		Long: `Delete a folder from the registry. A folder that still holds notes or
registered subfolders is refused; move or delete its contents first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			if err := v.Coord.DeleteFolder(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted folder %s\n", args[0])
			return nil
		},
	}
}
