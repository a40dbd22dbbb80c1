package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
)

// NewRmCmd creates the `cocobolo rm` command.
func NewRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			if err := v.Coord.DeleteNote(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted note %s\n", args[0])
			return nil
		},
	}
}
