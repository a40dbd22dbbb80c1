package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
)

// NewMkdirCmd creates the `cocobolo mkdir` command.
func NewMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Register a folder path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			if err := v.Coord.CreateFolder(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Created folder %s\n", args[0])
			return nil
		},
	}
}
