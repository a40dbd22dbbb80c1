package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
	"github.com/common-gull/cocobolo-core/pkg/vault/filestore"
)

// NewInfoCmd creates the `cocobolo info` command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show vault metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := filestore.New(config.VaultPath())
			info, err := store.Info()
			if err != nil {
				return err
			}
			fmt.Printf("Name:    %s\n", info.Name)
			fmt.Printf("Path:    %s\n", store.Root())
			fmt.Printf("Version: %s\n", info.Version)
			fmt.Printf("Created: %s\n", info.CreatedAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}
