package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
	"github.com/common-gull/cocobolo-core/pkg/vault/filestore"
)

// NewInitCmd creates the `cocobolo init` command.
func NewInitCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new vault at the configured path",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := filestore.New(config.VaultPath())
			if name == "" {
				name = filepath.Base(store.Root())
			}
			info, err := store.Init(name)
			if err != nil {
				return fmt.Errorf("initialize vault: %w", err)
			}
			fmt.Printf("Created vault %q at %s\n", info.Name, store.Root())
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "vault display name (defaults to the directory name)")
	return cmd
}
