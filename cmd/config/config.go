// Package config wires viper configuration for the cocobolo CLI and builds
// the store/coordinator pair the commands work against.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/common-gull/cocobolo-core/pkg/search"
	"github.com/common-gull/cocobolo-core/pkg/sync"
	"github.com/common-gull/cocobolo-core/pkg/tree"
	"github.com/common-gull/cocobolo-core/pkg/vault/filestore"
)

var (
	cfgFile       string
	VaultOverride string
)

// InitConfig loads the config file and environment. Called once from the
// root command's initializer.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "cocobolo")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("COCOBOLO")

	home, _ := os.UserHomeDir()
	viper.SetDefault("vault_path", filepath.Join(home, "Documents", "cocobolo"))
	viper.SetDefault("sort_order", string(tree.SortByTitle))
	viper.SetDefault("search_index", true)

	// Missing config file is fine; defaults and env cover local use.
	_ = viper.ReadInConfig()
}

// AddGlobalFlags attaches the persistent flags shared by every command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cocobolo/config.yaml)")
	cmd.PersistentFlags().StringVarP(&VaultOverride, "vault", "V", "", "vault directory (overrides configured vault_path)")
}

// VaultPath resolves the vault directory from the flag or configuration.
func VaultPath() string {
	if VaultOverride != "" {
		return VaultOverride
	}
	return viper.GetString("vault_path")
}

// SortOrder resolves the configured note ordering.
func SortOrder() tree.SortOrder {
	if viper.GetString("sort_order") == string(tree.SortByRecency) {
		return tree.SortByRecency
	}
	return tree.SortByTitle
}

// Vault is an opened vault: the store, its session, and a refreshed
// coordinator.
type Vault struct {
	Store   *filestore.Store
	Session string
	Coord   *sync.Coordinator
	Index   *search.Index
}

// OpenVault opens the configured vault, starts a session, and loads the
// initial state.
func OpenVault(ctx context.Context, log *logrus.Logger) (*Vault, error) {
	store := filestore.New(VaultPath())
	session, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("open vault at %s: %w", store.Root(), err)
	}

	opts := []sync.Option{sync.WithSortOrder(SortOrder())}
	var idx *search.Index
	if viper.GetBool("search_index") {
		idx, err = search.NewIndex(filepath.Join(store.Root(), "index.db"))
		if err != nil {
			// Search is an optional layer; the tree works without it.
			log.WithError(err).Warn("search index unavailable")
		} else {
			opts = append(opts, sync.WithSearchIndex(idx))
		}
	}

	coord := sync.New(store, session, log, opts...)
	if err := coord.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load vault state: %w", err)
	}
	return &Vault{Store: store, Session: session, Coord: coord, Index: idx}, nil
}

// CloseVault releases the session and index.
func (v *Vault) CloseVault() {
	if v.Index != nil {
		_ = v.Index.Close()
	}
	v.Store.Close(v.Session)
}
