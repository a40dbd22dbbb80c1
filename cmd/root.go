package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
)

var (
	log     = logrus.New()
	verbose bool
)

// NewRootCmd builds the cocobolo command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cocobolo",
		Short: "A folder-organized note vault",
		Long: `Cocobolo organizes a flat collection of notes and folder paths into a
navigable hierarchy. Notes live in a vault directory; folders are labels,
not directories, and the tree you browse is rebuilt from the flat lists on
every change.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.WarnLevel)
			}
		},
	}

	cobra.OnInitialize(config.InitConfig)
	config.AddGlobalFlags(rootCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		NewInitCmd(),
		NewInfoCmd(),
		NewNewCmd(),
		NewListCmd(),
		NewMkdirCmd(),
		NewMoveCmd(),
		NewRenameCmd(),
		NewRmCmd(),
		NewRmdirCmd(),
		NewSearchCmd(),
		NewTuiCmd(),
		NewVersionCmd(),
	)
	return rootCmd
}
