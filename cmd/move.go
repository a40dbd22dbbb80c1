package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
	"github.com/common-gull/cocobolo-core/pkg/move"
)

// NewMoveCmd creates the `cocobolo move` command. It moves a note (by id)
// or a folder (by path) into a destination folder, or to the vault root when
// no destination is given.
func NewMoveCmd() *cobra.Command {
	var (
		isFolder bool
		dest     string
	)

	cmd := &cobra.Command{
		Use:   "move <note-id | folder-path>",
		Short: "Move a note or folder",
		Long: `Move a note or a folder into another folder.

The destination is a folder path; omit --to to move to the vault root.
Folder moves carry the whole subtree and are refused when the destination
lies inside the folder being moved.

Examples:
  # Move a note to the root
  cocobolo move 4f8a2c

  # Move a note into work/meetings
  cocobolo move 4f8a2c --to work/meetings

  # Move the folder "work/drafts" under "archive"
  cocobolo move work/drafts --folder --to archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			target := move.Root()
			if dest != "" {
				target = move.Folder(dest)
			}

			if isFolder {
				if err := v.Coord.MoveFolder(ctx, args[0], target); err != nil {
					return err
				}
				fmt.Printf("Moved folder %s to %s\n", args[0], target)
				return nil
			}
			if err := v.Coord.MoveNote(ctx, args[0], target); err != nil {
				return err
			}
			fmt.Printf("Moved note %s to %s\n", args[0], target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&isFolder, "folder", false, "treat the argument as a folder path")
	cmd.Flags().StringVar(&dest, "to", "", "destination folder path (omit for the vault root)")
	return cmd
}
