package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
	"github.com/common-gull/cocobolo-core/pkg/vault"
)

// NewNewCmd creates the `cocobolo new` command.
func NewNewCmd() *cobra.Command {
	var (
		folder  string
		tags    []string
		content string
	)

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			note, err := v.Store.CreateNote(ctx, v.Session, vault.CreateNoteParams{
				Title:      strings.Join(args, " "),
				Content:    content,
				Tags:       tags,
				FolderPath: folder,
			})
			if err != nil {
				return fmt.Errorf("create note: %w", err)
			}
			fmt.Printf("Created note %s (%s)\n", note.Title, note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder path for the note")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tags (repeatable)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "initial note content")
	return cmd
}
