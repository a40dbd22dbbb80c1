package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
	"github.com/common-gull/cocobolo-core/pkg/search"
)

// NewSearchCmd creates the `cocobolo search` command.
func NewSearchCmd() *cobra.Command {
	var (
		folder string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by title, tags, and content preview",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			if v.Index == nil {
				return fmt.Errorf("search index is disabled; enable search_index in the config")
			}

			query := strings.Join(args, " ")
			results, err := v.Index.Search(query, &search.Options{Folder: folder, Limit: limit})
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			if len(results) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, meta := range results {
				location := meta.FolderPath
				if location == "" {
					location = "<root>"
				}
				fmt.Printf("%s  %s  (%s)\n", meta.ID, meta.Title, location)
				if meta.ContentPreview != "" {
					fmt.Printf("    %s\n", meta.ContentPreview)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "restrict to a folder and its descendants")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default 50)")
	return cmd
}
