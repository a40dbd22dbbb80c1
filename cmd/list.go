package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/common-gull/cocobolo-core/cmd/config"
	"github.com/common-gull/cocobolo-core/pkg/tree"
)

// NewListCmd creates the `cocobolo list` command.
func NewListCmd() *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "tree"},
		Short:   "Print the folder tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := config.OpenVault(ctx, log)
			if err != nil {
				return err
			}
			defer v.CloseVault()

			root := v.Coord.Tree()
			fmt.Printf("%s (%d)\n", tree.RootName, root.TotalCount)
			printTree(root, "", showIDs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "print note identifiers")
	return cmd
}

func printTree(node *tree.FolderNode, indent string, showIDs bool) {
	for _, child := range node.Children {
		fmt.Printf("%s%s/ (%d)\n", indent+"  ", child.Name, child.TotalCount)
		printTree(child, indent+"  ", showIDs)
	}
	for _, note := range node.Notes {
		line := indent + "  " + note.Title
		if len(note.Tags) > 0 {
			line += "  [" + strings.Join(note.Tags, ", ") + "]"
		}
		if showIDs {
			line += "  " + note.ID
		}
		fmt.Println(line)
	}
}
