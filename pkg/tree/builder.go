package tree

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/common-gull/cocobolo-core/pkg/models"
	"github.com/common-gull/cocobolo-core/pkg/paths"
)

// SortOrder selects how notes within a folder are ordered.
type SortOrder string

const (
	// SortByTitle orders notes case-insensitively by title.
	SortByTitle SortOrder = "title"
	// SortByRecency orders notes newest-first by modification time.
	SortByRecency SortOrder = "recency"
)

// folderCollator orders sibling folders and note titles without regard to
// case. Collators are not safe for concurrent use, so each Build call takes
// its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// Build constructs the folder hierarchy from the flat note list, the flat
// folder registry, and the consumer-owned expansion set. It is pure: the
// result depends only on its inputs, and permuting the input slices yields a
// structurally identical tree.
//
// Folder paths referenced only by a note's FolderPath but absent from the
// registry ("orphan" folders) are materialized as implicit nodes. They are
// never written back to the registry and silently disappear from the next
// build once no note references them.
//
// Build never fails: inputs are best-effort data, and malformed paths are
// normalized segment by segment.
func Build(notes []models.NoteMetadata, folderPaths []string, expanded map[string]bool, order SortOrder) *FolderNode {
	root := &FolderNode{Path: "", Name: RootName, Expanded: true}
	index := map[string]*FolderNode{"": root}

	for _, p := range folderPaths {
		materialize(index, p)
	}
	for i := range notes {
		if notes[i].FolderPath != "" {
			materialize(index, notes[i].FolderPath)
		}
	}

	// Each note lands in exactly one node: the one whose path equals its
	// normalized folder path, root when absent.
	for _, note := range notes {
		node := index[paths.Normalize(note.FolderPath)]
		node.Notes = append(node.Notes, note)
	}

	coll := newCollator()
	sortTree(root, coll, order)

	root.Walk(func(n *FolderNode) bool {
		if !n.IsRoot() {
			n.Expanded = expanded[n.Path]
		}
		return true
	})

	countNotes(root)
	return root
}

// materialize walks the path's segments left to right, creating and linking
// any node not yet present. Insertion is idempotent: a path seen twice (or
// seen via both the registry and a note) produces a single node.
func materialize(index map[string]*FolderNode, path string) *FolderNode {
	segs := paths.Segments(path)
	parent := index[""]
	current := ""
	for _, seg := range segs {
		current = paths.Join(current, seg)
		node, ok := index[current]
		if !ok {
			node = &FolderNode{Path: current, Name: seg, Parent: parent}
			parent.Children = append(parent.Children, node)
			index[current] = node
		}
		parent = node
	}
	return parent
}

func sortTree(n *FolderNode, coll *collate.Collator, order SortOrder) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		if c := coll.CompareString(n.Children[i].Name, n.Children[j].Name); c != 0 {
			return c < 0
		}
		// Sibling names only collide on case-insensitive equality; fall back
		// to the raw path for a total order.
		return n.Children[i].Path < n.Children[j].Path
	})

	sort.SliceStable(n.Notes, func(i, j int) bool {
		a, b := n.Notes[i], n.Notes[j]
		switch order {
		case SortByRecency:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
		default:
			if c := coll.CompareString(a.Title, b.Title); c != 0 {
				return c < 0
			}
		}
		return a.ID < b.ID
	})

	for _, child := range n.Children {
		sortTree(child, coll, order)
	}
}

func countNotes(n *FolderNode) int {
	total := len(n.Notes)
	for _, child := range n.Children {
		total += countNotes(child)
	}
	n.TotalCount = total
	return total
}
