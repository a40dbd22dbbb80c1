// Package tree builds the hierarchical folder view from the vault's flat
// storage model: a list of notes (each carrying an optional folder path
// string) and a flat registry of known folder paths.
//
// The tree is a derived, rebuildable view and never the source of truth. It
// is rebuilt from scratch whenever the note list, the folder registry, or the
// expansion set changes; no node is mutated after Build returns.
package tree

import "github.com/common-gull/cocobolo-core/pkg/models"

// RootName is the display name of the synthetic root node.
const RootName = "Root"

// FolderNode is one node of the derived hierarchy. The root node has
// Path == "" and Name == RootName and is always expanded.
type FolderNode struct {
	Path     string
	Name     string
	Parent   *FolderNode
	Children []*FolderNode
	Notes    []models.NoteMetadata
	Expanded bool

	// TotalCount is the number of notes in this folder plus all of its
	// descendants.
	TotalCount int
}

// IsRoot reports whether this is the synthetic root node.
func (n *FolderNode) IsRoot() bool {
	return n.Path == ""
}

// Walk visits n and every descendant in depth-first, children-first-sorted
// order. Walking stops early if fn returns false.
func (n *FolderNode) Walk(fn func(*FolderNode) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the descendant node (or n itself) with the given path, or nil.
func (n *FolderNode) Find(path string) *FolderNode {
	var found *FolderNode
	n.Walk(func(node *FolderNode) bool {
		if node.Path == path {
			found = node
			return false
		}
		return true
	})
	return found
}
