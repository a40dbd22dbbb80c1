// Package sync coordinates every mutating vault operation behind one
// pattern: validate locally, call the persistence collaborator, and on
// success reload the authoritative note and folder lists before the tree is
// rebuilt. There is no optimistic patching; on any failure the previously
// loaded lists (and therefore the rendered tree) are left exactly as they
// were.
package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/common-gull/cocobolo-core/pkg/drag"
	"github.com/common-gull/cocobolo-core/pkg/models"
	"github.com/common-gull/cocobolo-core/pkg/move"
	"github.com/common-gull/cocobolo-core/pkg/paths"
	"github.com/common-gull/cocobolo-core/pkg/search"
	"github.com/common-gull/cocobolo-core/pkg/tree"
	"github.com/common-gull/cocobolo-core/pkg/vault"
)

// Coordinator owns the raw lists the tree is built from, the expansion set,
// and the session against the persistence store. It is driven from a single
// event loop and is not safe for concurrent use.
type Coordinator struct {
	store   vault.Store
	session string
	log     *logrus.Logger
	index   *search.Index // optional

	notes    []models.NoteMetadata
	folders  []string
	expanded map[string]bool
	order    tree.SortOrder
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSortOrder sets how notes are ordered within each folder.
func WithSortOrder(order tree.SortOrder) Option {
	return func(c *Coordinator) { c.order = order }
}

// WithSearchIndex attaches a search index that is rebuilt on every refresh.
func WithSearchIndex(idx *search.Index) Option {
	return func(c *Coordinator) { c.index = idx }
}

// New creates a coordinator bound to an open vault session.
func New(store vault.Store, session string, log *logrus.Logger, opts ...Option) *Coordinator {
	if log == nil {
		log = logrus.New()
	}
	c := &Coordinator{
		store:    store,
		session:  session,
		log:      log,
		expanded: make(map[string]bool),
		order:    tree.SortByTitle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh reloads the note and folder lists from the store. The lists are
// swapped in only after both loads succeed, so a half-failed refresh changes
// nothing.
func (c *Coordinator) Refresh(ctx context.Context) error {
	notes, err := c.store.ListNotes(ctx, c.session)
	if err != nil {
		c.log.WithError(err).Warn("refresh: list notes failed")
		return transportErr("refresh", err)
	}
	folders, err := c.store.ListFolders(ctx, c.session)
	if err != nil {
		c.log.WithError(err).Warn("refresh: list folders failed")
		return transportErr("refresh", err)
	}

	c.notes = notes
	c.folders = folders

	if c.index != nil {
		if err := c.index.Rebuild(notes); err != nil {
			// The index is derived data; a rebuild failure degrades search
			// but not the tree.
			c.log.WithError(err).Warn("refresh: search index rebuild failed")
		}
	}
	return nil
}

// Tree rebuilds the folder hierarchy from the current lists and expansion
// set. Each call returns a fresh snapshot; nothing is mutated in place.
func (c *Coordinator) Tree() *tree.FolderNode {
	return tree.Build(c.notes, c.folders, c.expanded, c.order)
}

// Notes returns the last loaded note listing.
func (c *Coordinator) Notes() []models.NoteMetadata {
	return c.notes
}

// Folders returns the last loaded folder registry.
func (c *Coordinator) Folders() []string {
	return c.folders
}

// SortOrder returns the current note ordering.
func (c *Coordinator) SortOrder() tree.SortOrder {
	return c.order
}

// SetSortOrder changes the note ordering used by subsequent Tree calls.
func (c *Coordinator) SetSortOrder(order tree.SortOrder) {
	c.order = order
}

// SetExpanded records whether the folder at path is expanded. Expansion
// state is the one piece of state that survives rebuilds.
func (c *Coordinator) SetExpanded(path string, expanded bool) {
	if expanded {
		c.expanded[path] = true
	} else {
		delete(c.expanded, path)
	}
}

// IsExpanded reports the recorded expansion state for path.
func (c *Coordinator) IsExpanded(path string) bool {
	return c.expanded[path]
}

// ToggleExpanded flips the expansion state for path.
func (c *Coordinator) ToggleExpanded(path string) {
	c.SetExpanded(path, !c.expanded[path])
}

// MoveNote moves a note onto the target (a folder or the root) and refreshes
// on success. The destination folder is marked expanded so the moved note is
// immediately visible.
func (c *Coordinator) MoveNote(ctx context.Context, id string, target move.Target) error {
	dest := move.NoteDestination(target)
	ok, err := c.store.MoveNote(ctx, c.session, id, dest)
	if err != nil {
		c.log.WithError(err).WithField("note", id).Error("move note failed")
		return transportErr("move note", err)
	}
	if !ok {
		return rejectedErr("move note", fmt.Sprintf("note %s could not be moved", id))
	}
	c.expandTarget(target)
	return c.Refresh(ctx)
}

// MoveFolder validates the move locally, then asks the store to perform it.
// A validation failure never reaches the store.
func (c *Coordinator) MoveFolder(ctx context.Context, sourcePath string, target move.Target) error {
	newPath, err := move.ValidateFolderMove(sourcePath, target)
	if err != nil {
		return validationErr("move folder", err)
	}
	ok, err := c.store.MoveFolder(ctx, c.session, sourcePath, newPath)
	if err != nil {
		c.log.WithError(err).WithField("folder", sourcePath).Error("move folder failed")
		return transportErr("move folder", err)
	}
	if !ok {
		return rejectedErr("move folder", fmt.Sprintf("folder %q could not be moved to %q", sourcePath, newPath))
	}
	c.rebaseExpansion(paths.Normalize(sourcePath), newPath)
	c.expandTarget(target)
	return c.Refresh(ctx)
}

// Apply executes an operation produced by a resolved drag drop. The drag
// session has already validated it; only store outcomes remain.
func (c *Coordinator) Apply(ctx context.Context, op drag.Op) error {
	switch op.Kind {
	case drag.OpMoveFolder:
		ok, err := c.store.MoveFolder(ctx, c.session, op.OldPath, op.NewPath)
		if err != nil {
			c.log.WithError(err).WithField("folder", op.OldPath).Error("move folder failed")
			return transportErr("move folder", err)
		}
		if !ok {
			return rejectedErr("move folder", fmt.Sprintf("folder %q could not be moved to %q", op.OldPath, op.NewPath))
		}
		c.rebaseExpansion(paths.Normalize(op.OldPath), op.NewPath)
		if parent := paths.Parent(op.NewPath); parent != "" {
			c.SetExpanded(parent, true)
		}
		return c.Refresh(ctx)

	default:
		ok, err := c.store.MoveNote(ctx, c.session, op.NoteID, op.Dest)
		if err != nil {
			c.log.WithError(err).WithField("note", op.NoteID).Error("move note failed")
			return transportErr("move note", err)
		}
		if !ok {
			return rejectedErr("move note", fmt.Sprintf("note %s could not be moved", op.NoteID))
		}
		if op.Dest != nil {
			c.SetExpanded(*op.Dest, true)
		}
		return c.Refresh(ctx)
	}
}

// RenameFolder renames the folder's final segment. A blank or unchanged name
// is a silent cancel: nil is returned and the store is never called.
func (c *Coordinator) RenameFolder(ctx context.Context, path, newName string) error {
	newPath, ok := move.ValidateRename(path, newName)
	if !ok {
		return nil
	}
	applied, err := c.store.RenameFolder(ctx, c.session, path, paths.Base(newPath))
	if err != nil {
		c.log.WithError(err).WithField("folder", path).Error("rename folder failed")
		return transportErr("rename folder", err)
	}
	if !applied {
		return rejectedErr("rename folder", fmt.Sprintf("folder %q could not be renamed", path))
	}
	c.rebaseExpansion(paths.Normalize(path), newPath)
	return c.Refresh(ctx)
}

// CreateFolder registers a new folder path and expands its parent so it is
// visible.
func (c *Coordinator) CreateFolder(ctx context.Context, path string) error {
	normalized := paths.Normalize(path)
	if normalized == "" {
		return validationErr("create folder", vault.ErrInvalidPath)
	}
	if err := c.store.CreateFolder(ctx, c.session, normalized); err != nil {
		if errors.Is(err, vault.ErrFolderExists) || errors.Is(err, vault.ErrInvalidPath) {
			return rejectedErr("create folder", err.Error())
		}
		c.log.WithError(err).WithField("folder", normalized).Error("create folder failed")
		return transportErr("create folder", err)
	}
	if parent := paths.Parent(normalized); parent != "" {
		c.SetExpanded(parent, true)
	}
	return c.Refresh(ctx)
}

// DeleteFolder removes an empty folder.
func (c *Coordinator) DeleteFolder(ctx context.Context, path string) error {
	ok, err := c.store.DeleteFolder(ctx, c.session, path)
	if err != nil {
		c.log.WithError(err).WithField("folder", path).Error("delete folder failed")
		return transportErr("delete folder", err)
	}
	if !ok {
		return rejectedErr("delete folder", fmt.Sprintf("folder %q is not empty or does not exist", path))
	}
	c.SetExpanded(paths.Normalize(path), false)
	return c.Refresh(ctx)
}

// DeleteNote removes a note.
func (c *Coordinator) DeleteNote(ctx context.Context, id string) error {
	ok, err := c.store.DeleteNote(ctx, c.session, id)
	if err != nil {
		c.log.WithError(err).WithField("note", id).Error("delete note failed")
		return transportErr("delete note", err)
	}
	if !ok {
		return rejectedErr("delete note", fmt.Sprintf("note %s does not exist", id))
	}
	return c.Refresh(ctx)
}

func (c *Coordinator) expandTarget(target move.Target) {
	if !target.IsRoot() {
		c.SetExpanded(target.Path(), true)
	}
}

// rebaseExpansion carries expansion state across a folder move so subtrees
// the user had open stay open under the new path.
func (c *Coordinator) rebaseExpansion(oldPath, newPath string) {
	updated := make(map[string]bool, len(c.expanded))
	for p := range c.expanded {
		switch {
		case p == oldPath:
			updated[newPath] = true
		case paths.IsSelfOrDescendant(oldPath, p):
			updated[newPath+p[len(oldPath):]] = true
		default:
			updated[p] = true
		}
	}
	c.expanded = updated
}
