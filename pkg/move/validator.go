// Package move holds the pure decision logic that runs before any
// persistence call: given a drag source and a drop target, is the move legal,
// and what path does it produce?
package move

import (
	"errors"
	"fmt"
	"strings"

	"github.com/common-gull/cocobolo-core/pkg/paths"
)

var (
	// ErrCyclicMove rejects moving a folder into itself or one of its own
	// descendants. A folder path may never become a prefix-descendant of its
	// pre-move self.
	ErrCyclicMove = errors.New("cannot move a folder into itself or its own subtree")

	// ErrNoOpMove rejects a move that would leave the folder where it is.
	ErrNoOpMove = errors.New("folder is already at the target location")
)

// Target identifies a drop destination: either the vault root or a folder
// path. The zero value is the root.
type Target struct {
	path string
}

// Root returns the root drop target.
func Root() Target {
	return Target{}
}

// Folder returns a drop target for the given folder path.
func Folder(path string) Target {
	return Target{path: paths.Normalize(path)}
}

// IsRoot reports whether the target is the vault root.
func (t Target) IsRoot() bool {
	return t.path == ""
}

// Path returns the target folder path; empty for the root.
func (t Target) Path() string {
	return t.path
}

func (t Target) String() string {
	if t.IsRoot() {
		return "<root>"
	}
	return t.path
}

// NoteDestination computes the folder path a note acquires when dropped onto
// the target: nil for the root (the note's folder field is cleared, not set
// to ""), otherwise the target path verbatim. Note moves are always legal;
// a note cannot create a cycle.
func NoteDestination(target Target) *string {
	if target.IsRoot() {
		return nil
	}
	p := target.path
	return &p
}

// ValidateFolderMove computes the path sourcePath acquires when dropped onto
// target and rejects illegal moves before any persistence call is made.
func ValidateFolderMove(sourcePath string, target Target) (string, error) {
	source := paths.Normalize(sourcePath)
	newPath := paths.Join(target.Path(), paths.Base(source))

	if newPath == source {
		return "", fmt.Errorf("move %q: %w", source, ErrNoOpMove)
	}
	if paths.IsSelfOrDescendant(source, newPath) {
		return "", fmt.Errorf("move %q to %q: %w", source, newPath, ErrCyclicMove)
	}
	return newPath, nil
}

// ValidateRename computes the path produced by renaming the folder's final
// segment to newName. A blank or unchanged name (and a name containing the
// path separator) reports ok=false: the gesture is treated as a cancel, not
// an error, and no persistence call should follow.
func ValidateRename(sourcePath, newName string) (newPath string, ok bool) {
	source := paths.Normalize(sourcePath)
	name := strings.TrimSpace(newName)
	if name == "" || name == paths.Base(source) || strings.Contains(name, paths.Separator) {
		return "", false
	}
	return paths.Join(paths.Parent(source), name), true
}
