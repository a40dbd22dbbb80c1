// Package vault defines the persistence contract the tree core is built
// against. A vault stores a flat collection of notes and a flat registry of
// folder paths; the hierarchy the UI shows is derived, never stored.
//
// Mutating operations distinguish business outcomes from transport failures:
// an operation that is simply not applicable (deleting a non-empty folder,
// moving a note that no longer exists) reports false with a nil error, while
// a broken backend reports a non-nil error.
package vault

import (
	"context"
	"errors"

	"github.com/common-gull/cocobolo-core/pkg/models"
)

var (
	// ErrVaultNotFound means no vault manifest exists at the given location.
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultExists means a vault manifest already exists at the location.
	ErrVaultExists = errors.New("vault already exists")
	// ErrVaultCorrupted means the manifest or a stored note is unreadable.
	ErrVaultCorrupted = errors.New("vault is corrupted or invalid")
	// ErrSessionExpired means the supplied session id is unknown or timed out.
	ErrSessionExpired = errors.New("session expired")
	// ErrNoteNotFound means no note with the given id exists.
	ErrNoteNotFound = errors.New("note not found")
	// ErrFolderExists means the folder path is already registered.
	ErrFolderExists = errors.New("folder already exists")
	// ErrInvalidPath means the folder path normalizes to nothing.
	ErrInvalidPath = errors.New("invalid folder path")
	// ErrInvalidTitle means the note title is blank or too long.
	ErrInvalidTitle = errors.New("invalid note title")
)

// CreateNoteParams carries the caller-supplied fields of a new note.
type CreateNoteParams struct {
	Title      string
	Content    string
	Tags       []string
	FolderPath string
	Type       models.NoteType
}

// Store is the persistence collaborator. All calls are synchronous from the
// caller's perspective but may block on I/O; the context lets callers impose
// their own timeout policy (the core applies none).
type Store interface {
	// ListNotes returns metadata for every note in the vault.
	ListNotes(ctx context.Context, session string) ([]models.NoteMetadata, error)

	// ListFolders returns the flat registry of explicitly created folder
	// paths. Paths implied only by a note's folder field do not appear.
	ListFolders(ctx context.Context, session string) ([]string, error)

	// CreateFolder registers a folder path. It fails with ErrFolderExists
	// when the path is already registered and ErrInvalidPath when the path
	// normalizes to nothing.
	CreateFolder(ctx context.Context, session, path string) error

	// DeleteFolder removes a registered folder path. It returns false when
	// the folder is non-empty or not registered.
	DeleteFolder(ctx context.Context, session, path string) (bool, error)

	// DeleteNote removes a note. It returns false when no such note exists.
	DeleteNote(ctx context.Context, session, id string) (bool, error)

	// MoveNote re-homes a note. A nil newFolder clears the note's folder
	// field, placing it at the vault root. Returns false when no such note
	// exists.
	MoveNote(ctx context.Context, session, id string, newFolder *string) (bool, error)

	// MoveFolder renames oldPath to newPath, rewriting every registered
	// descendant path and every contained note's folder field. Returns false
	// when oldPath is not registered or newPath is already taken.
	MoveFolder(ctx context.Context, session, oldPath, newPath string) (bool, error)

	// RenameFolder replaces the final path segment of path with newName and
	// delegates to MoveFolder.
	RenameFolder(ctx context.Context, session, path, newName string) (bool, error)
}

// NoteStore extends Store with full note CRUD. The tree core needs only
// Store; the CLI and TUI use the wider interface.
type NoteStore interface {
	Store

	CreateNote(ctx context.Context, session string, params CreateNoteParams) (*models.Note, error)
	LoadNote(ctx context.Context, session, id string) (*models.Note, error)
	SaveNote(ctx context.Context, session string, note *models.Note) error
}
