// Package filestore persists a vault on disk the way the flat storage model
// demands: every note is a single markdown file with YAML frontmatter in a
// flat notes/ directory, and the folder registry is a JSON manifest of path
// strings. Folders have no on-disk presence beyond that list; the hierarchy
// shown to the user is rebuilt from these two flat collections.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/common-gull/cocobolo-core/pkg/models"
	"github.com/common-gull/cocobolo-core/pkg/paths"
	"github.com/common-gull/cocobolo-core/pkg/vault"
)

const (
	manifestFile = ".cocobolo_vault"
	registryFile = "folders.json"
	notesDir     = "notes"

	sessionTimeout = 30 * time.Minute
	previewLength  = 120
	maxTitleLength = 200
)

// VaultInfo is the on-disk vault manifest.
type VaultInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Version   string    `json:"version"`
}

// folderRegistry is the on-disk flat set of known folder paths.
type folderRegistry struct {
	Version int      `json:"version"`
	Folders []string `json:"folders"`
}

// Store is a file-backed vault.Store rooted at a vault directory.
type Store struct {
	root string

	mu       sync.Mutex
	sessions map[string]time.Time // session id -> last access
}

var _ vault.NoteStore = (*Store)(nil)

// New returns a store for the vault at root. The vault need not exist yet;
// call Init to create one or Open to start a session against an existing one.
func New(root string) *Store {
	return &Store{
		root:     root,
		sessions: make(map[string]time.Time),
	}
}

// Root returns the vault directory.
func (s *Store) Root() string {
	return s.root
}

// Exists reports whether a vault manifest is present at the store's root.
func (s *Store) Exists() bool {
	_, err := os.Stat(filepath.Join(s.root, manifestFile))
	return err == nil
}

// Init creates a new vault: manifest, empty folder registry, and notes
// directory. It fails with ErrVaultExists when a manifest is already present.
func (s *Store) Init(name string) (*VaultInfo, error) {
	if s.Exists() {
		return nil, fmt.Errorf("%s: %w", s.root, vault.ErrVaultExists)
	}
	if err := os.MkdirAll(filepath.Join(s.root, notesDir), 0755); err != nil {
		return nil, fmt.Errorf("create vault directories: %w", err)
	}

	info := &VaultInfo{Name: name, CreatedAt: time.Now().UTC(), Version: "1.0.0"}
	if err := writeJSON(filepath.Join(s.root, manifestFile), info); err != nil {
		return nil, fmt.Errorf("write vault manifest: %w", err)
	}
	if err := s.writeRegistry(&folderRegistry{Version: 1, Folders: []string{}}); err != nil {
		return nil, err
	}
	return info, nil
}

// Info loads the vault manifest.
func (s *Store) Info() (*VaultInfo, error) {
	if !s.Exists() {
		return nil, fmt.Errorf("%s: %w", s.root, vault.ErrVaultNotFound)
	}
	var info VaultInfo
	if err := readJSON(filepath.Join(s.root, manifestFile), &info); err != nil {
		return nil, fmt.Errorf("%s: %w", s.root, vault.ErrVaultCorrupted)
	}
	return &info, nil
}

// Open verifies the vault and issues a session id. Sessions expire after 30
// minutes of inactivity; any store call refreshes the clock.
func (s *Store) Open() (string, error) {
	if _, err := s.Info(); err != nil {
		return "", err
	}
	session := uuid.NewString()
	s.mu.Lock()
	s.sessions[session] = time.Now()
	s.mu.Unlock()
	return session, nil
}

// Close ends a session. It reports whether the session was active.
func (s *Store) Close(session string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[session]
	delete(s.sessions, session)
	return ok
}

func (s *Store) checkSession(session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.sessions[session]
	if !ok {
		return vault.ErrSessionExpired
	}
	if time.Since(last) > sessionTimeout {
		delete(s.sessions, session)
		return vault.ErrSessionExpired
	}
	s.sessions[session] = time.Now()
	return nil
}

// ListNotes reads every note file in the flat notes directory. Files that do
// not parse are skipped rather than failing the whole listing.
func (s *Store) ListNotes(ctx context.Context, session string) ([]models.NoteMetadata, error) {
	if err := s.checkSession(session); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, notesDir))
	if err != nil {
		return nil, fmt.Errorf("read notes directory: %w", err)
	}

	notes := make([]models.NoteMetadata, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		note, err := s.readNote(strings.TrimSuffix(entry.Name(), ".md"))
		if err != nil {
			continue
		}
		notes = append(notes, note.Metadata(previewLength))
	}
	return notes, nil
}

// ListFolders returns the registered folder paths, sorted for stable output.
func (s *Store) ListFolders(ctx context.Context, session string) ([]string, error) {
	if err := s.checkSession(session); err != nil {
		return nil, err
	}
	reg, err := s.readRegistry()
	if err != nil {
		return nil, err
	}
	folders := append([]string(nil), reg.Folders...)
	sort.Strings(folders)
	return folders, nil
}

func (s *Store) CreateFolder(ctx context.Context, session, path string) error {
	if err := s.checkSession(session); err != nil {
		return err
	}
	normalized := paths.Normalize(path)
	if normalized == "" {
		return fmt.Errorf("%q: %w", path, vault.ErrInvalidPath)
	}
	reg, err := s.readRegistry()
	if err != nil {
		return err
	}
	for _, f := range reg.Folders {
		if f == normalized {
			return fmt.Errorf("%q: %w", normalized, vault.ErrFolderExists)
		}
	}
	reg.Folders = append(reg.Folders, normalized)
	return s.writeRegistry(reg)
}

// DeleteFolder removes a registered folder path. A folder holding any note
// or any registered subfolder is not deleted; that is reported as false, a
// business outcome, not an error.
func (s *Store) DeleteFolder(ctx context.Context, session, path string) (bool, error) {
	if err := s.checkSession(session); err != nil {
		return false, err
	}
	normalized := paths.Normalize(path)
	reg, err := s.readRegistry()
	if err != nil {
		return false, err
	}

	found := false
	for _, f := range reg.Folders {
		if f == normalized {
			found = true
		} else if paths.IsSelfOrDescendant(normalized, f) {
			return false, nil // has registered subfolders
		}
	}
	if !found {
		return false, nil
	}

	notes, err := s.ListNotes(ctx, session)
	if err != nil {
		return false, err
	}
	for _, n := range notes {
		if paths.IsSelfOrDescendant(normalized, paths.Normalize(n.FolderPath)) {
			return false, nil // folder is not empty
		}
	}

	kept := reg.Folders[:0]
	for _, f := range reg.Folders {
		if f != normalized {
			kept = append(kept, f)
		}
	}
	reg.Folders = kept
	if err := s.writeRegistry(reg); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) DeleteNote(ctx context.Context, session, id string) (bool, error) {
	if err := s.checkSession(session); err != nil {
		return false, err
	}
	err := os.Remove(s.notePath(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete note %s: %w", id, err)
	}
	return true, nil
}

// MoveNote re-homes a note by rewriting its folder frontmatter field. A nil
// newFolder clears the field, placing the note at the vault root. The
// destination folder is not required to be registered; the tree builder
// materializes it on the next build.
func (s *Store) MoveNote(ctx context.Context, session, id string, newFolder *string) (bool, error) {
	if err := s.checkSession(session); err != nil {
		return false, err
	}
	note, err := s.readNote(id)
	if err != nil {
		return false, nil
	}
	if newFolder == nil {
		note.FolderPath = ""
	} else {
		note.FolderPath = paths.Normalize(*newFolder)
	}
	note.UpdatedAt = time.Now().UTC()
	if err := s.writeNote(note); err != nil {
		return false, err
	}
	return true, nil
}

// MoveFolder renames oldPath to newPath and cascades: every registered
// descendant path and every contained note's folder field is re-prefixed.
// Conflicting or cyclic targets are reported as false.
func (s *Store) MoveFolder(ctx context.Context, session, oldPath, newPath string) (bool, error) {
	if err := s.checkSession(session); err != nil {
		return false, err
	}
	oldPath = paths.Normalize(oldPath)
	newPath = paths.Normalize(newPath)
	if oldPath == "" || newPath == "" || oldPath == newPath {
		return false, nil
	}
	if paths.IsSelfOrDescendant(oldPath, newPath) {
		return false, nil
	}

	reg, err := s.readRegistry()
	if err != nil {
		return false, err
	}
	found := false
	for _, f := range reg.Folders {
		if f == oldPath {
			found = true
		}
		if f == newPath {
			return false, nil // destination already registered
		}
	}
	if !found {
		return false, nil
	}

	for i, f := range reg.Folders {
		if rewritten, ok := rebase(f, oldPath, newPath); ok {
			reg.Folders[i] = rewritten
		}
	}
	if err := s.writeRegistry(reg); err != nil {
		return false, err
	}

	notes, err := s.ListNotes(ctx, session)
	if err != nil {
		return false, err
	}
	for _, meta := range notes {
		folder := paths.Normalize(meta.FolderPath)
		rewritten, ok := rebase(folder, oldPath, newPath)
		if !ok {
			continue
		}
		note, err := s.readNote(meta.ID)
		if err != nil {
			continue
		}
		note.FolderPath = rewritten
		if err := s.writeNote(note); err != nil {
			return false, err
		}
	}
	return true, nil
}

// RenameFolder replaces the final segment of path with newName, exactly as a
// move to the same parent.
func (s *Store) RenameFolder(ctx context.Context, session, path, newName string) (bool, error) {
	normalized := paths.Normalize(path)
	newPath := paths.Join(paths.Parent(normalized), strings.TrimSpace(newName))
	return s.MoveFolder(ctx, session, normalized, newPath)
}

func (s *Store) CreateNote(ctx context.Context, session string, params vault.CreateNoteParams) (*models.Note, error) {
	if err := s.checkSession(session); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(params.Title)
	if title == "" || len(title) > maxTitleLength {
		return nil, fmt.Errorf("%q: %w", params.Title, vault.ErrInvalidTitle)
	}

	noteType := params.Type
	if noteType == "" {
		noteType = models.NoteTypeMarkdown
	}
	now := time.Now().UTC()
	note := &models.Note{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    params.Content,
		Tags:       normalizeTags(params.Tags),
		FolderPath: paths.Normalize(params.FolderPath),
		Type:       noteType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.writeNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Store) LoadNote(ctx context.Context, session, id string) (*models.Note, error) {
	if err := s.checkSession(session); err != nil {
		return nil, err
	}
	note, err := s.readNote(id)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Store) SaveNote(ctx context.Context, session string, note *models.Note) error {
	if err := s.checkSession(session); err != nil {
		return err
	}
	if _, err := s.readNote(note.ID); err != nil {
		return err
	}
	title := strings.TrimSpace(note.Title)
	if title == "" || len(title) > maxTitleLength {
		return fmt.Errorf("%q: %w", note.Title, vault.ErrInvalidTitle)
	}
	note.Title = title
	note.FolderPath = paths.Normalize(note.FolderPath)
	note.UpdatedAt = time.Now().UTC()
	return s.writeNote(note)
}

// rebase rewrites path when it is oldPrefix or below it. ok is false when the
// path is unrelated to oldPrefix.
func rebase(path, oldPrefix, newPrefix string) (string, bool) {
	if path == oldPrefix {
		return newPrefix, true
	}
	if strings.HasPrefix(path, oldPrefix+paths.Separator) {
		return newPrefix + strings.TrimPrefix(path, oldPrefix), true
	}
	return "", false
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (s *Store) notePath(id string) string {
	return filepath.Join(s.root, notesDir, id+".md")
}

func (s *Store) readNote(id string) (*models.Note, error) {
	content, err := os.ReadFile(s.notePath(id))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", id, vault.ErrNoteNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read note %s: %w", id, err)
	}

	fm, body, err := parseFrontmatter(string(content))
	if err != nil || fm == nil {
		return nil, fmt.Errorf("note %s: %w", id, vault.ErrVaultCorrupted)
	}

	note := &models.Note{
		ID:         fm.ID,
		Title:      fm.Title,
		Content:    body,
		Tags:       fm.Tags,
		FolderPath: paths.Normalize(fm.Folder),
		Type:       models.NoteType(fm.Type),
	}
	if note.ID == "" {
		note.ID = id
	}
	if t, err := parseTimestamp(fm.Created); err == nil {
		note.CreatedAt = t
	}
	if t, err := parseTimestamp(fm.Modified); err == nil {
		note.UpdatedAt = t
	}
	return note, nil
}

func (s *Store) writeNote(note *models.Note) error {
	fm := &frontmatter{
		ID:       note.ID,
		Title:    note.Title,
		Tags:     note.Tags,
		Folder:   note.FolderPath,
		Type:     string(note.Type),
		Created:  formatTimestamp(note.CreatedAt),
		Modified: formatTimestamp(note.UpdatedAt),
	}
	doc := buildDocument(fm, note.Content)
	if err := os.WriteFile(s.notePath(note.ID), []byte(doc), 0644); err != nil {
		return fmt.Errorf("write note %s: %w", note.ID, err)
	}
	return nil
}

func (s *Store) readRegistry() (*folderRegistry, error) {
	var reg folderRegistry
	if err := readJSON(filepath.Join(s.root, registryFile), &reg); err != nil {
		if os.IsNotExist(err) {
			return &folderRegistry{Version: 1, Folders: []string{}}, nil
		}
		return nil, fmt.Errorf("read folder registry: %w", err)
	}
	if reg.Folders == nil {
		reg.Folders = []string{}
	}
	return &reg, nil
}

func (s *Store) writeRegistry(reg *folderRegistry) error {
	if err := writeJSON(filepath.Join(s.root, registryFile), reg); err != nil {
		return fmt.Errorf("write folder registry: %w", err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
