// Package search maintains a sqlite index over the vault's notes for title,
// tag, and content-preview queries. The index is derived data, rebuilt from
// the authoritative note listing after every refresh; it can be deleted at
// any time without losing anything.
package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/common-gull/cocobolo-core/pkg/models"
)

// Index manages the note search index.
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex opens (or creates) the index database at dbPath.
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close releases the underlying database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT,
		tags TEXT,
		folder TEXT,
		note_type TEXT,
		preview TEXT,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_notes_folder ON notes(folder);
	CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
	`
	if _, err := idx.db.Exec(schema); err != nil {
		return fmt.Errorf("create index schema: %w", err)
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			id UNINDEXED,
			title,
			tags,
			preview,
			tokenize = 'porter unicode61'
		);
		`
		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// FTS is an optimization; fall back to LIKE matching.
			idx.useFTS = false
		}
	}
	return nil
}

func (idx *Index) checkFTS5Support() bool {
	if _, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_probe USING fts5(content)"); err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_probe")
	return true
}

// Rebuild replaces the entire index with the given listing.
func (idx *Index) Rebuild(notes []models.NoteMetadata) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM notes"); err != nil {
		return err
	}
	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts"); err != nil {
			return err
		}
	}

	for _, note := range notes {
		tags := strings.Join(note.Tags, " ")
		_, err := tx.Exec(`
			INSERT INTO notes (id, title, tags, folder, note_type, preview, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, note.ID, note.Title, tags, note.FolderPath, string(note.Type),
			note.ContentPreview, note.CreatedAt, note.UpdatedAt)
		if err != nil {
			return err
		}
		if idx.useFTS {
			_, err := tx.Exec(`
				INSERT INTO notes_fts (id, title, tags, preview) VALUES (?, ?, ?, ?)
			`, note.ID, note.Title, tags, note.ContentPreview)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Options narrows a search.
type Options struct {
	Folder string // restrict to this folder and its descendants
	Limit  int
}

// Search returns metadata for notes matching the query, best match first.
func (idx *Index) Search(query string, opts *Options) ([]models.NoteMetadata, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchFTS(query, opts)
	}
	return idx.searchLike(query, opts)
}

func (idx *Index) searchFTS(query string, opts *Options) ([]models.NoteMetadata, error) {
	conditions := []string{"notes_fts MATCH ?"}
	args := []any{ftsQuery(query)}
	if opts.Folder != "" {
		conditions = append(conditions, "(n.folder = ? OR n.folder LIKE ?)")
		args = append(args, opts.Folder, opts.Folder+"/%")
	}
	args = append(args, opts.Limit)

	rows, err := idx.db.Query(fmt.Sprintf(`
		SELECT n.id, n.title, n.tags, n.folder, n.note_type, n.preview, n.created_at, n.updated_at
		FROM notes_fts f
		JOIN notes n ON n.id = f.id
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND ")), args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (idx *Index) searchLike(query string, opts *Options) ([]models.NoteMetadata, error) {
	pattern := "%" + query + "%"
	conditions := []string{"(title LIKE ? OR tags LIKE ? OR preview LIKE ?)"}
	args := []any{pattern, pattern, pattern}
	if opts.Folder != "" {
		conditions = append(conditions, "(folder = ? OR folder LIKE ?)")
		args = append(args, opts.Folder, opts.Folder+"/%")
	}
	args = append(args, opts.Limit)

	rows, err := idx.db.Query(fmt.Sprintf(`
		SELECT id, title, tags, folder, note_type, preview, created_at, updated_at
		FROM notes
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT ?
	`, strings.Join(conditions, " AND ")), args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

// ftsQuery quotes each term so user input cannot break the MATCH syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}

func scanNotes(rows *sql.Rows) ([]models.NoteMetadata, error) {
	var results []models.NoteMetadata
	for rows.Next() {
		var n models.NoteMetadata
		var tags, noteType string
		if err := rows.Scan(&n.ID, &n.Title, &tags, &n.FolderPath, &noteType,
			&n.ContentPreview, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		if tags != "" {
			n.Tags = strings.Fields(tags)
		}
		n.Type = models.NoteType(noteType)
		results = append(results, n)
	}
	return results, rows.Err()
}
