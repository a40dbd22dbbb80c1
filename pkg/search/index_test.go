package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-gull/cocobolo-core/pkg/models"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func sampleNotes() []models.NoteMetadata {
	now := time.Now()
	return []models.NoteMetadata{
		{
			ID:             "n1",
			Title:          "Quarterly planning",
			Tags:           []string{"work"},
			FolderPath:     "work",
			Type:           models.NoteTypeMarkdown,
			ContentPreview: "Goals for the quarter",
			CreatedAt:      now.Add(-2 * time.Hour),
			UpdatedAt:      now.Add(-2 * time.Hour),
		},
		{
			ID:             "n2",
			Title:          "Grocery list",
			Tags:           []string{"home"},
			Type:           models.NoteTypeText,
			ContentPreview: "Milk, eggs, coffee",
			CreatedAt:      now.Add(-time.Hour),
			UpdatedAt:      now.Add(-time.Hour),
		},
		{
			ID:             "n3",
			Title:          "Planning retro",
			Tags:           []string{"work", "meetings"},
			FolderPath:     "work/meetings",
			Type:           models.NoteTypeMarkdown,
			ContentPreview: "What went well",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func TestSearchByTitle(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(sampleNotes()))

	results, err := idx.Search("planning", nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []string{results[0].ID, results[1].ID}
	assert.ElementsMatch(t, []string{"n1", "n3"}, ids)
}

func TestSearchByTag(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(sampleNotes()))

	results, err := idx.Search("meetings", nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "n3", results[0].ID)
}

func TestSearchFolderScope(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(sampleNotes()))

	// Scoping to "work" includes descendants like work/meetings.
	results, err := idx.Search("planning", &Options{Folder: "work"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = idx.Search("planning", &Options{Folder: "work/meetings"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "n3", results[0].ID)
}

func TestSearchNoMatches(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(sampleNotes()))

	results, err := idx.Search("nonexistent", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRebuildReplacesIndex(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(sampleNotes()))
	require.NoError(t, idx.Rebuild(sampleNotes()[:1]))

	results, err := idx.Search("grocery", nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = idx.Search("quarterly", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "n1", results[0].ID)
}

func TestSearchLimit(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(sampleNotes()))

	results, err := idx.Search("planning", &Options{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
