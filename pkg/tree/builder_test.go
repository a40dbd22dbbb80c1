package tree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-gull/cocobolo-core/pkg/models"
)

func note(id, title, folder string, updated time.Time) models.NoteMetadata {
	return models.NoteMetadata{
		ID:         id,
		Title:      title,
		FolderPath: folder,
		UpdatedAt:  updated,
	}
}

func TestBuildScenario(t *testing.T) {
	notes := []models.NoteMetadata{note("n1", "First", "work", time.Now())}
	folders := []string{"work", "work/sub"}

	root := Build(notes, folders, nil, SortByTitle)

	require.Len(t, root.Children, 1)
	work := root.Children[0]
	assert.Equal(t, "work", work.Path)
	assert.Equal(t, "work", work.Name)
	require.Len(t, work.Children, 1)
	sub := work.Children[0]
	assert.Equal(t, "work/sub", sub.Path)
	assert.Equal(t, "sub", sub.Name)
	assert.Empty(t, sub.Notes)

	require.Len(t, work.Notes, 1)
	assert.Equal(t, "n1", work.Notes[0].ID)
	assert.Equal(t, 1, work.TotalCount)
	assert.Equal(t, 0, sub.TotalCount)
	assert.Equal(t, 1, root.TotalCount)
}

func TestBuildDeterministicAcrossPermutations(t *testing.T) {
	now := time.Now()
	notes := []models.NoteMetadata{
		note("n1", "alpha", "work", now),
		note("n2", "beta", "work/sub", now),
		note("n3", "gamma", "", now),
		note("n4", "alpha", "work", now.Add(time.Minute)),
	}
	folders := []string{"work", "work/sub", "personal", "Archive"}

	base := Build(notes, folders, nil, SortByTitle)

	permNotes := []models.NoteMetadata{notes[3], notes[1], notes[0], notes[2]}
	permFolders := []string{"Archive", "work/sub", "personal", "work"}
	other := Build(permNotes, permFolders, nil, SortByTitle)

	var basePaths, otherPaths []string
	base.Walk(func(n *FolderNode) bool {
		basePaths = append(basePaths, n.Path)
		for _, nt := range n.Notes {
			basePaths = append(basePaths, n.Path+"#"+nt.ID)
		}
		return true
	})
	other.Walk(func(n *FolderNode) bool {
		otherPaths = append(otherPaths, n.Path)
		for _, nt := range n.Notes {
			otherPaths = append(otherPaths, n.Path+"#"+nt.ID)
		}
		return true
	})
	assert.Equal(t, basePaths, otherPaths)
}

func TestBuildCaseInsensitiveSiblingOrder(t *testing.T) {
	root := Build(nil, []string{"zebra", "Apple", "mango"}, nil, SortByTitle)
	names := make([]string, 0, 3)
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Apple", "mango", "zebra"}, names)
}

func TestBuildOrphanFolderMaterialization(t *testing.T) {
	notes := []models.NoteMetadata{note("n1", "deep", "lost/deep", time.Now())}
	folders := []string{"work"}

	first := Build(notes, folders, nil, SortByTitle)
	second := Build(notes, folders, nil, SortByTitle)

	for _, root := range []*FolderNode{first, second} {
		lost := root.Find("lost")
		require.NotNil(t, lost, "orphan intermediate must be materialized")
		deep := root.Find("lost/deep")
		require.NotNil(t, deep)
		require.Len(t, deep.Notes, 1)
		assert.Equal(t, 1, lost.TotalCount)
	}

	// The registry input is never touched.
	assert.Equal(t, []string{"work"}, folders)

	// Once no note references the orphan, it disappears from the next build.
	rebuilt := Build(nil, folders, nil, SortByTitle)
	assert.Nil(t, rebuilt.Find("lost"))
}

func TestBuildCountInvariant(t *testing.T) {
	now := time.Now()
	notes := []models.NoteMetadata{
		note("n1", "a", "", now),
		note("n2", "b", "x", now),
		note("n3", "c", "x/y", now),
		note("n4", "d", "x/y", now),
		note("n5", "e", "z", now),
	}
	root := Build(notes, []string{"x", "x/y", "z", "empty"}, nil, SortByTitle)

	ok := root.Walk(func(n *FolderNode) bool {
		sum := len(n.Notes)
		for _, c := range n.Children {
			sum += c.TotalCount
		}
		return sum == n.TotalCount
	})
	assert.True(t, ok, "every node must satisfy the count invariant")
	assert.Equal(t, 5, root.TotalCount)
}

func TestBuildExpansionState(t *testing.T) {
	root := Build(nil, []string{"a", "a/b", "c"}, map[string]bool{"a": true}, SortByTitle)

	assert.True(t, root.Expanded, "root is always expanded")
	a := root.Find("a")
	require.NotNil(t, a)
	assert.True(t, a.Expanded)
	assert.False(t, root.Find("a/b").Expanded)
	assert.False(t, root.Find("c").Expanded)
}

func TestBuildSortByRecency(t *testing.T) {
	now := time.Now()
	notes := []models.NoteMetadata{
		note("n1", "old", "", now.Add(-time.Hour)),
		note("n2", "new", "", now),
		note("n3", "tie-b", "", now.Add(-time.Minute)),
		note("n4", "tie-a", "", now.Add(-time.Minute)),
	}
	root := Build(notes, nil, nil, SortByRecency)

	ids := make([]string, 0, 4)
	for _, n := range root.Notes {
		ids = append(ids, n.ID)
	}
	// Newest first; equal timestamps tie-break on id.
	assert.Equal(t, []string{"n2", "n3", "n4", "n1"}, ids)
}

func TestBuildNormalizesStrayPaths(t *testing.T) {
	notes := []models.NoteMetadata{note("n1", "a", "/work/", time.Now())}
	root := Build(notes, []string{"work"}, nil, SortByTitle)

	require.Len(t, root.Children, 1)
	work := root.Children[0]
	assert.Equal(t, "work", work.Path)
	require.Len(t, work.Notes, 1)
}
