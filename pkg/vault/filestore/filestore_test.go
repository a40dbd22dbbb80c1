package filestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-gull/cocobolo-core/pkg/vault"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	s := New(t.TempDir())
	_, err := s.Init("test vault")
	require.NoError(t, err)
	session, err := s.Open()
	require.NoError(t, err)
	return s, session
}

func TestInitAndOpen(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	assert.False(t, s.Exists())

	info, err := s.Init("my vault")
	require.NoError(t, err)
	assert.Equal(t, "my vault", info.Name)
	assert.True(t, s.Exists())

	_, err = s.Init("again")
	assert.ErrorIs(t, err, vault.ErrVaultExists)

	session, err := s.Open()
	require.NoError(t, err)
	assert.NotEmpty(t, session)

	loaded, err := s.Info()
	require.NoError(t, err)
	assert.Equal(t, "my vault", loaded.Name)
}

func TestOpenMissingVault(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Open()
	assert.ErrorIs(t, err, vault.ErrVaultNotFound)
}

func TestSessionValidation(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	_, err := s.ListNotes(ctx, "bogus-session")
	assert.ErrorIs(t, err, vault.ErrSessionExpired)

	require.True(t, s.Close(session))
	_, err = s.ListNotes(ctx, session)
	assert.ErrorIs(t, err, vault.ErrSessionExpired)
}

func TestNoteRoundTrip(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateNote(ctx, session, vault.CreateNoteParams{
		Title:      "Meeting notes",
		Content:    "# Agenda\n\nDiscuss the roadmap.",
		Tags:       []string{"work", "meetings", "work"},
		FolderPath: "work/meetings",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"work", "meetings"}, created.Tags, "tags are deduplicated")

	loaded, err := s.LoadNote(ctx, session, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meeting notes", loaded.Title)
	assert.Equal(t, "work/meetings", loaded.FolderPath)
	assert.Contains(t, loaded.Content, "Discuss the roadmap.")

	list, err := s.ListNotes(ctx, session)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Contains(t, list[0].ContentPreview, "# Agenda")
}

func TestCreateNoteRejectsBlankTitle(t *testing.T) {
	s, session := newTestStore(t)
	_, err := s.CreateNote(context.Background(), session, vault.CreateNoteParams{Title: "   "})
	assert.ErrorIs(t, err, vault.ErrInvalidTitle)
}

func TestFolderRegistry(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateFolder(ctx, session, "work"))
	require.NoError(t, s.CreateFolder(ctx, session, "work/sub"))

	err := s.CreateFolder(ctx, session, "/work/")
	assert.ErrorIs(t, err, vault.ErrFolderExists, "paths are normalized before comparison")

	err = s.CreateFolder(ctx, session, "///")
	assert.ErrorIs(t, err, vault.ErrInvalidPath)

	folders, err := s.ListFolders(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "work/sub"}, folders)
}

func TestDeleteFolder(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateFolder(ctx, session, "work"))
	require.NoError(t, s.CreateFolder(ctx, session, "work/sub"))

	ok, err := s.DeleteFolder(ctx, session, "work")
	require.NoError(t, err)
	assert.False(t, ok, "folder with registered subfolders is not deleted")

	ok, err = s.DeleteFolder(ctx, session, "work/sub")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.CreateNote(ctx, session, vault.CreateNoteParams{Title: "n", FolderPath: "work"})
	require.NoError(t, err)
	ok, err = s.DeleteFolder(ctx, session, "work")
	require.NoError(t, err)
	assert.False(t, ok, "folder holding a note is not deleted")

	ok, err = s.DeleteFolder(ctx, session, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMoveNote(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateNote(ctx, session, vault.CreateNoteParams{Title: "n1", FolderPath: "work"})
	require.NoError(t, err)

	dest := "personal"
	ok, err := s.MoveNote(ctx, session, created.ID, &dest)
	require.NoError(t, err)
	require.True(t, ok)

	loaded, err := s.LoadNote(ctx, session, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "personal", loaded.FolderPath)

	// nil destination clears the folder field entirely.
	ok, err = s.MoveNote(ctx, session, created.ID, nil)
	require.NoError(t, err)
	require.True(t, ok)
	loaded, err = s.LoadNote(ctx, session, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "", loaded.FolderPath)

	ok, err = s.MoveNote(ctx, session, "missing", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMoveFolderCascades(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateFolder(ctx, session, "work"))
	require.NoError(t, s.CreateFolder(ctx, session, "work/sub"))
	require.NoError(t, s.CreateFolder(ctx, session, "other"))

	inWork, err := s.CreateNote(ctx, session, vault.CreateNoteParams{Title: "a", FolderPath: "work"})
	require.NoError(t, err)
	inSub, err := s.CreateNote(ctx, session, vault.CreateNoteParams{Title: "b", FolderPath: "work/sub"})
	require.NoError(t, err)
	outside, err := s.CreateNote(ctx, session, vault.CreateNoteParams{Title: "c", FolderPath: "workshop"})
	require.NoError(t, err)

	ok, err := s.MoveFolder(ctx, session, "work", "other/work")
	require.NoError(t, err)
	require.True(t, ok)

	folders, err := s.ListFolders(ctx, session)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"other", "other/work", "other/work/sub"}, folders)

	for id, want := range map[string]string{
		inWork.ID:  "other/work",
		inSub.ID:   "other/work/sub",
		outside.ID: "workshop",
	} {
		n, err := s.LoadNote(ctx, session, id)
		require.NoError(t, err)
		assert.Equal(t, want, n.FolderPath)
	}
}

func TestMoveFolderRejections(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateFolder(ctx, session, "work"))
	require.NoError(t, s.CreateFolder(ctx, session, "other"))

	ok, err := s.MoveFolder(ctx, session, "work", "work/sub/work")
	require.NoError(t, err)
	assert.False(t, ok, "cyclic target is refused server-side too")

	ok, err = s.MoveFolder(ctx, session, "work", "other")
	require.NoError(t, err)
	assert.False(t, ok, "destination already registered")

	ok, err = s.MoveFolder(ctx, session, "ghost", "elsewhere")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenameFolder(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateFolder(ctx, session, "work"))
	require.NoError(t, s.CreateFolder(ctx, session, "work/sub"))

	ok, err := s.RenameFolder(ctx, session, "work/sub", "docs")
	require.NoError(t, err)
	require.True(t, ok)

	folders, err := s.ListFolders(ctx, session)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"work", "work/docs"}, folders)
}

func TestDeleteNote(t *testing.T) {
	s, session := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateNote(ctx, session, vault.CreateNoteParams{Title: "n"})
	require.NoError(t, err)

	ok, err := s.DeleteNote(ctx, session, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteNote(ctx, session, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
