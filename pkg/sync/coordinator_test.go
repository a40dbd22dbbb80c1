package sync

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-gull/cocobolo-core/pkg/drag"
	"github.com/common-gull/cocobolo-core/pkg/models"
	"github.com/common-gull/cocobolo-core/pkg/move"
	"github.com/common-gull/cocobolo-core/pkg/vault"
)

// mockStore records every call so tests can assert that rejected operations
// never reach the collaborator.
type mockStore struct {
	notes   []models.NoteMetadata
	folders []string

	calls []string

	moveNoteOK   bool
	moveFolderOK bool
	deleteOK     bool
	failWith     error
}

func newMockStore() *mockStore {
	return &mockStore{moveNoteOK: true, moveFolderOK: true, deleteOK: true}
}

func (m *mockStore) record(call string) { m.calls = append(m.calls, call) }

func (m *mockStore) ListNotes(ctx context.Context, session string) ([]models.NoteMetadata, error) {
	m.record("ListNotes")
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.notes, nil
}

func (m *mockStore) ListFolders(ctx context.Context, session string) ([]string, error) {
	m.record("ListFolders")
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.folders, nil
}

func (m *mockStore) CreateFolder(ctx context.Context, session, path string) error {
	m.record("CreateFolder:" + path)
	return m.failWith
}

func (m *mockStore) DeleteFolder(ctx context.Context, session, path string) (bool, error) {
	m.record("DeleteFolder:" + path)
	return m.deleteOK, m.failWith
}

func (m *mockStore) DeleteNote(ctx context.Context, session, id string) (bool, error) {
	m.record("DeleteNote:" + id)
	return m.deleteOK, m.failWith
}

func (m *mockStore) MoveNote(ctx context.Context, session, id string, newFolder *string) (bool, error) {
	dest := "<root>"
	if newFolder != nil {
		dest = *newFolder
	}
	m.record("MoveNote:" + id + "->" + dest)
	return m.moveNoteOK, m.failWith
}

func (m *mockStore) MoveFolder(ctx context.Context, session, oldPath, newPath string) (bool, error) {
	m.record("MoveFolder:" + oldPath + "->" + newPath)
	return m.moveFolderOK, m.failWith
}

func (m *mockStore) RenameFolder(ctx context.Context, session, path, newName string) (bool, error) {
	m.record("RenameFolder:" + path + "->" + newName)
	return m.moveFolderOK, m.failWith
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestCoordinator(store *mockStore) *Coordinator {
	return New(store, "session", quietLogger())
}

func kindOf(t *testing.T, err error) FailureKind {
	t.Helper()
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	return opErr.Kind
}

func TestRefreshAndTree(t *testing.T) {
	store := newMockStore()
	store.notes = []models.NoteMetadata{{ID: "n1", Title: "First", FolderPath: "work", UpdatedAt: time.Now()}}
	store.folders = []string{"work", "work/sub"}
	c := newTestCoordinator(store)

	require.NoError(t, c.Refresh(context.Background()))

	root := c.Tree()
	require.Len(t, root.Children, 1)
	assert.Equal(t, "work", root.Children[0].Path)
	assert.Equal(t, 1, root.Children[0].TotalCount)
}

func TestDropNoteOnRootInvokesMoveWithAbsentPath(t *testing.T) {
	store := newMockStore()
	c := newTestCoordinator(store)

	session := drag.NewSession()
	require.True(t, session.Start(drag.NoteSource("n1")))
	session.HoverOver(move.Root())
	op, ok, err := session.Drop()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Apply(context.Background(), op))
	session.Settle()

	assert.Contains(t, store.calls, "MoveNote:n1-><root>", "root drop passes an absent path, not \"\"")
}

func TestCyclicFolderDropNeverReachesStore(t *testing.T) {
	store := newMockStore()
	c := newTestCoordinator(store)

	session := drag.NewSession()
	require.True(t, session.Start(drag.FolderSource("work")))
	session.HoverOver(move.Folder("work/sub"))
	_, ok, err := session.Drop()
	assert.False(t, ok)
	assert.ErrorIs(t, err, move.ErrCyclicMove)

	assert.Empty(t, store.calls, "collaborator receives zero invocations")
	_ = c // coordinator untouched by construction
}

func TestMoveFolderValidationShortCircuits(t *testing.T) {
	store := newMockStore()
	c := newTestCoordinator(store)

	err := c.MoveFolder(context.Background(), "work", move.Folder("work/sub"))
	assert.Equal(t, FailureValidation, kindOf(t, err))
	assert.ErrorIs(t, err, move.ErrCyclicMove)
	assert.Empty(t, store.calls)
}

func TestMoveFolderSuccessRefreshesAndExpands(t *testing.T) {
	store := newMockStore()
	store.folders = []string{"other", "other/work"}
	c := newTestCoordinator(store)

	require.NoError(t, c.MoveFolder(context.Background(), "work", move.Folder("other")))

	assert.Contains(t, store.calls, "MoveFolder:work->other/work")
	assert.Contains(t, store.calls, "ListNotes")
	assert.Contains(t, store.calls, "ListFolders")
	assert.True(t, c.IsExpanded("other"), "destination is expanded so the moved folder is visible")
}

func TestBusinessRejectionLeavesStateUntouched(t *testing.T) {
	store := newMockStore()
	store.notes = []models.NoteMetadata{{ID: "n1", Title: "a", FolderPath: "work"}}
	store.folders = []string{"work"}
	c := newTestCoordinator(store)
	require.NoError(t, c.Refresh(context.Background()))

	store.deleteOK = false
	store.calls = nil
	err := c.DeleteFolder(context.Background(), "work")
	assert.Equal(t, FailureRejected, kindOf(t, err))

	assert.Equal(t, []string{"DeleteFolder:work"}, store.calls, "no reload after a rejection")
	assert.Equal(t, []string{"work"}, c.Folders())
	assert.Len(t, c.Notes(), 1)
}

func TestTransportFailureLeavesStateUntouched(t *testing.T) {
	store := newMockStore()
	store.notes = []models.NoteMetadata{{ID: "n1", Title: "a"}}
	c := newTestCoordinator(store)
	require.NoError(t, c.Refresh(context.Background()))

	store.failWith = errors.New("backend unreachable")
	err := c.MoveNote(context.Background(), "n1", move.Folder("work"))
	assert.Equal(t, FailureTransport, kindOf(t, err))
	assert.Len(t, c.Notes(), 1, "previously loaded lists survive the failure")
}

func TestRenameNoOpIsSilentCancel(t *testing.T) {
	store := newMockStore()
	c := newTestCoordinator(store)

	require.NoError(t, c.RenameFolder(context.Background(), "work", "work"))
	require.NoError(t, c.RenameFolder(context.Background(), "work", "   "))
	assert.Empty(t, store.calls, "no remote call for a cancelled rename")
}

func TestRenameRebasesExpansion(t *testing.T) {
	store := newMockStore()
	c := newTestCoordinator(store)
	c.SetExpanded("work", true)
	c.SetExpanded("work/sub", true)
	c.SetExpanded("other", true)

	require.NoError(t, c.RenameFolder(context.Background(), "work", "projects"))

	assert.Contains(t, store.calls, "RenameFolder:work->projects")
	assert.True(t, c.IsExpanded("projects"))
	assert.True(t, c.IsExpanded("projects/sub"))
	assert.True(t, c.IsExpanded("other"))
	assert.False(t, c.IsExpanded("work"))
}

func TestCreateFolderExpandsParent(t *testing.T) {
	store := newMockStore()
	c := newTestCoordinator(store)

	require.NoError(t, c.CreateFolder(context.Background(), "work/sub"))
	assert.True(t, c.IsExpanded("work"))
	assert.Contains(t, store.calls, "CreateFolder:work/sub")
}

func TestCreateFolderExistsIsRejection(t *testing.T) {
	store := newMockStore()
	store.failWith = vault.ErrFolderExists
	c := newTestCoordinator(store)

	err := c.CreateFolder(context.Background(), "work")
	assert.Equal(t, FailureRejected, kindOf(t, err))
}

func TestDeleteNoteRefreshes(t *testing.T) {
	store := newMockStore()
	c := newTestCoordinator(store)

	require.NoError(t, c.DeleteNote(context.Background(), "n1"))
	assert.Contains(t, store.calls, "DeleteNote:n1")
	assert.Contains(t, store.calls, "ListNotes")
}
