package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/common-gull/cocobolo-core/internal/tui/browser/components/confirm"
	"github.com/common-gull/cocobolo-core/pkg/drag"
	"github.com/common-gull/cocobolo-core/pkg/move"
	"github.com/common-gull/cocobolo-core/pkg/sync"
	"github.com/common-gull/cocobolo-core/pkg/tree"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case opResultMsg:
		m.busy = false
		m.session.Settle()
		if msg.err != nil {
			m.status = failureMessage(msg.err)
		} else {
			m.status = ""
			m.info = ""
		}
		m.rebuild()
		return m, nil

	case confirm.ConfirmedMsg:
		m.busy = true
		pending := m.pending
		m.pending = pendingDelete{}
		if pending.isFolder {
			return m, runOp(func(ctx context.Context) error {
				return m.coord.DeleteFolder(ctx, pending.path)
			})
		}
		return m, runOp(func(ctx context.Context) error {
			return m.coord.DeleteNote(ctx, pending.id)
		})

	case confirm.CancelledMsg:
		m.pending = pendingDelete{}
		return m, nil
	}

	if m.confirm.Active {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.mode != inputNone {
		return m.updateInput(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.busy {
		// An operation is resolving; only quit is honored.
		if key.Matches(keyMsg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(-m.viewportHeight())
		return m, nil

	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(m.viewportHeight())
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		if m.session.Active() {
			return m.dropHere()
		}
		return m.toggleCurrent()

	case key.Matches(keyMsg, m.keys.Collapse):
		return m.setCurrentExpanded(false)

	case key.Matches(keyMsg, m.keys.Expand):
		return m.setCurrentExpanded(true)

	case key.Matches(keyMsg, m.keys.Grab):
		return m.grabCurrent()

	case key.Matches(keyMsg, m.keys.Drop):
		return m.dropHere()

	case key.Matches(keyMsg, m.keys.CancelDrag):
		if m.session.Active() {
			m.session.Cancel()
			m.info = ""
			m.status = ""
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.NewFolder):
		return m.startNewFolder()

	case key.Matches(keyMsg, m.keys.Rename):
		return m.startRename()

	case key.Matches(keyMsg, m.keys.Delete):
		return m.startDelete()

	case key.Matches(keyMsg, m.keys.ToggleSort):
		if m.coord.SortOrder() == tree.SortByTitle {
			m.coord.SetSortOrder(tree.SortByRecency)
		} else {
			m.coord.SetSortOrder(tree.SortByTitle)
		}
		m.rebuild()
		return m, nil

	case key.Matches(keyMsg, m.keys.Refresh):
		m.busy = true
		return m, runOp(m.coord.Refresh)
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.clampScroll()
	m.updateHover()
}

// updateHover keeps the drag session's hover target in step with the cursor.
// Folder rows and the root row are drop targets; a note row is not.
func (m *Model) updateHover() {
	if !m.session.Active() {
		return
	}
	r, ok := m.currentRow()
	if !ok {
		m.session.ClearHover()
		return
	}
	switch r.kind {
	case rowRoot:
		m.session.HoverOver(move.Root())
	case rowFolder:
		m.session.HoverOver(move.Folder(r.folder.Path))
	default:
		m.session.ClearHover()
	}
}

func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.kind != rowFolder {
		return m, nil
	}
	m.coord.ToggleExpanded(r.folder.Path)
	m.rebuild()
	return m, nil
}

func (m Model) setCurrentExpanded(expanded bool) (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.kind != rowFolder {
		return m, nil
	}
	m.coord.SetExpanded(r.folder.Path, expanded)
	m.rebuild()
	return m, nil
}

func (m Model) grabCurrent() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	var started bool
	switch r.kind {
	case rowNote:
		started = m.session.Start(drag.NoteSource(r.note.ID))
		if started {
			m.info = fmt.Sprintf("Moving note %q — navigate to a folder and press p", r.note.Title)
		}
	case rowFolder:
		started = m.session.Start(drag.FolderSource(r.folder.Path))
		if started {
			m.info = fmt.Sprintf("Moving folder %q — navigate to a folder and press p", r.folder.Name)
		}
	}
	if started {
		m.status = ""
		m.updateHover()
	}
	return m, nil
}

func (m Model) dropHere() (tea.Model, tea.Cmd) {
	if !m.session.Active() {
		return m, nil
	}
	m.updateHover()
	op, ok, err := m.session.Drop()
	if err != nil {
		m.status = failureMessage(err)
		m.info = ""
		return m, nil
	}
	if !ok {
		m.info = ""
		return m, nil
	}
	m.busy = true
	return m, runOp(func(ctx context.Context) error {
		return m.coord.Apply(ctx, op)
	})
}

func (m Model) startNewFolder() (tea.Model, tea.Cmd) {
	parent := ""
	if r, ok := m.currentRow(); ok && r.kind == rowFolder {
		parent = r.folder.Path
	}
	m.parent = parent
	m.mode = inputNewFolder
	m.input.Placeholder = "folder name"
	m.input.SetValue("")
	m.input.Focus()
	return m, nil
}

func (m Model) startRename() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.kind != rowFolder {
		return m, nil
	}
	m.renames = r.folder.Path
	m.mode = inputRename
	m.input.Placeholder = "new name"
	m.input.SetValue(r.folder.Name)
	m.input.Focus()
	return m, nil
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	switch r.kind {
	case rowNote:
		m.pending = pendingDelete{id: r.note.ID}
		m.confirm.Activate(fmt.Sprintf("Delete note %q?", r.note.Title))
	case rowFolder:
		m.pending = pendingDelete{isFolder: true, path: r.folder.Path}
		m.confirm.Activate(fmt.Sprintf("Delete folder %q?", r.folder.Name))
	default:
		return m, nil
	}
	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch keyMsg.String() {
		case "esc":
			m.mode = inputNone
			m.input.Blur()
			return m, nil
		case "enter":
			value := m.input.Value()
			mode := m.mode
			m.mode = inputNone
			m.input.Blur()
			return m.submitInput(mode, value)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitInput(mode inputMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case inputRename:
		path := m.renames
		m.busy = true
		return m, runOp(func(ctx context.Context) error {
			return m.coord.RenameFolder(ctx, path, value)
		})
	case inputNewFolder:
		if value == "" {
			return m, nil
		}
		path := value
		if m.parent != "" {
			path = m.parent + "/" + value
		}
		m.busy = true
		return m, runOp(func(ctx context.Context) error {
			return m.coord.CreateFolder(ctx, path)
		})
	}
	return m, nil
}

// failureMessage renders an operation failure for the status line.
func failureMessage(err error) string {
	var opErr *sync.OpError
	if errors.As(err, &opErr) {
		switch opErr.Kind {
		case sync.FailureValidation:
			if opErr.Err != nil {
				return opErr.Err.Error()
			}
			return opErr.Message
		case sync.FailureRejected:
			return opErr.Message
		default:
			return "operation failed: backend error"
		}
	}
	return err.Error()
}
