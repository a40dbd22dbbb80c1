// Package browser is the interactive vault browser: a bubbletea program that
// renders the folder tree and drives the drag session, rename, and delete
// flows against the sync coordinator. It owns no tree state of its own; every
// change goes through the coordinator and comes back as a rebuilt snapshot.
package browser

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/common-gull/cocobolo-core/internal/tui/browser/components/confirm"
	"github.com/common-gull/cocobolo-core/pkg/drag"
	"github.com/common-gull/cocobolo-core/pkg/models"
	"github.com/common-gull/cocobolo-core/pkg/sync"
	"github.com/common-gull/cocobolo-core/pkg/tree"
)

// rowKind tags what a display row represents.
type rowKind int

const (
	rowRoot rowKind = iota
	rowFolder
	rowNote
)

// row is a single visible line of the flattened tree.
type row struct {
	kind  rowKind
	depth int

	folder *tree.FolderNode    // rowFolder
	note   models.NoteMetadata // rowNote
}

// inputMode says what the text prompt, when visible, is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputRename
	inputNewFolder
)

// pendingDelete remembers what the confirm dialog is about to remove.
type pendingDelete struct {
	isFolder bool
	id       string // note id
	path     string // folder path
}

// Model is the bubbletea model for the vault browser.
type Model struct {
	coord     *sync.Coordinator
	vaultName string

	session *drag.Session

	root   *tree.FolderNode
	rows   []row
	cursor int
	offset int

	width  int
	height int

	mode    inputMode
	input   textinput.Model
	renames string // folder path being renamed
	parent  string // parent path for a new folder

	confirm confirm.Model
	pending pendingDelete

	help    help.Model
	keys    KeyMap
	status  string
	info    string
	busy    bool
}

// New creates the browser model. The coordinator must already hold a
// refreshed state.
func New(coord *sync.Coordinator, vaultName string) Model {
	input := textinput.New()
	input.CharLimit = 120
	input.Width = 40

	m := Model{
		coord:     coord,
		vaultName: vaultName,
		session:   drag.NewSession(),
		input:     input,
		confirm:   confirm.New(),
		help:      help.New(),
		keys:      keys,
	}
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// rebuild refreshes the flattened row list from the coordinator's tree.
func (m *Model) rebuild() {
	m.root = m.coord.Tree()
	m.rows = m.rows[:0]
	m.rows = append(m.rows, row{kind: rowRoot})
	m.flatten(m.root, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) flatten(node *tree.FolderNode, depth int) {
	for _, child := range node.Children {
		m.rows = append(m.rows, row{kind: rowFolder, depth: depth, folder: child})
		if child.Expanded {
			m.flatten(child, depth+1)
		}
	}
	for _, note := range node.Notes {
		m.rows = append(m.rows, row{kind: rowNote, depth: depth, note: note})
	}
}

func (m *Model) clampScroll() {
	vp := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vp {
		m.offset = m.cursor - vp + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) viewportHeight() int {
	// Header, status, and footer take a handful of lines.
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// opResultMsg reports a coordinator operation that ran as a tea command.
type opResultMsg struct {
	err error
}

// runOp wraps a coordinator call into a tea command. The drag session (when
// one is resolving) is settled by the opResultMsg handler.
func runOp(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{err: fn(context.Background())}
	}
}
