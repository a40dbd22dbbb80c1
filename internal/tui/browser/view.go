package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/common-gull/cocobolo-core/pkg/drag"
	"github.com/common-gull/cocobolo-core/pkg/tree"
)

func (m Model) View() string {
	if m.root == nil {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("Cocobolo — %s", m.vaultName))

	var body string
	if m.confirm.Active {
		body = m.confirm.View()
	} else if m.mode != inputNone {
		body = m.renderTree() + "\n" + promptStyle.Render(m.promptLabel()+" "+m.input.View())
	} else {
		body = m.renderTree()
	}

	statusLine := m.renderStatus()
	footer := m.help.View(m.keys)

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		statusLine,
		footer,
	)
}

func (m Model) promptLabel() string {
	if m.mode == inputRename {
		return "Rename folder:"
	}
	if m.parent == "" {
		return "New folder at root:"
	}
	return fmt.Sprintf("New folder in %s:", m.parent)
}

func (m Model) renderTree() string {
	var b strings.Builder

	vp := m.viewportHeight()
	end := m.offset + vp
	if end > len(m.rows) {
		end = len(m.rows)
	}

	hoverPath, hoverIsRoot := m.hoverTarget()

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▶ ")
		}

		var line string
		switch r.kind {
		case rowRoot:
			label := fmt.Sprintf("%s %s", "⌂", tree.RootName)
			if m.session.Active() && hoverIsRoot {
				label = dropTargetStyle.Render(label + "  ← drop here")
			} else {
				label = folderStyle.Render(label)
			}
			line = label + countStyle.Render(fmt.Sprintf(" (%d)", m.root.TotalCount))

		case rowFolder:
			line = m.renderFolderRow(r, hoverPath)

		case rowNote:
			line = m.renderNoteRow(r)
		}

		b.WriteString(cursor + strings.Repeat("  ", r.depth+1) + line + "\n")
	}
	return b.String()
}

func (m Model) renderFolderRow(r row, hoverPath string) string {
	arrow := "▸"
	if r.folder.Expanded {
		arrow = "▾"
	}
	if len(r.folder.Children) == 0 && len(r.folder.Notes) == 0 {
		arrow = "·"
	}

	label := fmt.Sprintf("%s %s", arrow, r.folder.Name)
	grabbed := m.grabbedFolder() == r.folder.Path

	switch {
	case grabbed:
		label = grabbedStyle.Render(label + "  (moving)")
	case m.session.Active() && hoverPath == r.folder.Path:
		label = dropTargetStyle.Render(label + "  ← drop here")
	default:
		label = folderStyle.Render(label)
	}
	return label + countStyle.Render(fmt.Sprintf(" (%d)", r.folder.TotalCount))
}

func (m Model) renderNoteRow(r row) string {
	label := "• " + r.note.Title
	if src, ok := m.session.Source(); ok && src.ID == r.note.ID {
		return grabbedStyle.Render(label + "  (moving)")
	}
	return noteStyle.Render(label)
}

func (m Model) renderStatus() string {
	switch {
	case m.busy:
		return infoStyle.Render("Working…")
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.info != "":
		return infoStyle.Render(m.info)
	}
	return " "
}

// hoverTarget returns the current drop-target path (and whether it is the
// root) for highlight rendering.
func (m Model) hoverTarget() (string, bool) {
	target, ok := m.session.Hover()
	if !ok {
		return "", false
	}
	if target.IsRoot() {
		return "", true
	}
	return target.Path(), false
}

// grabbedFolder returns the path of the folder being dragged, if any.
func (m Model) grabbedFolder() string {
	src, ok := m.session.Source()
	if !ok || src.Kind != drag.SourceFolder {
		return ""
	}
	return src.Path
}
