// Package drag models one user-initiated drag gesture as an explicit state
// machine: Idle → Dragging → (Hovering)* → Resolving → Idle. Modeling the
// gesture as tagged state with per-state payload keeps illegal combinations
// (a hover with no active drag, two simultaneous drags) unrepresentable at
// the call sites.
//
// The session performs no I/O. On drop it dispatches to the move validator
// and hands the caller a fully validated operation; executing that operation
// and reporting its outcome back via Settle is the caller's job.
package drag

import (
	"github.com/common-gull/cocobolo-core/pkg/move"
)

// State enumerates the phases of a drag gesture.
type State int

const (
	// StateIdle means no drag is in progress.
	StateIdle State = iota
	// StateDragging means a source has been picked up but is not over a
	// drop target.
	StateDragging
	// StateHovering means the drag is over a candidate drop target.
	StateHovering
	// StateResolving means a drop was accepted and the resulting operation
	// is in flight; new drags are refused until Settle is called.
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateHovering:
		return "hovering"
	case StateResolving:
		return "resolving"
	}
	return "unknown"
}

// SourceKind tags what is being dragged.
type SourceKind int

const (
	// SourceNote drags a note by id.
	SourceNote SourceKind = iota
	// SourceFolder drags a folder by path.
	SourceFolder
)

// Source identifies the dragged element: a note id or a folder path.
type Source struct {
	Kind SourceKind
	ID   string // note id when Kind == SourceNote
	Path string // folder path when Kind == SourceFolder
}

// NoteSource builds a note drag source.
func NoteSource(id string) Source {
	return Source{Kind: SourceNote, ID: id}
}

// FolderSource builds a folder drag source.
func FolderSource(path string) Source {
	return Source{Kind: SourceFolder, Path: path}
}

// OpKind tags the operation a resolved drop produces.
type OpKind int

const (
	// OpMoveNote re-homes a note to a folder or the root.
	OpMoveNote OpKind = iota
	// OpMoveFolder moves a folder (and its subtree) under a new parent.
	OpMoveFolder
)

// Op is a validated operation ready to hand to the sync coordinator.
type Op struct {
	Kind   OpKind
	NoteID string  // OpMoveNote
	Dest   *string // OpMoveNote: destination folder, nil for root

	OldPath string // OpMoveFolder
	NewPath string // OpMoveFolder
}

// Session tracks one drag gesture from start to resolution or cancellation.
// It is not safe for concurrent use; the surrounding event loop is
// single-threaded by design.
type Session struct {
	state  State
	source Source
	hover  move.Target
	hasHov bool
}

// NewSession returns a session in the idle state.
func NewSession() *Session {
	return &Session{}
}

// State returns the current gesture phase.
func (s *Session) State() State {
	return s.state
}

// Active reports whether a drag gesture is in progress (any non-idle state).
func (s *Session) Active() bool {
	return s.state != StateIdle
}

// Source returns the dragged element. ok is false when idle.
func (s *Session) Source() (src Source, ok bool) {
	if s.state == StateIdle {
		return Source{}, false
	}
	return s.source, true
}

// Hover returns the current candidate drop target. ok is false unless the
// session is in the hovering state.
func (s *Session) Hover() (move.Target, bool) {
	if !s.hasHov {
		return move.Target{}, false
	}
	return s.hover, true
}

// Start begins a drag. It returns false, leaving the session untouched, if a
// gesture is already active; the second drag-start is dropped rather than
// corrupting the first.
func (s *Session) Start(src Source) bool {
	if s.state != StateIdle {
		return false
	}
	s.state = StateDragging
	s.source = src
	s.hasHov = false
	return true
}

// HoverOver records the candidate drop target under the pointer. It is
// purely observational, used to drive the drop-target highlight; no
// validation happens until the drop.
func (s *Session) HoverOver(target move.Target) {
	if s.state != StateDragging && s.state != StateHovering {
		return
	}
	s.state = StateHovering
	s.hover = target
	s.hasHov = true
}

// ClearHover records that the drag left all drop targets.
func (s *Session) ClearHover() {
	if s.state != StateHovering {
		return
	}
	s.state = StateDragging
	s.hasHov = false
}

// Cancel abandons the gesture and returns to idle. Safe in any state except
// Resolving, where the in-flight operation still owns the session; a cancel
// there is ignored and Settle must be called instead.
func (s *Session) Cancel() {
	if s.state == StateResolving {
		return
	}
	s.reset()
}

// Drop ends the gesture. With no drop target, or with the dragged element
// dropped onto itself, the gesture is a cancel: the session returns to idle
// and ok is false with a nil error. A validation failure also returns the
// session to idle, with ok false and the rejection as err. On acceptance the
// session enters Resolving and the validated operation is returned; the
// caller must invoke Settle once the operation settles, success or failure.
func (s *Session) Drop() (op Op, ok bool, err error) {
	if s.state != StateDragging && s.state != StateHovering {
		return Op{}, false, nil
	}
	if !s.hasHov {
		s.reset()
		return Op{}, false, nil
	}
	target := s.hover

	switch s.source.Kind {
	case SourceNote:
		op = Op{Kind: OpMoveNote, NoteID: s.source.ID, Dest: move.NoteDestination(target)}

	case SourceFolder:
		if !target.IsRoot() && target.Path() == s.source.Path {
			s.reset()
			return Op{}, false, nil
		}
		newPath, verr := move.ValidateFolderMove(s.source.Path, target)
		if verr != nil {
			s.reset()
			return Op{}, false, verr
		}
		op = Op{Kind: OpMoveFolder, OldPath: s.source.Path, NewPath: newPath}
	}

	s.state = StateResolving
	s.hasHov = false
	return op, true, nil
}

// Settle returns the session to idle after a resolved operation completes.
// Called on success and on failure alike.
func (s *Session) Settle() {
	if s.state != StateResolving {
		return
	}
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.source = Source{}
	s.hover = move.Target{}
	s.hasHov = false
}
