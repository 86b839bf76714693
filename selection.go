package m68kcount

import "fmt"

// NoLine marks an unset line index.
const NoLine = -1

// SelectionState tags the state of a Selection.
type SelectionState int

// Selection states.
const (
	SelectionIdle      SelectionState = iota // Nothing selected
	SelectionPending                         // Start chosen, waiting for the end
	SelectionCommitted                       // Range finalized, totals computed
)

func (s SelectionState) String() string {
	switch s {
	case SelectionPending:
		return "pending"
	case SelectionCommitted:
		return "committed"
	default:
		return "idle"
	}
}

// Selection is a line range being chosen by the user.
//
// Start is set in Pending and Committed. End is set only in Committed and
// is never less than Start. Hover is a transient preview index and is never
// set in Committed. Totals holds the aggregate of the committed range.
type Selection struct {
	State  SelectionState
	Start  int
	End    int
	Hover  int
	Totals *Totals
}

// IdleSelection returns the empty selection.
func IdleSelection() Selection {
	return Selection{State: SelectionIdle, Start: NoLine, End: NoLine, Hover: NoLine}
}

// SelectionEvent is an input to the selection state machine.
type SelectionEvent interface {
	selectionEvent()
}

// ClickEvent selects line Line.
type ClickEvent struct{ Line int }

// HoverEvent moves the preview to line Line.
type HoverEvent struct{ Line int }

// CancelEvent clears the selection.
type CancelEvent struct{}

func (ClickEvent) selectionEvent()  {}
func (HoverEvent) selectionEvent()  {}
func (CancelEvent) selectionEvent() {}

// Transition applies ev to s and returns the new selection. Committing a
// range aggregates lines[start:end+1]; no other transition touches lines.
//
// Click and hover indices must lie within lines.
func Transition(s Selection, ev SelectionEvent, lines []Line) Selection {
	switch ev := ev.(type) {
	case ClickEvent:
		checkIndex(ev.Line, lines)
		if s.State == SelectionPending {
			if ev.Line == s.Start {
				return IdleSelection()
			}
			lo, hi := min(ev.Line, s.Start), max(ev.Line, s.Start)
			totals := Aggregate(lines[lo : hi+1])
			return Selection{State: SelectionCommitted, Start: lo, End: hi, Hover: NoLine, Totals: &totals}
		}
		return Selection{State: SelectionPending, Start: ev.Line, End: NoLine, Hover: NoLine}
	case HoverEvent:
		checkIndex(ev.Line, lines)
		if s.State == SelectionCommitted {
			return s
		}
		s.Hover = ev.Line
		return s
	case CancelEvent:
		return IdleSelection()
	}
	return s
}

func checkIndex(i int, lines []Line) {
	if i < 0 || i >= len(lines) {
		panic(fmt.Sprintf("m68kcount: line index %d out of range [0,%d)", i, len(lines)))
	}
}

// Highlight returns the inclusive range of lines to highlight. In Committed
// it is the selected range; in Pending it spans Start and Hover (or Start
// alone); in Idle it is the hovered line. ok is false when nothing is
// highlighted.
func (s Selection) Highlight() (lo, hi int, ok bool) {
	switch s.State {
	case SelectionCommitted:
		return s.Start, s.End, true
	case SelectionPending:
		if s.Hover == NoLine {
			return s.Start, s.Start, true
		}
		return min(s.Start, s.Hover), max(s.Start, s.Hover), true
	default:
		if s.Hover == NoLine {
			return NoLine, NoLine, false
		}
		return s.Hover, s.Hover, true
	}
}

// Contains reports whether line i is highlighted.
func (s Selection) Contains(i int) bool {
	lo, hi, ok := s.Highlight()
	return ok && i >= lo && i <= hi
}
