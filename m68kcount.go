// Package m68kcount provides domain types for annotating 68000 assembly
// source with cycle timings and instruction sizes.
package m68kcount

import (
	"context"
	"errors"
)

// Timing is the cost of one instruction outcome in CPU clock cycles,
// with the number of bus read and write cycles it contains.
type Timing struct {
	Clock int
	Read  int
	Write int
}

// Add returns the component-wise sum of t and o.
func (t Timing) Add(o Timing) Timing {
	return Timing{Clock: t.Clock + o.Clock, Read: t.Read + o.Read, Write: t.Write + o.Write}
}

// Min returns the component-wise minimum of t and o.
func (t Timing) Min(o Timing) Timing {
	return Timing{Clock: min(t.Clock, o.Clock), Read: min(t.Read, o.Read), Write: min(t.Write, o.Write)}
}

// Max returns the component-wise maximum of t and o.
func (t Timing) Max(o Timing) Timing {
	return Timing{Clock: max(t.Clock, o.Clock), Read: max(t.Read, o.Read), Write: max(t.Write, o.Write)}
}

// IsZero reports whether all components are zero.
func (t Timing) IsZero() bool {
	return t == Timing{}
}

// Calculation breaks a timing down into the parts it was computed from.
// It is attached only when the cost depends on an addressing-mode operand
// or on a repeat count.
type Calculation struct {
	Base       Timing
	EA         *Timing // Effective address cost, nil if none
	Multiplier *Timing // Cost per repeat, nil if the cost does not repeat
	N          *int    // Repeat count, nil when Multiplier is set but the count is unknown
}

// Line is one line of source with the annotation the analyzer attached to it.
// Lines without an instruction have zero words and no timings.
type Line struct {
	Text        string
	Words       int
	Timings     []Timing     // More than one only for outcome-dependent instructions
	Labels      []string     // Outcome name per timing when len(Timings) > 1
	Calculation *Calculation // Optional breakdown
}

// IsMultiple reports whether the line's cost depends on the outcome
// of a branch or loop.
func (l Line) IsMultiple() bool {
	return len(l.Timings) > 1
}

// Totals aggregates size and timing over a set of lines.
type Totals struct {
	Words   int
	Bytes   int // Always Words * 2
	Min     Timing
	Max     Timing
	IsRange bool // True when at least one line had more than one outcome
}

// Errors returned by Session.
var (
	ErrAnalysisFailed = errors.New("analysis failed")
	ErrSuperseded     = errors.New("superseded by a later submission")
)

// ErrNoSource is returned when there is no source text to analyze.
var ErrNoSource = errors.New("no source to analyze")

// ErrClipboardUnavailable is returned when no clipboard is available.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Analyzer converts raw source text into annotated lines, one per source line.
type Analyzer interface {
	// Analyze returns one Line per input line in source order.
	// Unrecognized lines carry no words or timings; an error is returned
	// only when the input cannot be treated as source at all.
	Analyze(source string) ([]Line, error)
}

// SourceLoader reads assembly source from a named location.
type SourceLoader interface {
	Load(ctx context.Context, path string) (string, error)
}

// Clipboard provides access to the system clipboard.
type Clipboard interface {
	Copy(content string) error
}

// Viewer displays an analysis session and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, session *Session) error
}
