package m68kcount

import (
	"fmt"
	"strings"
)

// Session owns the current source text, its analysis and the user's
// selection. It is not safe for concurrent use; callers apply one event
// at a time.
type Session struct {
	analyzer Analyzer

	source    string
	lines     []Line
	totals    *Totals
	selection Selection

	// intake is bumped on every submission so that only the most recent
	// asynchronous read is applied.
	intake uint64
}

// NewSession creates an unanalyzed session using analyzer.
func NewSession(analyzer Analyzer) *Session {
	return &Session{
		analyzer:  analyzer,
		selection: IdleSelection(),
	}
}

// Submit analyzes source and replaces the current analysis. Whitespace-only
// source clears the analysis instead. If the analyzer fails, the error wraps
// ErrAnalysisFailed and the previous state is kept.
func (s *Session) Submit(source string) error {
	s.intake++
	return s.apply(source)
}

// Intake reserves a ticket for a submission whose text is still being read.
// Any later Intake or Submit makes the ticket stale.
func (s *Session) Intake() uint64 {
	s.intake++
	return s.intake
}

// SubmitIntake submits source read for ticket. If a later submission has
// been started since, it returns ErrSuperseded and leaves the state alone.
func (s *Session) SubmitIntake(ticket uint64, source string) error {
	if ticket != s.intake {
		return ErrSuperseded
	}
	return s.apply(source)
}

func (s *Session) apply(source string) error {
	if strings.TrimSpace(source) == "" {
		s.source = source
		s.lines = nil
		s.totals = nil
		s.selection = IdleSelection()
		return nil
	}

	lines, err := s.analyzer.Analyze(source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	totals := Aggregate(lines)
	s.source = source
	s.lines = lines
	s.totals = &totals
	s.selection = IdleSelection()
	return nil
}

// Click applies a click on line i to the selection.
func (s *Session) Click(i int) {
	s.selection = Transition(s.selection, ClickEvent{Line: i}, s.lines)
}

// Hover moves the selection preview to line i.
func (s *Session) Hover(i int) {
	s.selection = Transition(s.selection, HoverEvent{Line: i}, s.lines)
}

// Cancel clears the selection.
func (s *Session) Cancel() {
	s.selection = Transition(s.selection, CancelEvent{}, s.lines)
}

// Source returns the last successfully submitted source text.
func (s *Session) Source() string { return s.source }

// Lines returns the current annotated lines, or nil when unanalyzed.
// The slice is replaced, never modified, by later submissions.
func (s *Session) Lines() []Line { return s.lines }

// Totals returns the whole-document totals, or nil when unanalyzed.
func (s *Session) Totals() *Totals { return s.totals }

// Selection returns the current selection.
func (s *Session) Selection() Selection { return s.selection }

// Analyzed reports whether the session holds an analysis.
func (s *Session) Analyzed() bool { return s.lines != nil }
