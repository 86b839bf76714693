package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/m68kcount"
)

// renderConfig holds all rendering parameters for renderListing.
type renderConfig struct {
	lines       []m68kcount.Line
	selection   *m68kcount.Selection // Optional
	styles      m68kcount.Styles
	palette     m68kcount.Palette
	renderer    *lipgloss.Renderer
	width       int // Rows are padded to width when positive
	tokenizer   m68kcount.LineTokenizer
	highlighter m68kcount.Highlighter

	showCursor bool
	cursor     int
	expanded   map[int]bool
	expandAll  bool
}

// layout maps rendered rows back to source lines.
type layout struct {
	rowLines []int // Source line of each row; NoLine for rows without one
	lineRows []int // Row of each source line
}

// lineAt returns the source line rendered at row.
func (l layout) lineAt(row int) (int, bool) {
	if row < 0 || row >= len(l.rowLines) {
		return m68kcount.NoLine, false
	}
	line := l.rowLines[row]
	return line, line != m68kcount.NoLine
}

// columns holds the widths of the annotation columns.
type columns struct {
	cursor  bool
	timing  int
	words   int
	lineNum int
}

// sourceOffset returns the display column where source text starts.
func (c columns) sourceOffset() int {
	offset := 2 + c.timing + 1 + c.words + 1 + c.lineNum + 3
	if c.cursor {
		offset += 2
	}
	return offset
}

func measureColumns(lines []m68kcount.Line, cursor bool) columns {
	cols := columns{cursor: cursor, timing: 1, words: 1, lineNum: digitWidth(len(lines))}
	for _, line := range lines {
		cols.timing = max(cols.timing, lipgloss.Width(formatTimings(line.Timings)))
		if line.Words > 0 {
			cols.words = max(cols.words, digitWidth(line.Words))
		}
	}
	return cols
}

func formatTimings(timings []m68kcount.Timing) string {
	parts := make([]string, len(timings))
	for i, t := range timings {
		parts[i] = m68kcount.FormatTiming(t)
	}
	return strings.Join(parts, " ")
}

// renderListing renders annotated lines, one row per line plus the range
// totals row and any expanded breakdown rows.
func renderListing(cfg renderConfig) (string, layout) {
	lay := layout{lineRows: make([]int, len(cfg.lines))}
	if len(cfg.lines) == 0 {
		return "", lay
	}
	cols := measureColumns(cfg.lines, cfg.showCursor)

	var rows []string
	add := func(s string, line int) {
		rows = append(rows, s)
		lay.rowLines = append(lay.rowLines, line)
	}

	for i, line := range cfg.lines {
		if sel := cfg.selection; sel != nil && sel.State == m68kcount.SelectionCommitted && sel.Start == i && sel.Totals != nil {
			add(renderRangeTotals(cfg, *sel), m68kcount.NoLine)
		}
		lay.lineRows[i] = len(rows)
		add(renderLine(cfg, cols, i), i)
		if cfg.expandAll || cfg.expanded[i] {
			for _, d := range m68kcount.Breakdown(line) {
				add(renderDetail(cfg, cols, d, i), i)
			}
		}
	}
	return strings.Join(rows, "\n"), lay
}

// rowBackground returns the background color of line i.
func rowBackground(cfg renderConfig, i int) string {
	sel := cfg.selection
	if sel == nil || !sel.Contains(i) {
		return ""
	}
	if sel.State == m68kcount.SelectionCommitted {
		return cfg.styles.Selected.Background
	}
	return cfg.styles.Preview.Background
}

func renderLine(cfg renderConfig, cols columns, i int) string {
	line := cfg.lines[i]
	r := &rowBuilder{renderer: cfg.renderer, bg: rowBackground(cfg, i)}

	if cols.cursor {
		marker := "  "
		if i == cfg.cursor {
			marker = "› "
		}
		r.add(marker, cfg.styles.Cursor.Foreground, true)
	}

	expand := "  "
	if m68kcount.HasDetail(line) {
		expand = "+ "
		if cfg.expandAll || cfg.expanded[i] {
			expand = "- "
		}
	}
	r.add(expand, string(cfg.palette.UIAccent), false)

	// Timings, each colored by its level
	start := r.width
	for j, t := range line.Timings {
		if j > 0 {
			r.add(" ", "", false)
		}
		r.add(m68kcount.FormatTiming(t), string(cfg.palette.LevelColor(m68kcount.TimingLevel(t))), false)
	}
	r.pad(start + cols.timing + 1)

	words := ""
	if line.Words > 0 {
		words = fmt.Sprintf("%d", line.Words)
	}
	r.add(fmt.Sprintf("%*s", cols.words, words), string(cfg.palette.LevelColor(m68kcount.LengthLevel(line.Words))), false)
	r.add(" ", "", false)
	r.add(fmt.Sprintf("%*d", cols.lineNum, i+1), cfg.styles.LineNumber.Foreground, false)
	r.add(" │ ", cfg.styles.LineNumber.Foreground, false)

	renderSource(cfg, r, line.Text)
	r.pad(cfg.width)
	return r.String()
}

// renderSource renders source text with label, mnemonic and comment styles
// and highlighted operands.
func renderSource(cfg renderConfig, r *rowBuilder, text string) {
	var spans []m68kcount.Span
	if cfg.tokenizer != nil {
		spans = cfg.tokenizer.Tokenize(text)
	}
	col := 0
	for _, seg := range m68kcount.Segments(text, spans) {
		var expanded string
		expanded, col = ExpandTabs(seg.Text, col)
		switch seg.Kind {
		case m68kcount.SpanLabel:
			r.add(expanded, string(cfg.palette.Label), true)
		case m68kcount.SpanMnemonic:
			r.add(expanded, string(cfg.palette.Mnemonic), true)
		case m68kcount.SpanComment:
			r.add(expanded, string(cfg.palette.Comment), false)
		default:
			renderOperands(cfg, r, expanded)
		}
	}
}

func renderOperands(cfg renderConfig, r *rowBuilder, text string) {
	var tokens []m68kcount.Token
	if cfg.highlighter != nil {
		tokens = cfg.highlighter.Highlight(text)
	}
	if tokens == nil {
		r.add(text, string(cfg.palette.Foreground), false)
		return
	}
	for _, tok := range tokens {
		fg := tok.Style.Foreground
		if fg == "" {
			fg = string(cfg.palette.Foreground)
		}
		r.add(tok.Text, fg, tok.Style.Bold)
	}
}

func renderRangeTotals(cfg renderConfig, sel m68kcount.Selection) string {
	r := &rowBuilder{renderer: cfg.renderer, bg: cfg.styles.RangeTotal.Background}
	text := fmt.Sprintf(" Σ lines %d–%d: %s", sel.Start+1, sel.End+1, m68kcount.FormatTotals(*sel.Totals))
	r.add(text, cfg.styles.RangeTotal.Foreground, true)
	r.pad(cfg.width)
	return r.String()
}

func renderDetail(cfg renderConfig, cols columns, d m68kcount.DetailRow, i int) string {
	r := &rowBuilder{renderer: cfg.renderer, bg: rowBackground(cfg, i)}
	r.pad(cols.sourceOffset())
	text := d.Value
	if d.Label != "" {
		text = d.Label + ": " + d.Value
	}
	r.add(text, cfg.styles.Detail.Foreground, false)
	r.pad(cfg.width)
	return r.String()
}

// rowBuilder accumulates styled cells sharing one background color and
// tracks the display width written so far.
type rowBuilder struct {
	sb       strings.Builder
	renderer *lipgloss.Renderer
	bg       string
	width    int
}

func (r *rowBuilder) add(text, fg string, bold bool) {
	if text == "" {
		return
	}
	style := newStyle(r.renderer)
	if r.bg != "" {
		style = style.Background(lipgloss.Color(r.bg))
	}
	if fg != "" {
		style = style.Foreground(lipgloss.Color(fg))
	}
	if bold {
		style = style.Bold(true)
	}
	r.sb.WriteString(style.Render(text))
	r.width += lipgloss.Width(text)
}

// pad fills the row with spaces up to display column to.
func (r *rowBuilder) pad(to int) {
	if r.width < to {
		r.add(strings.Repeat(" ", to-r.width), "", false)
	}
}

func (r *rowBuilder) String() string {
	return r.sb.String()
}

// newStyle creates a new lipgloss style using renderer, or the default
// renderer when it is nil.
func newStyle(renderer *lipgloss.Renderer) lipgloss.Style {
	if renderer != nil {
		return renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp m68kcount.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// padLine pads a line with spaces to the specified display width.
// Uses lipgloss.Width() to correctly handle multi-byte Unicode characters.
// If the line is already wider, it is returned unchanged.
func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}

// ListingOptions configures RenderListing.
type ListingOptions struct {
	Theme       m68kcount.Theme // Optional; nil renders without colors
	Renderer    *lipgloss.Renderer
	Tokenizer   m68kcount.LineTokenizer
	Highlighter m68kcount.Highlighter
	Selection   *m68kcount.Selection // Optional range to highlight
	Breakdown   bool                 // Include breakdown rows for every line
}

// RenderListing renders annotated lines as a static listing, with the same
// layout as the interactive viewer minus the cursor.
func RenderListing(lines []m68kcount.Line, opts ListingOptions) string {
	cfg := renderConfig{
		lines:       lines,
		selection:   opts.Selection,
		renderer:    opts.Renderer,
		tokenizer:   opts.Tokenizer,
		highlighter: opts.Highlighter,
		expandAll:   opts.Breakdown,
	}
	if opts.Theme != nil {
		cfg.styles = opts.Theme.Styles()
		cfg.palette = opts.Theme.Palette()
	}
	out, _ := renderListing(cfg)
	return out
}
