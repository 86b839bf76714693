package m68kcount

// SpanKind is the semantic tag of a span of source text.
type SpanKind int

// Span kinds. SpanPlain marks text between tagged spans.
const (
	SpanPlain SpanKind = iota
	SpanLabel
	SpanMnemonic
	SpanComment
)

func (k SpanKind) String() string {
	switch k {
	case SpanLabel:
		return "label"
	case SpanMnemonic:
		return "mnemonic"
	case SpanComment:
		return "comment"
	default:
		return "plain"
	}
}

// Span is the half-open byte range [Start, End) of a line with a tag.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
}

// Text returns the part of line covered by the span.
func (s Span) Text(line string) string {
	return line[s.Start:s.End]
}

// LineTokenizer splits one source line into label, mnemonic and comment spans.
type LineTokenizer interface {
	// Tokenize returns non-overlapping spans in source order.
	// A line without any recognizable part yields no spans.
	Tokenize(line string) []Span
}

// Token is a highlighted piece of text.
type Token struct {
	Text  string
	Style Style
}

// Style is the visual style of a token.
type Style struct {
	Foreground string // Hex color or empty for default
	Bold       bool
}

// Highlighter splits operand text into highlighted tokens.
type Highlighter interface {
	// Highlight returns tokens whose concatenated text equals text,
	// or nil if highlighting is not possible.
	Highlight(text string) []Token
}

// Segment is a contiguous piece of a line with the kind of span it belongs to.
type Segment struct {
	Text string
	Kind SpanKind
}

// Segments splits line into consecutive segments covering the whole line,
// tagging text outside spans as SpanPlain. Spans must be in source order
// and non-overlapping; invalid spans are skipped.
func Segments(line string, spans []Span) []Segment {
	var segs []Segment
	pos := 0
	for _, sp := range spans {
		if sp.Start < pos || sp.End > len(line) || sp.Start >= sp.End {
			continue
		}
		if sp.Start > pos {
			segs = append(segs, Segment{Text: line[pos:sp.Start], Kind: SpanPlain})
		}
		segs = append(segs, Segment{Text: line[sp.Start:sp.End], Kind: sp.Kind})
		pos = sp.End
	}
	if pos < len(line) {
		segs = append(segs, Segment{Text: line[pos:], Kind: SpanPlain})
	}
	return segs
}
