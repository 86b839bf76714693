package mock

import "github.com/fwojciec/m68kcount"

// Compile-time interface verification.
var (
	_ m68kcount.LineTokenizer = (*LineTokenizer)(nil)
	_ m68kcount.Highlighter   = (*Highlighter)(nil)
)

// LineTokenizer is a mock implementation of m68kcount.LineTokenizer.
type LineTokenizer struct {
	TokenizeFn func(line string) []m68kcount.Span
}

func (t *LineTokenizer) Tokenize(line string) []m68kcount.Span {
	return t.TokenizeFn(line)
}

// Highlighter is a mock implementation of m68kcount.Highlighter.
type Highlighter struct {
	HighlightFn func(text string) []m68kcount.Token
}

func (h *Highlighter) Highlight(text string) []m68kcount.Token {
	return h.HighlightFn(text)
}
