// Package chroma provides operand highlighting using the chroma library.
package chroma

import (
	"errors"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/m68kcount"
)

// Compile-time interface verification.
var _ m68kcount.Highlighter = (*Highlighter)(nil)

// StyleFunc maps chroma token types to m68kcount styles.
type StyleFunc func(chromalib.TokenType) m68kcount.Style

// Operands lexes the operand field of a 68000 instruction. Labels, mnemonics
// and comments are tagged by the line tokenizer, so this lexer only needs to
// tell registers, numbers and symbols apart.
var Operands = chromalib.MustNewLexer(
	&chromalib.Config{
		Name:            "m68k operands",
		Aliases:         []string{"m68k"},
		CaseInsensitive: true,
	},
	func() chromalib.Rules {
		return chromalib.Rules{
			"root": {
				{Pattern: `\s+`, Type: chromalib.Whitespace},
				{Pattern: `\b(d[0-7]|a[0-7]|sp|pc|sr|ccr|usp)\b`, Type: chromalib.NameBuiltin},
				{Pattern: `\.[bwls]\b`, Type: chromalib.KeywordType},
				{Pattern: `"[^"]*"?|'[^']*'?`, Type: chromalib.String},
				{Pattern: `\$[0-9a-f]+`, Type: chromalib.NumberHex},
				{Pattern: `%[01]+`, Type: chromalib.NumberBin},
				{Pattern: `@[0-7]+`, Type: chromalib.NumberOct},
				{Pattern: `0x[0-9a-f]+`, Type: chromalib.NumberHex},
				{Pattern: `[0-9]+`, Type: chromalib.NumberInteger},
				{Pattern: `[#\-+*/<>&|!~^=]`, Type: chromalib.Operator},
				{Pattern: `[(),:]`, Type: chromalib.Punctuation},
				{Pattern: `[a-z_.\\][\w.\\@]*`, Type: chromalib.Name},
				{Pattern: `.`, Type: chromalib.Text},
			},
		}
	},
)

// Highlighter highlights operand text using chroma.
type Highlighter struct {
	styleFunc StyleFunc
}

// NewHighlighter creates a new chroma-based highlighter with the given style function.
// Use StyleFromPalette to create a style function from a m68kcount.Palette.
func NewHighlighter(styleFunc StyleFunc) (*Highlighter, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Highlighter{styleFunc: styleFunc}, nil
}

// Highlight splits text into styled tokens.
// Returns nil if an error occurs.
// Returns an empty slice for empty text (valid input, no tokens).
func (h *Highlighter) Highlight(text string) []m68kcount.Token {
	if text == "" {
		return []m68kcount.Token{}
	}

	iterator, err := chromalib.Coalesce(Operands).Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var tokens []m68kcount.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		tokens = append(tokens, m68kcount.Token{
			Text:  token.Value,
			Style: h.styleFunc(token.Type),
		})
	}
	return tokens
}
