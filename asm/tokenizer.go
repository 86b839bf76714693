// Package asm splits 68000 assembly source lines into label, mnemonic and
// comment spans.
package asm

import (
	"strings"

	"github.com/fwojciec/m68kcount"
)

// Compile-time interface verification.
var _ m68kcount.LineTokenizer = (*Tokenizer)(nil)

// Synonyms are mnemonic aliases accepted by assemblers in addition to the
// analyzer's instruction names.
var Synonyms = []string{"dbra", "dblo", "blo"}

// Tokenizer matches labels, mnemonics and comments in source lines.
// Matching is positional and always runs against the original text.
type Tokenizer struct {
	vocabulary map[string]bool
}

// NewTokenizer creates a tokenizer recognizing the given mnemonics
// (case-insensitive) and the standard synonyms.
func NewTokenizer(mnemonics []string) *Tokenizer {
	vocab := make(map[string]bool, len(mnemonics)+len(Synonyms))
	for _, m := range mnemonics {
		vocab[strings.ToLower(m)] = true
	}
	for _, m := range Synonyms {
		vocab[m] = true
	}
	return &Tokenizer{vocabulary: vocab}
}

// Tokenize returns the label, mnemonic and comment spans of line, in that
// order, omitting the ones that do not match.
func (t *Tokenizer) Tokenize(line string) []m68kcount.Span {
	var spans []m68kcount.Span

	comment, hasComment := matchComment(line)
	limit := len(line)
	if hasComment {
		limit = comment.Start
	}

	labelEnd := 0
	if label, ok := matchLabel(line[:limit]); ok {
		spans = append(spans, label)
		labelEnd = label.End
	}

	if mnem, ok := t.matchMnemonic(line, labelEnd, limit); ok {
		spans = append(spans, mnem)
	}

	if hasComment {
		spans = append(spans, comment)
	}
	return spans
}

// matchLabel matches a run of characters other than whitespace, ';' and
// '*' starting at column 0.
func matchLabel(s string) (m68kcount.Span, bool) {
	end := 0
	for end < len(s) && !isSpace(s[end]) && s[end] != ';' && s[end] != '*' {
		end++
	}
	if end == 0 {
		return m68kcount.Span{}, false
	}
	return m68kcount.Span{Kind: m68kcount.SpanLabel, Start: 0, End: end}, true
}

// matchComment finds a full-line '*' comment or the first unquoted,
// unescaped ';'.
func matchComment(s string) (m68kcount.Span, bool) {
	trimmed := strings.TrimLeft(s, " \t")
	if strings.HasPrefix(trimmed, "*") {
		return m68kcount.Span{Kind: m68kcount.SpanComment, Start: 0, End: len(s)}, true
	}

	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			return m68kcount.Span{Kind: m68kcount.SpanComment, Start: i, End: len(s)}, true
		}
	}
	return m68kcount.Span{}, false
}

// matchMnemonic finds the first vocabulary word in s[from:to] that is
// preceded by whitespace or ':' and followed by a word boundary, with an
// optional size suffix.
func (t *Tokenizer) matchMnemonic(s string, from, to int) (m68kcount.Span, bool) {
	for i := max(from, 1); i < to; i++ {
		prev := s[i-1]
		if !isSpace(prev) && prev != ':' {
			continue
		}
		if !isWordChar(s[i]) {
			continue
		}
		end := i
		for end < to && isWordChar(s[end]) {
			end++
		}
		if !t.vocabulary[strings.ToLower(s[i:end])] {
			i = end
			continue
		}
		if end+1 < to && s[end] == '.' && isSizeSuffix(s[end+1]) && (end+2 == len(s) || !isWordChar(s[end+2])) {
			end += 2
		}
		return m68kcount.Span{Kind: m68kcount.SpanMnemonic, Start: i, End: end}, true
	}
	return m68kcount.Span{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isWordChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isSizeSuffix(c byte) bool {
	switch c {
	case 'b', 'w', 'l', 's', 'B', 'W', 'L', 'S':
		return true
	}
	return false
}
