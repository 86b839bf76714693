// Package m68k annotates Motorola 68000 assembly source with instruction
// timings and sizes.
package m68k

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/m68kcount"
)

// Compile-time interface verification.
var _ m68kcount.Analyzer = (*Analyzer)(nil)

// ErrNotText is returned for input that is not assembly source text.
var ErrNotText = errors.New("m68k: input is not text")

// Analyzer implements m68kcount.Analyzer for the 68000.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns one annotated line per source line. Lines that do not
// hold a recognized instruction or data directive carry no annotation.
func (a *Analyzer) Analyze(source string) ([]m68kcount.Line, error) {
	if !utf8.ValidString(source) || strings.IndexByte(source, 0) >= 0 {
		return nil, ErrNotText
	}
	texts := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	lines := make([]m68kcount.Line, len(texts))
	for i, text := range texts {
		lines[i] = analyzeLine(text)
	}
	return lines, nil
}

func analyzeLine(text string) m68kcount.Line {
	line := m68kcount.Line{Text: text}
	st := parseStatement(text)
	if st.mnemonic == "" {
		return line
	}

	name, size, ok := splitMnemonic(st.mnemonic)
	if !ok {
		return line
	}

	if name == "dc" || name == "ds" {
		line.Words = dataWords(name, size, st.operands)
		return line
	}

	h, ok := lookup(name)
	if !ok {
		return line
	}
	in := instruction{name: name, size: size}
	for _, raw := range SplitOperands(st.operands) {
		in.operands = append(in.operands, ParseOperand(raw))
	}
	c, ok := h(in)
	if !ok {
		return line
	}

	line.Words = c.words
	line.Timings = c.timings
	line.Labels = c.labels
	line.Calculation = c.calc
	return line
}

// maxDataBytes bounds the size of a ds directive, the whole 68000 address space.
const maxDataBytes = 1 << 24

// dataWords returns the size in words of a dc or ds directive.
func dataWords(name string, size Size, operands string) int {
	unit := 2
	switch size {
	case SizeByte:
		unit = 1
	case SizeLong:
		unit = 4
	}

	var bytes int
	if name == "ds" {
		n, ok := ParseNumber(operands)
		if !ok || n < 0 || n > maxDataBytes/int64(unit) {
			return 0
		}
		bytes = int(n) * unit
	} else {
		for _, v := range SplitOperands(operands) {
			if unit == 1 && len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
				bytes += len(v) - 2
				continue
			}
			bytes += unit
		}
	}
	return (bytes + 1) / 2
}
