// Package mock provides test doubles for m68kcount interfaces.
package mock

import "github.com/fwojciec/m68kcount"

// Compile-time interface verification.
var _ m68kcount.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of m68kcount.Analyzer.
type Analyzer struct {
	AnalyzeFn func(source string) ([]m68kcount.Line, error)
}

func (a *Analyzer) Analyze(source string) ([]m68kcount.Line, error) {
	return a.AnalyzeFn(source)
}
