package mock

import "github.com/fwojciec/m68kcount"

// Compile-time interface verification.
var _ m68kcount.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of m68kcount.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
