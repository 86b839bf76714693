// Package clipboard provides clipboard operations via the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/m68kcount"
)

// Ensure System implements the Clipboard interface.
var _ m68kcount.Clipboard = (*System)(nil)

// System implements Clipboard using the platform clipboard tools
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard tool was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: %w", m68kcount.ErrClipboardUnavailable)
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
