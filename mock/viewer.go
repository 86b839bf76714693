package mock

import (
	"context"

	"github.com/fwojciec/m68kcount"
)

// Compile-time interface verification.
var _ m68kcount.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of m68kcount.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, session *m68kcount.Session) error
}

func (v *Viewer) View(ctx context.Context, session *m68kcount.Session) error {
	return v.ViewFn(ctx, session)
}
