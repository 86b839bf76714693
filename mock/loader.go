package mock

import (
	"context"

	"github.com/fwojciec/m68kcount"
)

// Compile-time interface verification.
var _ m68kcount.SourceLoader = (*SourceLoader)(nil)

// SourceLoader is a mock implementation of m68kcount.SourceLoader.
type SourceLoader struct {
	LoadFn func(ctx context.Context, path string) (string, error)
}

func (l *SourceLoader) Load(ctx context.Context, path string) (string, error) {
	return l.LoadFn(ctx, path)
}
