// Package fs loads assembly source from the file system.
package fs

import (
	"context"
	"fmt"
	"os"

	"github.com/fwojciec/m68kcount"
)

// Compile-time interface verification.
var _ m68kcount.SourceLoader = (*Loader)(nil)

// DefaultMaxSize is the largest source file Loader reads by default.
const DefaultMaxSize = 8 << 20

// Loader reads source files from disk.
type Loader struct {
	MaxSize int64
}

// NewLoader creates a Loader with DefaultMaxSize.
func NewLoader() *Loader {
	return &Loader{MaxSize: DefaultMaxSize}
}

// Load returns the contents of the file at path.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("loading %s: is a directory", path)
	}
	if l.MaxSize > 0 && info.Size() > l.MaxSize {
		return "", fmt.Errorf("loading %s: file is larger than %d bytes", path, l.MaxSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}
	return string(data), nil
}
