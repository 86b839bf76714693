package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/m68kcount/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("reads file contents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "loop.s")
		require.NoError(t, os.WriteFile(path, []byte("\tmove.w\td0,d1\n"), 0o644))

		got, err := fs.NewLoader().Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "\tmove.w\td0,d1\n", got)
	})

	t.Run("missing file wraps not-exist", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.s"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("rejects directories", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewLoader().Load(context.Background(), t.TempDir())

		assert.ErrorContains(t, err, "is a directory")
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "big.s")
		require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

		_, err := (&fs.Loader{MaxSize: 10}).Load(context.Background(), path)

		assert.ErrorContains(t, err, "larger than")
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewLoader().Load(ctx, "whatever.s")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
