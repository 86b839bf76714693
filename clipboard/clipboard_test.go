package clipboard_test

import (
	"testing"

	atotto "github.com/atotto/clipboard"
	"github.com/fwojciec/m68kcount"
	"github.com/fwojciec/m68kcount/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Copy(t *testing.T) {
	t.Parallel()

	cb := clipboard.NewSystem()

	if !cb.Available() {
		err := cb.Copy("anything")
		assert.ErrorIs(t, err, m68kcount.ErrClipboardUnavailable)
		return
	}

	testContent := "4(1/0) 1 word (2 bytes)"
	if err := cb.Copy(testContent); err != nil {
		// Tools such as xclip exist but fail without a display.
		t.Skipf("clipboard not usable here: %v", err)
	}

	out, err := atotto.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, testContent, out)
}
