package bubbletea_test

import (
	"testing"

	"github.com/fwojciec/m68kcount/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestExpandTabs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		col     int
		want    string
		wantCol int
	}{
		{name: "empty", in: "", col: 3, want: "", wantCol: 3},
		{name: "no tabs", in: "rts", want: "rts", wantCol: 3},
		{name: "leading tab", in: "\tnop", want: "        nop", wantCol: 11},
		{name: "label then tab", in: "loop:\tdbf", want: "loop:   dbf", wantCol: 11},
		{name: "tab at a stop", in: "start:\t\tmove", want: "start:          move", wantCol: 20},
		{name: "continues from column", in: "\td0", col: 14, want: "  d0", wantCol: 18},
		{name: "wide runes", in: "日本\tx", want: "日本    x", wantCol: 9},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, col := bubbletea.ExpandTabs(tt.in, tt.col)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCol, col)
		})
	}

	t.Run("pieces share tab stops", func(t *testing.T) {
		t.Parallel()

		a, col := bubbletea.ExpandTabs("\tmove.w", 0)
		b, _ := bubbletea.ExpandTabs("\td0,d1", col)
		whole, _ := bubbletea.ExpandTabs("\tmove.w\td0,d1", 0)

		assert.Equal(t, whole, a+b)
	})
}
