package chroma_test

import (
	"testing"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/m68kcount"
	"github.com/fwojciec/m68kcount/chroma"
	"github.com/stretchr/testify/assert"
)

func testPalette() m68kcount.Palette {
	return m68kcount.Palette{
		Background:  "#000000",
		Foreground:  "#ffffff",
		Label:       "#0000ff",
		Mnemonic:    "#ff00ff",
		Comment:     "#888888",
		Register:    "#ffff00",
		Number:      "#ff8800",
		String:      "#00ff00",
		Operator:    "#00ffff",
		Punctuation: "#aaaaaa",
	}
}

func TestStyleFromPalette(t *testing.T) {
	t.Parallel()

	styleFunc := chroma.StyleFromPalette(testPalette())

	t.Run("registers are bold with palette color", func(t *testing.T) {
		t.Parallel()
		style := styleFunc(chromalib.NameBuiltin)
		assert.Equal(t, "#ffff00", style.Foreground)
		assert.True(t, style.Bold)
	})

	t.Run("strings use palette color", func(t *testing.T) {
		t.Parallel()
		style := styleFunc(chromalib.String)
		assert.Equal(t, "#00ff00", style.Foreground)
	})

	t.Run("numbers use palette color", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "#ff8800", styleFunc(chromalib.Number).Foreground)
		assert.Equal(t, "#ff8800", styleFunc(chromalib.NumberHex).Foreground)
	})

	t.Run("operators use palette color", func(t *testing.T) {
		t.Parallel()
		style := styleFunc(chromalib.Operator)
		assert.Equal(t, "#00ffff", style.Foreground)
	})

	t.Run("symbols use label color", func(t *testing.T) {
		t.Parallel()
		style := styleFunc(chromalib.Name)
		assert.Equal(t, "#0000ff", style.Foreground)
	})

	t.Run("size suffixes use mnemonic color", func(t *testing.T) {
		t.Parallel()
		style := styleFunc(chromalib.KeywordType)
		assert.Equal(t, "#ff00ff", style.Foreground)
	})

	t.Run("punctuation uses palette color", func(t *testing.T) {
		t.Parallel()
		style := styleFunc(chromalib.Punctuation)
		assert.Equal(t, "#aaaaaa", style.Foreground)
	})

	t.Run("unknown token types return empty style", func(t *testing.T) {
		t.Parallel()
		style := styleFunc(chromalib.Error)
		assert.Empty(t, style.Foreground)
		assert.False(t, style.Bold)
	})
}
