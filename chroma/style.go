package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/m68kcount"
)

// StyleFromPalette returns a function that maps chroma token types to m68kcount styles
// based on the provided palette colors.
func StyleFromPalette(p m68kcount.Palette) StyleFunc {
	return func(tt chromalib.TokenType) m68kcount.Style {
		switch tt {
		// Registers
		case chromalib.NameBuiltin, chromalib.NameBuiltinPseudo:
			return m68kcount.Style{Foreground: string(p.Register), Bold: true}

		// Size suffixes
		case chromalib.KeywordType:
			return m68kcount.Style{Foreground: string(p.Mnemonic)}

		// Labels referenced as operands
		case chromalib.Name, chromalib.NameLabel:
			return m68kcount.Style{Foreground: string(p.Label)}

		// Comments
		case chromalib.Comment, chromalib.CommentSingle:
			return m68kcount.Style{Foreground: string(p.Comment)}

		// Strings
		case chromalib.String, chromalib.StringChar, chromalib.StringDouble, chromalib.StringSingle:
			return m68kcount.Style{Foreground: string(p.String)}

		// Numbers
		case chromalib.Number, chromalib.NumberBin, chromalib.NumberHex,
			chromalib.NumberInteger, chromalib.NumberOct:
			return m68kcount.Style{Foreground: string(p.Number)}

		// Operators
		case chromalib.Operator:
			return m68kcount.Style{Foreground: string(p.Operator)}

		// Punctuation
		case chromalib.Punctuation:
			return m68kcount.Style{Foreground: string(p.Punctuation)}

		default:
			return m68kcount.Style{}
		}
	}
}
