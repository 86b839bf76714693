package m68kcount

// ColorPair represents a foreground and background color combination.
// Colors are hex strings in "#RRGGBB" format; empty means terminal default.
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of a listing.
type Styles struct {
	LineNumber ColorPair // Gutter line numbers
	Selected   ColorPair // Lines inside a committed range
	Preview    ColorPair // Lines inside a pending or hover preview
	Cursor     ColorPair // Keyboard cursor line
	Totals     ColorPair // Whole-document totals header
	RangeTotal ColorPair // Range totals row above a committed selection
	Detail     ColorPair // Calculation breakdown rows
	StatusBar  ColorPair
}

// Color is a hex color string.
type Color string

// Palette holds semantic colors for syntax and severity levels.
type Palette struct {
	Background Color
	Foreground Color

	// Source line parts
	Label    Color
	Mnemonic Color
	Comment  Color

	// Operands
	Register    Color
	Number      Color
	String      Color
	Operator    Color
	Punctuation Color

	// Severity levels
	Low      Color
	Med      Color
	High     Color
	VeryHigh Color

	// UI
	UIAccent Color
}

// LevelColor returns the palette color for a severity level.
func (p Palette) LevelColor(l Level) Color {
	switch l {
	case LevelMed:
		return p.Med
	case LevelHigh:
		return p.High
	case LevelVeryHigh:
		return p.VeryHigh
	default:
		return p.Low
	}
}

// Theme provides styles for rendering listings.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
