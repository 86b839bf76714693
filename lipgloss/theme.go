// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/m68kcount"
)

// Compile-time interface verification.
var _ m68kcount.Theme = (*Theme)(nil)

// Theme implements m68kcount.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  m68kcount.Styles
	palette m68kcount.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() m68kcount.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() m68kcount.Palette {
	return t.palette
}

// DefaultTheme returns the theme matching the terminal background.
func DefaultTheme() *Theme {
	if !lipgloss.HasDarkBackground() {
		return LightTheme()
	}
	return DarkTheme()
}

// ThemeByName returns the named theme: "dark", "light", or "" for the default.
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "":
		return DefaultTheme(), nil
	case "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: m68kcount.Styles{
			LineNumber: m68kcount.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Selected: m68kcount.ColorPair{
				Background: "#313244", // Dark surface - syntax colors stay readable
			},
			Preview: m68kcount.ColorPair{
				Background: "#232334", // Between base and surface
			},
			Cursor: m68kcount.ColorPair{
				Foreground: "#89b4fa", // Blue gutter marker
			},
			Totals: m68kcount.ColorPair{
				Foreground: "#f9e2af", // Yellow
				Background: "#313244",
			},
			RangeTotal: m68kcount.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#89b4fa",
			},
			Detail: m68kcount.ColorPair{
				Foreground: "#a6adc8",
			},
			StatusBar: m68kcount.ColorPair{
				Foreground: "#a6adc8",
				Background: "#313244",
			},
		},
		palette: m68kcount.Palette{
			// Base colors (Catppuccin Mocha)
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			Label:    "#89b4fa",
			Mnemonic: "#cba6f7",
			Comment:  "#6c7086",

			Register:    "#f9e2af",
			Number:      "#fab387",
			String:      "#a6e3a1",
			Operator:    "#89dceb",
			Punctuation: "#9399b2",

			Low:      "#a6e3a1",
			Med:      "#f9e2af",
			High:     "#fab387",
			VeryHigh: "#f38ba8",

			UIAccent: "#89b4fa",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: m68kcount.Styles{
			LineNumber: m68kcount.ColorPair{
				Foreground: "#9ca0b0",
			},
			Selected: m68kcount.ColorPair{
				Background: "#dce0e8", // Light surface
			},
			Preview: m68kcount.ColorPair{
				Background: "#e6e9ef",
			},
			Cursor: m68kcount.ColorPair{
				Foreground: "#1e66f5",
			},
			Totals: m68kcount.ColorPair{
				Foreground: "#df8e1d",
				Background: "#e6e9ef",
			},
			RangeTotal: m68kcount.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#1e66f5",
			},
			Detail: m68kcount.ColorPair{
				Foreground: "#6c6f85",
			},
			StatusBar: m68kcount.ColorPair{
				Foreground: "#6c6f85",
				Background: "#e6e9ef",
			},
		},
		palette: m68kcount.Palette{
			// Base colors (Catppuccin Latte)
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			Label:    "#1e66f5",
			Mnemonic: "#8839ef",
			Comment:  "#9ca0b0",

			Register:    "#df8e1d",
			Number:      "#fe640b",
			String:      "#40a02b",
			Operator:    "#04a5e5",
			Punctuation: "#6c6f85",

			Low:      "#40a02b",
			Med:      "#df8e1d",
			High:     "#fe640b",
			VeryHigh: "#d20f39",

			UIAccent: "#1e66f5",
		},
	}
}
