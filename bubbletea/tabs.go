package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the distance between tab stops in source text.
const tabWidth = 8

// ExpandTabs replaces each tab in s with spaces up to the next tab stop.
// s starts at display column col; the column after the expanded text is
// returned so consecutive pieces of a line share tab stops.
func ExpandTabs(s string, col int) (string, int) {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r != '\t' {
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
			continue
		}
		n := tabWidth - col%tabWidth
		sb.WriteString(strings.Repeat(" ", n))
		col += n
	}
	return sb.String(), col
}
