package m68kcount

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTiming renders a timing as "clock(read/write)".
func FormatTiming(t Timing) string {
	return fmt.Sprintf("%d(%d/%d)", t.Clock, t.Read, t.Write)
}

// FormatMultiplied renders base with the per-repeat cost appended to every
// component the multiplier affects, e.g. "8+8n(2/0+2n)".
func FormatMultiplied(base, multiplier Timing) string {
	part := func(v, m int) string {
		s := strconv.Itoa(v)
		if m != 0 {
			s += "+" + strconv.Itoa(m) + "n"
		}
		return s
	}
	return fmt.Sprintf("%s(%s/%s)",
		part(base.Clock, multiplier.Clock),
		part(base.Read, multiplier.Read),
		part(base.Write, multiplier.Write))
}

// FormatTotals renders totals on a single line:
// "timing words (bytes)" or "min–max words (bytes)" for ranges.
func FormatTotals(t Totals) string {
	var sb strings.Builder
	sb.WriteString(FormatTotalsTiming(t))
	fmt.Fprintf(&sb, " %s (%s)", plural(t.Words, "word"), plural(t.Bytes, "byte"))
	return sb.String()
}

// FormatTotalsTiming renders only the timing part of totals.
func FormatTotalsTiming(t Totals) string {
	if t.IsRange {
		return FormatTiming(t.Min) + "–" + FormatTiming(t.Max)
	}
	return FormatTiming(t.Min)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// DetailRow is one row of the expandable calculation breakdown of a line.
type DetailRow struct {
	Label string // Optional, e.g. "Branch taken" or "+ EA"
	Value string
}

// HasDetail reports whether the line has a breakdown worth expanding.
func HasDetail(line Line) bool {
	return len(Breakdown(line)) > 0
}

// Breakdown explains how the timings of a line were computed.
// It lists each outcome of a multi-outcome instruction, then the base cost
// (with multiplier), the repeat count and the effective address cost when
// they apply.
func Breakdown(line Line) []DetailRow {
	var rows []DetailRow
	if line.IsMultiple() {
		for i, t := range line.Timings {
			label := ""
			if i < len(line.Labels) {
				label = line.Labels[i]
			}
			rows = append(rows, DetailRow{Label: label, Value: FormatTiming(t)})
		}
	}

	calc := line.Calculation
	if calc == nil {
		return rows
	}
	hasEA := calc.EA != nil && calc.EA.Clock > 0
	hasMultiplier := calc.Multiplier != nil
	if !hasEA && !hasMultiplier {
		return rows
	}

	if hasMultiplier {
		rows = append(rows, DetailRow{Value: FormatMultiplied(calc.Base, *calc.Multiplier)})
		n := "unknown"
		if calc.N != nil {
			n = strconv.Itoa(*calc.N)
		}
		rows = append(rows, DetailRow{Value: "n = " + n})
	} else {
		rows = append(rows, DetailRow{Value: FormatTiming(calc.Base)})
	}
	if hasEA {
		rows = append(rows, DetailRow{Label: "+ EA", Value: FormatTiming(*calc.EA)})
	}
	return rows
}
