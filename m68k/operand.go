package m68k

import (
	"math/bits"
	"regexp"
	"strconv"
	"strings"
)

// Mode is an addressing mode of an operand.
type Mode int

// Addressing modes.
const (
	ModeInvalid  Mode = iota
	ModeDn            // Dn
	ModeAn            // An
	ModeInd           // (An)
	ModePostInc       // (An)+
	ModePreDec        // -(An)
	ModeDisp          // d16(An)
	ModeIndex         // d8(An,Xn)
	ModeAbsW          // xxx.W
	ModeAbsL          // xxx.L
	ModePCDisp        // d16(PC)
	ModePCIndex       // d8(PC,Xn)
	ModeImm           // #imm
	ModeRegList       // d0-d7/a0-a6
	ModeSpecial       // SR, CCR, USP
)

// Operand is a classified instruction operand.
type Operand struct {
	Raw  string
	Mode Mode
	Reg  string // Lowercase register name for register and special modes
}

// IsMemory reports whether the operand addresses memory.
func (o Operand) IsMemory() bool {
	switch o.Mode {
	case ModeInd, ModePostInc, ModePreDec, ModeDisp, ModeIndex,
		ModeAbsW, ModeAbsL, ModePCDisp, ModePCIndex:
		return true
	}
	return false
}

var (
	reDataRegister    = regexp.MustCompile(`(?i)^d[0-7]$`)
	reAddressRegister = regexp.MustCompile(`(?i)^(a[0-7]|sp)$`)
	reIndirect        = regexp.MustCompile(`(?i)^\((a[0-7]|sp)\)$`)
	rePostInc         = regexp.MustCompile(`(?i)^\((a[0-7]|sp)\)\+$`)
	rePreDec          = regexp.MustCompile(`(?i)^-\((a[0-7]|sp)\)$`)
	reDisp            = regexp.MustCompile(`(?i)^(.+)\((a[0-7]|sp)\)$`)
	reDispParen       = regexp.MustCompile(`(?i)^\((.+),\s*(a[0-7]|sp)\)$`)
	reIndex           = regexp.MustCompile(`(?i)^(.*)\((a[0-7]|sp),\s*[ad][0-7](\.[wl])?(\*[1248])?\)$`)
	reIndexParen      = regexp.MustCompile(`(?i)^\((.+),\s*(a[0-7]|sp),\s*[ad][0-7](\.[wl])?(\*[1248])?\)$`)
	rePCDisp          = regexp.MustCompile(`(?i)^(.+)\(pc\)$|^\((.+),\s*pc\)$`)
	rePCIndex         = regexp.MustCompile(`(?i)^(.*)\(pc,\s*[ad][0-7](\.[wl])?(\*[1248])?\)$|^\((.+),\s*pc,\s*[ad][0-7](\.[wl])?(\*[1248])?\)$`)
	reAbsW            = regexp.MustCompile(`(?i)^\(?[^()]+\)?\.w$`)
	reAbsL            = regexp.MustCompile(`(?i)^\(?[^()]+\)?(\.l)?$`)
	reSpecial         = regexp.MustCompile(`(?i)^(sr|ccr|usp)$`)
	reRegRange        = regexp.MustCompile(`(?i)^([ad])([0-7])-([ad])([0-7])$`)
)

// ParseOperand classifies an operand string by addressing mode.
func ParseOperand(s string) Operand {
	s = strings.TrimSpace(s)
	op := Operand{Raw: s}
	lower := strings.ToLower(s)

	switch {
	case s == "":
		op.Mode = ModeInvalid
	case reDataRegister.MatchString(s):
		op.Mode, op.Reg = ModeDn, lower
	case reAddressRegister.MatchString(s):
		op.Mode, op.Reg = ModeAn, lower
	case reSpecial.MatchString(s):
		op.Mode, op.Reg = ModeSpecial, lower
	case strings.HasPrefix(s, "#"):
		op.Mode = ModeImm
	case reIndirect.MatchString(s):
		op.Mode = ModeInd
	case rePostInc.MatchString(s):
		op.Mode = ModePostInc
	case rePreDec.MatchString(s):
		op.Mode = ModePreDec
	case rePCIndex.MatchString(s):
		op.Mode = ModePCIndex
	case rePCDisp.MatchString(s):
		op.Mode = ModePCDisp
	case reIndex.MatchString(s), reIndexParen.MatchString(s):
		op.Mode = ModeIndex
	case reDisp.MatchString(s), reDispParen.MatchString(s):
		op.Mode = ModeDisp
	case isRegList(s):
		op.Mode = ModeRegList
	case reAbsW.MatchString(s):
		op.Mode = ModeAbsW
	case reAbsL.MatchString(s):
		op.Mode = ModeAbsL
	}
	return op
}

// isRegList reports whether s is a register list containing a range or
// more than one register. Single registers are classified as Dn or An.
func isRegList(s string) bool {
	if !strings.ContainsAny(s, "/-") {
		return false
	}
	_, ok := countRegisters(s)
	return ok
}

// countRegisters returns the number of distinct registers in a movem
// register list such as "d0-d7/a0-a6".
func countRegisters(s string) (int, bool) {
	var mask uint16
	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		if m := reRegRange.FindStringSubmatch(part); m != nil {
			from := regIndex(m[1], m[2])
			to := regIndex(m[3], m[4])
			if from > to {
				from, to = to, from
			}
			for i := from; i <= to; i++ {
				mask |= 1 << i
			}
			continue
		}
		lower := strings.ToLower(part)
		switch {
		case reDataRegister.MatchString(part):
			mask |= 1 << regIndex("d", lower[1:])
		case lower == "sp":
			mask |= 1 << 15
		case reAddressRegister.MatchString(part):
			mask |= 1 << regIndex("a", lower[1:])
		default:
			return 0, false
		}
	}
	return bits.OnesCount16(mask), true
}

func regIndex(kind, num string) int {
	n, _ := strconv.Atoi(num)
	if strings.EqualFold(kind, "a") {
		return 8 + n
	}
	return n
}

// SplitOperands splits an operand field on commas that are not inside
// parentheses or quotes.
func SplitOperands(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// ParseNumber parses a numeric literal in Motorola syntax: $hex, %binary,
// @octal or decimal, with an optional leading '#' or '-'.
func ParseNumber(s string) (int64, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		base, s = 16, s[1:]
	case strings.HasPrefix(s, "%"):
		base, s = 2, s[1:]
	case strings.HasPrefix(s, "@"):
		base, s = 8, s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	}
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
