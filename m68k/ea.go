package m68k

import "github.com/fwojciec/m68kcount"

// Size is an operation size.
type Size int

// Operation sizes. SizeNone means no suffix was given.
const (
	SizeNone Size = iota
	SizeByte
	SizeWord
	SizeLong
	SizeShort
)

// ParseSize converts a size suffix letter.
func ParseSize(s string) (Size, bool) {
	switch s {
	case "":
		return SizeNone, true
	case "b", "B":
		return SizeByte, true
	case "w", "W":
		return SizeWord, true
	case "l", "L":
		return SizeLong, true
	case "s", "S":
		return SizeShort, true
	}
	return SizeNone, false
}

func timing(clock, read, write int) m68kcount.Timing {
	return m68kcount.Timing{Clock: clock, Read: read, Write: write}
}

// eaTime returns the time to calculate an effective address and fetch a
// byte/word (long false) or long operand from it.
func eaTime(op Operand, long bool) m68kcount.Timing {
	pick := func(bw, l m68kcount.Timing) m68kcount.Timing {
		if long {
			return l
		}
		return bw
	}
	switch op.Mode {
	case ModeInd, ModePostInc:
		return pick(timing(4, 1, 0), timing(8, 2, 0))
	case ModePreDec:
		return pick(timing(6, 1, 0), timing(10, 2, 0))
	case ModeDisp, ModeAbsW, ModePCDisp:
		return pick(timing(8, 2, 0), timing(12, 3, 0))
	case ModeIndex, ModePCIndex:
		return pick(timing(10, 2, 0), timing(14, 3, 0))
	case ModeAbsL:
		return pick(timing(12, 3, 0), timing(16, 4, 0))
	case ModeImm:
		return pick(timing(4, 1, 0), timing(8, 2, 0))
	}
	return m68kcount.Timing{}
}

// moveDestTime returns the cost of writing a move result to op.
func moveDestTime(op Operand, long bool) m68kcount.Timing {
	pick := func(bw, l m68kcount.Timing) m68kcount.Timing {
		if long {
			return l
		}
		return bw
	}
	switch op.Mode {
	case ModeInd, ModePostInc, ModePreDec:
		return pick(timing(4, 0, 1), timing(8, 0, 2))
	case ModeDisp, ModeAbsW:
		return pick(timing(8, 1, 1), timing(12, 1, 2))
	case ModeIndex:
		return pick(timing(10, 1, 1), timing(14, 1, 2))
	case ModeAbsL:
		return pick(timing(12, 2, 1), timing(16, 2, 2))
	}
	return m68kcount.Timing{}
}

// extWords returns the number of extension words an operand adds to an
// instruction.
func extWords(op Operand, long bool) int {
	switch op.Mode {
	case ModeDisp, ModeIndex, ModeAbsW, ModePCDisp, ModePCIndex:
		return 1
	case ModeAbsL:
		return 2
	case ModeImm:
		if long {
			return 2
		}
		return 1
	}
	return 0
}

// isDataAlterable reports whether op may be the destination of a
// read-modify-write operation.
func isDataAlterable(op Operand) bool {
	switch op.Mode {
	case ModeDn, ModeInd, ModePostInc, ModePreDec, ModeDisp, ModeIndex, ModeAbsW, ModeAbsL:
		return true
	}
	return false
}

// isControl reports whether op is a control addressing mode, as used by
// lea, pea, jmp, jsr and movem.
func isControl(op Operand) bool {
	switch op.Mode {
	case ModeInd, ModeDisp, ModeIndex, ModeAbsW, ModeAbsL, ModePCDisp, ModePCIndex:
		return true
	}
	return false
}
