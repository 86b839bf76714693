package m68k

import (
	"math/bits"
	"sort"
	"strings"

	"github.com/fwojciec/m68kcount"
)

// instruction is a parsed instruction ready for timing lookup.
type instruction struct {
	name     string // Lowercase mnemonic without size
	size     Size
	operands []Operand
}

func (in instruction) long() bool { return in.size == SizeLong }

func (in instruction) operand(i int) Operand {
	if i < len(in.operands) {
		return in.operands[i]
	}
	return Operand{}
}

// cost is the annotation computed for one instruction.
type cost struct {
	timings []m68kcount.Timing
	labels  []string
	words   int
	calc    *m68kcount.Calculation
}

// handler computes the cost of an instruction. ok is false when the
// operand combination is not valid for the instruction.
type handler func(in instruction) (c cost, ok bool)

// fixed returns a cost that does not depend on operands.
func fixed(t m68kcount.Timing, words int) cost {
	return cost{timings: []m68kcount.Timing{t}, words: words}
}

// withEA returns a cost of base plus an effective address cost, recording
// the breakdown when the address cost is non-zero.
func withEA(base, ea m68kcount.Timing, words int) cost {
	c := cost{timings: []m68kcount.Timing{base.Add(ea)}, words: words}
	if !ea.IsZero() {
		ea := ea
		c.calc = &m68kcount.Calculation{Base: base, EA: &ea}
	}
	return c
}

// repeated returns a cost of base plus ea plus n repeats of mult. A
// negative n means the count is unknown and evaluates as zero.
func repeated(base, ea, mult m68kcount.Timing, n, words int) cost {
	total := base.Add(ea)
	calc := &m68kcount.Calculation{Base: base, Multiplier: &mult}
	if !ea.IsZero() {
		calc.EA = &ea
	}
	if n >= 0 {
		total = total.Add(timing(mult.Clock*n, mult.Read*n, mult.Write*n))
		calc.N = &n
	}
	return cost{timings: []m68kcount.Timing{total}, words: words, calc: calc}
}

func pickSize(long bool, bw, l m68kcount.Timing) m68kcount.Timing {
	if long {
		return l
	}
	return bw
}

// conditions are the condition code suffixes of Bcc, DBcc and Scc,
// including the hs/lo aliases.
var conditions = []string{
	"t", "f", "hi", "ls", "cc", "cs", "ne", "eq",
	"vc", "vs", "pl", "mi", "ge", "lt", "gt", "le",
	"hs", "lo",
}

func isCondition(s string) bool {
	for _, c := range conditions {
		if c == s {
			return true
		}
	}
	return false
}

var handlers = map[string]handler{
	"move":  move,
	"movea": move,
	"moveq": func(in instruction) (cost, bool) { return fixed(timing(4, 1, 0), 1), len(in.operands) == 2 },
	"movem": movem,
	"movep": movep,

	"add":  alu("add"),
	"sub":  alu("sub"),
	"and":  alu("and"),
	"or":   alu("or"),
	"eor":  alu("eor"),
	"cmp":  alu("cmp"),
	"adda": address("adda"),
	"suba": address("suba"),
	"cmpa": address("cmpa"),
	"addi": immediate("addi"),
	"subi": immediate("subi"),
	"andi": immediate("andi"),
	"ori":  immediate("ori"),
	"eori": immediate("eori"),
	"cmpi": immediate("cmpi"),
	"addq": quick,
	"subq": quick,
	"addx": extended(timing(4, 1, 0), timing(8, 1, 0), timing(18, 3, 1), timing(30, 5, 2)),
	"subx": extended(timing(4, 1, 0), timing(8, 1, 0), timing(18, 3, 1), timing(30, 5, 2)),
	"abcd": extended(timing(6, 1, 0), timing(6, 1, 0), timing(18, 3, 1), timing(18, 3, 1)),
	"sbcd": extended(timing(6, 1, 0), timing(6, 1, 0), timing(18, 3, 1), timing(18, 3, 1)),
	"cmpm": func(in instruction) (cost, bool) {
		return fixed(pickSize(in.long(), timing(12, 3, 0), timing(20, 5, 0)), 1), in.operand(0).Mode == ModePostInc
	},

	"clr":  unary(timing(4, 1, 0), timing(6, 1, 0), timing(8, 1, 1), timing(12, 1, 2)),
	"neg":  unary(timing(4, 1, 0), timing(6, 1, 0), timing(8, 1, 1), timing(12, 1, 2)),
	"negx": unary(timing(4, 1, 0), timing(6, 1, 0), timing(8, 1, 1), timing(12, 1, 2)),
	"not":  unary(timing(4, 1, 0), timing(6, 1, 0), timing(8, 1, 1), timing(12, 1, 2)),
	"nbcd": unary(timing(6, 1, 0), timing(6, 1, 0), timing(8, 1, 1), timing(8, 1, 1)),
	"tas":  unary(timing(4, 1, 0), timing(4, 1, 0), timing(14, 2, 1), timing(14, 2, 1)),
	"tst":  tst,
	"chk": func(in instruction) (cost, bool) {
		src := in.operand(0)
		return withEA(timing(10, 1, 0), eaTime(src, false), 1+extWords(src, false)), in.operand(1).Mode == ModeDn
	},

	"mulu": multiply(false),
	"muls": multiply(true),
	"divu": divide(timing(140, 1, 0)),
	"divs": divide(timing(158, 1, 0)),

	"asl":  shift,
	"asr":  shift,
	"lsl":  shift,
	"lsr":  shift,
	"rol":  shift,
	"ror":  shift,
	"roxl": shift,
	"roxr": shift,

	"btst": bit(timing(6, 1, 0), timing(10, 2, 0), timing(4, 1, 0), timing(8, 2, 0)),
	"bchg": bit(timing(8, 1, 0), timing(12, 2, 0), timing(8, 1, 1), timing(12, 2, 1)),
	"bclr": bit(timing(10, 1, 0), timing(14, 2, 0), timing(8, 1, 1), timing(12, 2, 1)),
	"bset": bit(timing(8, 1, 0), timing(12, 2, 0), timing(8, 1, 1), timing(12, 2, 1)),

	"lea": control(map[Mode]m68kcount.Timing{
		ModeInd: timing(4, 1, 0), ModeDisp: timing(8, 2, 0), ModeIndex: timing(12, 2, 0),
		ModeAbsW: timing(8, 2, 0), ModeAbsL: timing(12, 3, 0),
		ModePCDisp: timing(8, 2, 0), ModePCIndex: timing(12, 2, 0),
	}),
	"pea": control(map[Mode]m68kcount.Timing{
		ModeInd: timing(12, 1, 2), ModeDisp: timing(16, 2, 2), ModeIndex: timing(20, 2, 2),
		ModeAbsW: timing(16, 2, 2), ModeAbsL: timing(20, 3, 2),
		ModePCDisp: timing(16, 2, 2), ModePCIndex: timing(20, 2, 2),
	}),
	"jmp": control(map[Mode]m68kcount.Timing{
		ModeInd: timing(8, 2, 0), ModeDisp: timing(10, 2, 0), ModeIndex: timing(14, 3, 0),
		ModeAbsW: timing(10, 2, 0), ModeAbsL: timing(12, 3, 0),
		ModePCDisp: timing(10, 2, 0), ModePCIndex: timing(14, 3, 0),
	}),
	"jsr": control(map[Mode]m68kcount.Timing{
		ModeInd: timing(16, 2, 2), ModeDisp: timing(18, 2, 2), ModeIndex: timing(22, 2, 2),
		ModeAbsW: timing(18, 2, 2), ModeAbsL: timing(20, 3, 2),
		ModePCDisp: timing(18, 2, 2), ModePCIndex: timing(22, 2, 2),
	}),

	"bra": func(in instruction) (cost, bool) { return fixed(timing(10, 2, 0), branchWords(in)), true },
	"bsr": func(in instruction) (cost, bool) { return fixed(timing(18, 2, 2), branchWords(in)), true },

	"nop":     constant(timing(4, 1, 0), 1),
	"rts":     constant(timing(16, 4, 0), 1),
	"rte":     constant(timing(20, 5, 0), 1),
	"rtr":     constant(timing(20, 5, 0), 1),
	"reset":   constant(timing(132, 1, 0), 1),
	"stop":    constant(timing(4, 0, 0), 2),
	"trap":    constant(timing(34, 4, 3), 1),
	"trapv":   constant(timing(4, 1, 0), 1),
	"illegal": constant(timing(34, 4, 3), 1),
	"swap":    constant(timing(4, 1, 0), 1),
	"ext":     constant(timing(4, 1, 0), 1),
	"exg":     constant(timing(6, 1, 0), 1),
	"link":    constant(timing(16, 2, 2), 2),
	"unlk":    constant(timing(12, 3, 0), 1),
}

// lookup returns the handler for a mnemonic, resolving the Bcc, DBcc and
// Scc families and the dbra alias.
func lookup(name string) (handler, bool) {
	if h, ok := handlers[name]; ok {
		return h, true
	}
	if name == "dbra" {
		return dbcc("f"), true
	}
	if cc, ok := strings.CutPrefix(name, "db"); ok && isCondition(cc) {
		return dbcc(cc), true
	}
	if cc, ok := strings.CutPrefix(name, "b"); ok && isCondition(cc) && cc != "t" && cc != "f" {
		return bcc, true
	}
	if cc, ok := strings.CutPrefix(name, "s"); ok && isCondition(cc) {
		return scc(cc), true
	}
	return nil, false
}

// Mnemonics returns every instruction name the analyzer knows, sorted.
// It is the vocabulary for source tokenizers.
func Mnemonics() []string {
	names := make([]string, 0, len(handlers)+3*len(conditions))
	for name := range handlers {
		names = append(names, name)
	}
	for _, cc := range conditions {
		names = append(names, "db"+cc, "s"+cc)
		if cc != "t" && cc != "f" {
			names = append(names, "b"+cc)
		}
	}
	sort.Strings(names)
	return names
}

func constant(t m68kcount.Timing, words int) handler {
	return func(instruction) (cost, bool) { return fixed(t, words), true }
}

func move(in instruction) (cost, bool) {
	if len(in.operands) != 2 {
		return cost{}, false
	}
	src, dst := in.operands[0], in.operands[1]
	long := in.long()
	words := 1 + extWords(src, long) + extWords(dst, long)

	switch {
	case src.Mode == ModeSpecial && src.Reg == "usp", dst.Mode == ModeSpecial && dst.Reg == "usp":
		return fixed(timing(4, 1, 0), 1), true
	case src.Mode == ModeSpecial && src.Reg == "sr":
		if dst.Mode == ModeDn {
			return fixed(timing(6, 1, 0), 1), true
		}
		return withEA(timing(8, 1, 1), eaTime(dst, false), 1+extWords(dst, false)), isDataAlterable(dst)
	case dst.Mode == ModeSpecial:
		return withEA(timing(12, 2, 0), eaTime(src, false), 1+extWords(src, false)), true
	case src.Mode == ModeInvalid || src.Mode == ModeRegList:
		return cost{}, false
	}

	dest := moveDestTime(dst, long)
	if dst.Mode != ModeDn && dst.Mode != ModeAn && dest.IsZero() {
		return cost{}, false
	}
	return withEA(timing(4, 1, 0), eaTime(src, long).Add(dest), words), true
}

func movem(in instruction) (cost, bool) {
	if len(in.operands) != 2 {
		return cost{}, false
	}
	long := in.long()
	first, second := in.operands[0], in.operands[1]

	toMemory := second.IsMemory()
	list, mem := first, second
	if !toMemory {
		list, mem = second, first
	}
	n, ok := countRegisters(list.Raw)
	if !ok || !mem.IsMemory() {
		return cost{}, false
	}
	words := 2 + extWords(mem, false)

	if toMemory {
		var base m68kcount.Timing
		switch mem.Mode {
		case ModeInd, ModePreDec:
			base = timing(8, 2, 0)
		case ModeDisp, ModeAbsW:
			base = timing(12, 3, 0)
		case ModeIndex:
			base = timing(14, 3, 0)
		case ModeAbsL:
			base = timing(16, 4, 0)
		default:
			return cost{}, false
		}
		return repeated(base, m68kcount.Timing{}, pickSize(long, timing(4, 0, 1), timing(8, 0, 2)), n, words), true
	}

	var base m68kcount.Timing
	switch mem.Mode {
	case ModeInd, ModePostInc:
		base = timing(12, 3, 0)
	case ModeDisp, ModeAbsW, ModePCDisp:
		base = timing(16, 4, 0)
	case ModeIndex, ModePCIndex:
		base = timing(18, 4, 0)
	case ModeAbsL:
		base = timing(20, 5, 0)
	default:
		return cost{}, false
	}
	return repeated(base, m68kcount.Timing{}, pickSize(long, timing(4, 1, 0), timing(8, 2, 0)), n, words), true
}

func movep(in instruction) (cost, bool) {
	if len(in.operands) != 2 {
		return cost{}, false
	}
	long := in.long()
	if in.operands[0].Mode == ModeDn {
		return fixed(pickSize(long, timing(16, 2, 2), timing(24, 2, 4)), 2), in.operands[1].Mode == ModeDisp
	}
	return fixed(pickSize(long, timing(16, 4, 0), timing(24, 6, 0)), 2), in.operands[1].Mode == ModeDn
}

// alu handles add, sub, and, or, eor and cmp in their register and memory
// destination forms, delegating address and immediate forms.
func alu(name string) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 {
			return cost{}, false
		}
		src, dst := in.operands[0], in.operands[1]
		long := in.long()

		switch {
		case dst.Mode == ModeAn && (name == "add" || name == "sub" || name == "cmp"):
			return address(name+"a")(in)
		case src.Mode == ModeImm && dst.Mode != ModeDn:
			return immediate(name+"i")(in)
		case dst.Mode == ModeDn && name != "eor":
			if src.Mode == ModeInvalid || src.Mode == ModeRegList || src.Mode == ModeSpecial {
				return cost{}, false
			}
			base := timing(4, 1, 0)
			if long {
				switch {
				case name == "cmp":
					base = timing(6, 1, 0)
				case src.Mode == ModeDn || src.Mode == ModeAn || src.Mode == ModeImm:
					base = timing(8, 1, 0)
				default:
					base = timing(6, 1, 0)
				}
			}
			return withEA(base, eaTime(src, long), 1+extWords(src, long)), true
		case name == "eor" && src.Mode == ModeDn && dst.Mode == ModeDn:
			return fixed(pickSize(long, timing(4, 1, 0), timing(8, 1, 0)), 1), true
		case src.Mode == ModeDn && dst.IsMemory() && name != "cmp":
			base := pickSize(long, timing(8, 1, 1), timing(12, 1, 2))
			return withEA(base, eaTime(dst, long), 1+extWords(dst, long)), isDataAlterable(dst)
		}
		return cost{}, false
	}
}

// address handles adda, suba and cmpa.
func address(name string) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 || in.operands[1].Mode != ModeAn {
			return cost{}, false
		}
		src := in.operands[0]
		long := in.long()
		base := timing(8, 1, 0)
		switch {
		case name == "cmpa":
			base = timing(6, 1, 0)
		case long && src.Mode != ModeDn && src.Mode != ModeAn && src.Mode != ModeImm:
			base = timing(6, 1, 0)
		}
		return withEA(base, eaTime(src, long), 1+extWords(src, long)), true
	}
}

// immediate handles addi, subi, andi, ori, eori and cmpi.
func immediate(name string) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 || in.operands[0].Mode != ModeImm {
			return cost{}, false
		}
		dst := in.operands[1]
		long := in.long()
		words := 1 + extWords(in.operands[0], long) + extWords(dst, long)

		switch {
		case dst.Mode == ModeSpecial:
			return fixed(timing(20, 3, 0), 2), name == "andi" || name == "ori" || name == "eori"
		case dst.Mode == ModeDn:
			t := pickSize(long, timing(8, 2, 0), timing(16, 3, 0))
			if long && (name == "cmpi" || name == "andi") {
				t = timing(14, 3, 0)
			}
			return fixed(t, words), true
		case dst.IsMemory():
			base := pickSize(long, timing(12, 2, 1), timing(20, 3, 2))
			if name == "cmpi" {
				base = pickSize(long, timing(8, 2, 0), timing(12, 3, 0))
			}
			return withEA(base, eaTime(dst, long), words), true
		}
		return cost{}, false
	}
}

func quick(in instruction) (cost, bool) {
	if len(in.operands) != 2 || in.operands[0].Mode != ModeImm {
		return cost{}, false
	}
	dst := in.operands[1]
	long := in.long()
	switch {
	case dst.Mode == ModeDn:
		return fixed(pickSize(long, timing(4, 1, 0), timing(8, 1, 0)), 1), true
	case dst.Mode == ModeAn:
		return fixed(timing(8, 1, 0), 1), true
	case isDataAlterable(dst):
		base := pickSize(long, timing(8, 1, 1), timing(12, 1, 2))
		return withEA(base, eaTime(dst, long), 1+extWords(dst, long)), true
	}
	return cost{}, false
}

// extended handles the register and predecrement forms of addx, subx,
// abcd and sbcd.
func extended(regBW, regL, memBW, memL m68kcount.Timing) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 {
			return cost{}, false
		}
		long := in.long()
		switch {
		case in.operands[0].Mode == ModeDn && in.operands[1].Mode == ModeDn:
			return fixed(pickSize(long, regBW, regL), 1), true
		case in.operands[0].Mode == ModePreDec && in.operands[1].Mode == ModePreDec:
			return fixed(pickSize(long, memBW, memL), 1), true
		}
		return cost{}, false
	}
}

// unary handles single-operand read-modify-write instructions.
func unary(regBW, regL, memBW, memL m68kcount.Timing) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 1 {
			return cost{}, false
		}
		op := in.operands[0]
		long := in.long()
		if op.Mode == ModeDn {
			return fixed(pickSize(long, regBW, regL), 1), true
		}
		return withEA(pickSize(long, memBW, memL), eaTime(op, long), 1+extWords(op, long)), isDataAlterable(op)
	}
}

func tst(in instruction) (cost, bool) {
	if len(in.operands) != 1 {
		return cost{}, false
	}
	op := in.operands[0]
	long := in.long()
	return withEA(timing(4, 1, 0), eaTime(op, long), 1+extWords(op, long)), op.Mode != ModeInvalid
}

// multiply handles mulu and muls, whose time grows with the bit pattern of
// the source operand.
func multiply(signed bool) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 || in.operands[1].Mode != ModeDn {
			return cost{}, false
		}
		src := in.operands[0]
		n := -1
		if src.Mode == ModeImm {
			if v, ok := ParseNumber(src.Raw); ok {
				n = multiplyBits(uint16(v), signed)
			}
		}
		return repeated(timing(38, 1, 0), eaTime(src, false), timing(2, 0, 0), n, 1+extWords(src, false)), true
	}
}

// multiplyBits returns the repeat count for a multiplier: the number of
// ones for mulu, or the number of 01/10 transitions for muls.
func multiplyBits(v uint16, signed bool) int {
	if !signed {
		return bits.OnesCount16(v)
	}
	x := uint32(v) << 1
	return bits.OnesCount32((x ^ (x >> 1)) & 0xffff)
}

// divide handles divu and divs using their worst-case times.
func divide(base m68kcount.Timing) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 || in.operands[1].Mode != ModeDn {
			return cost{}, false
		}
		src := in.operands[0]
		return withEA(base, eaTime(src, false), 1+extWords(src, false)), true
	}
}

// shift handles shifts and rotates. Register forms cost two cycles per bit
// shifted; the count is known only for immediate counts.
func shift(in instruction) (cost, bool) {
	long := in.long()
	base := pickSize(long, timing(6, 1, 0), timing(8, 1, 0))
	mult := timing(2, 0, 0)

	switch len(in.operands) {
	case 1:
		op := in.operands[0]
		if op.Mode == ModeDn {
			return repeated(base, m68kcount.Timing{}, mult, 1, 1), true
		}
		return withEA(timing(8, 1, 1), eaTime(op, false), 1+extWords(op, false)), isDataAlterable(op)
	case 2:
		count, dst := in.operands[0], in.operands[1]
		if dst.Mode != ModeDn {
			return cost{}, false
		}
		switch count.Mode {
		case ModeImm:
			n := -1
			if v, ok := ParseNumber(count.Raw); ok {
				if v < 1 || v > 8 {
					return cost{}, false
				}
				n = int(v)
			}
			return repeated(base, m68kcount.Timing{}, mult, n, 1), true
		case ModeDn:
			return repeated(base, m68kcount.Timing{}, mult, -1, 1), true
		}
	}
	return cost{}, false
}

// bit handles btst, bchg, bclr and bset with dynamic (register) or static
// (immediate) bit numbers.
func bit(dynReg, staticReg, dynMem, staticMem m68kcount.Timing) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 {
			return cost{}, false
		}
		src, dst := in.operands[0], in.operands[1]
		static := src.Mode == ModeImm
		if !static && src.Mode != ModeDn {
			return cost{}, false
		}
		words := 1
		if static {
			words = 2
		}
		if dst.Mode == ModeDn {
			if static {
				return fixed(staticReg, words), true
			}
			return fixed(dynReg, words), true
		}
		if !dst.IsMemory() {
			return cost{}, false
		}
		base := dynMem
		if static {
			base = staticMem
		}
		return withEA(base, eaTime(dst, false), words+extWords(dst, false)), true
	}
}

// control handles instructions whose total time is tabulated per control
// addressing mode.
func control(table map[Mode]m68kcount.Timing) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) == 0 || !isControl(in.operands[0]) {
			return cost{}, false
		}
		op := in.operands[0]
		t, ok := table[op.Mode]
		return fixed(t, 1+extWords(op, false)), ok
	}
}

func branchWords(in instruction) int {
	if in.size == SizeShort || in.size == SizeByte {
		return 1
	}
	return 2
}

func bcc(in instruction) (cost, bool) {
	notTaken := timing(12, 2, 0)
	if branchWords(in) == 1 {
		notTaken = timing(8, 1, 0)
	}
	return cost{
		timings: []m68kcount.Timing{timing(10, 2, 0), notTaken},
		labels:  []string{"Branch taken", "Branch not taken"},
		words:   branchWords(in),
	}, true
}

func dbcc(cc string) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 2 || in.operands[0].Mode != ModeDn {
			return cost{}, false
		}
		switch cc {
		case "t":
			return fixed(timing(12, 2, 0), 2), true
		case "f":
			return cost{
				timings: []m68kcount.Timing{timing(10, 2, 0), timing(14, 3, 0)},
				labels:  []string{"Branch taken", "Counter expired"},
				words:   2,
			}, true
		}
		return cost{
			timings: []m68kcount.Timing{timing(10, 2, 0), timing(12, 2, 0), timing(14, 3, 0)},
			labels:  []string{"Branch taken", "Condition true", "Counter expired"},
			words:   2,
		}, true
	}
}

func scc(cc string) handler {
	return func(in instruction) (cost, bool) {
		if len(in.operands) != 1 {
			return cost{}, false
		}
		op := in.operands[0]
		if op.Mode != ModeDn {
			return withEA(timing(8, 1, 1), eaTime(op, false), 1+extWords(op, false)), isDataAlterable(op)
		}
		switch cc {
		case "t":
			return fixed(timing(6, 1, 0), 1), true
		case "f":
			return fixed(timing(4, 1, 0), 1), true
		}
		return cost{
			timings: []m68kcount.Timing{timing(6, 1, 0), timing(4, 1, 0)},
			labels:  []string{"Condition true", "Condition false"},
			words:   1,
		}, true
	}
}
