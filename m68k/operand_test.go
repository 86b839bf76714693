package m68k_test

import (
	"testing"

	"github.com/fwojciec/m68kcount/m68k"
	"github.com/stretchr/testify/assert"
)

func TestParseOperand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want m68k.Mode
	}{
		{"d0", m68k.ModeDn},
		{"D7", m68k.ModeDn},
		{"a3", m68k.ModeAn},
		{"sp", m68k.ModeAn},
		{"(a0)", m68k.ModeInd},
		{"(sp)+", m68k.ModePostInc},
		{"-(a7)", m68k.ModePreDec},
		{"4(a0)", m68k.ModeDisp},
		{"(4,a0)", m68k.ModeDisp},
		{"offset(a5)", m68k.ModeDisp},
		{"0(a0,d0.w)", m68k.ModeIndex},
		{"(a0,d1.l*4)", m68k.ModeIndex},
		{"table(pc)", m68k.ModePCDisp},
		{"table(pc,d0.w)", m68k.ModePCIndex},
		{"$4.w", m68k.ModeAbsW},
		{"$dff180", m68k.ModeAbsL},
		{"label", m68k.ModeAbsL},
		{"label+4", m68k.ModeAbsL},
		{"#$ff", m68k.ModeImm},
		{"d0-d7/a0-a6", m68k.ModeRegList},
		{"d0/a1", m68k.ModeRegList},
		{"sr", m68k.ModeSpecial},
		{"USP", m68k.ModeSpecial},
		{"", m68k.ModeInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m68k.ParseOperand(tt.in).Mode)
		})
	}
}

func TestSplitOperands(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"0(a0,d0.w)", "d1"}, m68k.SplitOperands("0(a0,d0.w), d1"))
	assert.Equal(t, []string{`"a,b"`, "0"}, m68k.SplitOperands(`"a,b",0`))
	assert.Nil(t, m68k.SplitOperands("  "))
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{"#$ff", 255, true},
		{"%1010", 10, true},
		{"@17", 15, true},
		{"0x10", 16, true},
		{"-8", -8, true},
		{"#-$10", -16, true},
		{"COUNT", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := m68k.ParseNumber(tt.in)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
