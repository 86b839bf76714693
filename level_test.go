package m68kcount_test

import (
	"testing"

	"github.com/fwojciec/m68kcount"
	"github.com/stretchr/testify/assert"
)

func TestThresholds_Classify(t *testing.T) {
	t.Parallel()

	th := m68kcount.Thresholds{2, 3, 4}

	assert.Equal(t, m68kcount.LevelLow, th.Classify(0))
	assert.Equal(t, m68kcount.LevelLow, th.Classify(1))
	assert.Equal(t, m68kcount.LevelMed, th.Classify(2))
	assert.Equal(t, m68kcount.LevelHigh, th.Classify(3))
	assert.Equal(t, m68kcount.LevelVeryHigh, th.Classify(4))
	assert.Equal(t, m68kcount.LevelVeryHigh, th.Classify(100))
}

func TestClassifyMagnitude_Monotonic(t *testing.T) {
	t.Parallel()

	for _, th := range []m68kcount.Thresholds{m68kcount.TimingThresholds, m68kcount.LengthThresholds} {
		prev := m68kcount.LevelLow
		for v := 0; v < 200; v++ {
			level := m68kcount.ClassifyMagnitude(v, th)
			assert.GreaterOrEqual(t, int(level), int(prev), "level decreased at %d", v)
			prev = level
		}
	}
}

func TestTimingLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, m68kcount.LevelLow, m68kcount.TimingLevel(m68kcount.Timing{Clock: 4, Read: 1}))
	assert.Equal(t, m68kcount.LevelVeryHigh, m68kcount.TimingLevel(m68kcount.Timing{Clock: 140, Read: 1}))
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "low", m68kcount.LevelLow.String())
	assert.Equal(t, "med", m68kcount.LevelMed.String())
	assert.Equal(t, "high", m68kcount.LevelHigh.String())
	assert.Equal(t, "vhigh", m68kcount.LevelVeryHigh.String())
}
