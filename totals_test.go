package m68kcount_test

import (
	"testing"

	"github.com/fwojciec/m68kcount"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields zero totals", func(t *testing.T) {
		t.Parallel()

		totals := m68kcount.Aggregate(nil)

		assert.Equal(t, m68kcount.Totals{}, totals)
		assert.False(t, totals.IsRange)
	})

	t.Run("single variants sum into equal min and max", func(t *testing.T) {
		t.Parallel()

		lines := []m68kcount.Line{
			{Text: "\tmove.w\td0,d1", Words: 1, Timings: []m68kcount.Timing{{Clock: 4, Read: 1}}},
			{Text: "loop:"},
			{Text: "\tmove.l\t(a0)+,d0", Words: 1, Timings: []m68kcount.Timing{{Clock: 12, Read: 3}}},
			{Text: "\tmove.w\td0,$dff180", Words: 3, Timings: []m68kcount.Timing{{Clock: 16, Read: 3, Write: 1}}},
		}

		totals := m68kcount.Aggregate(lines)

		assert.Equal(t, 5, totals.Words)
		assert.Equal(t, 10, totals.Bytes)
		assert.False(t, totals.IsRange)
		assert.Equal(t, m68kcount.Timing{Clock: 32, Read: 7, Write: 1}, totals.Min)
		assert.Equal(t, totals.Min, totals.Max)
	})

	t.Run("multiple variants produce a range", func(t *testing.T) {
		t.Parallel()

		lines := []m68kcount.Line{
			{Words: 1, Timings: []m68kcount.Timing{{Clock: 4, Read: 1}}},
			{Words: 2, Timings: []m68kcount.Timing{
				{Clock: 10, Read: 2},
				{Clock: 12, Read: 2},
				{Clock: 14, Read: 3},
			}},
		}

		totals := m68kcount.Aggregate(lines)

		assert.True(t, totals.IsRange)
		assert.Equal(t, 3, totals.Words)
		assert.Equal(t, 6, totals.Bytes)
		assert.Equal(t, m68kcount.Timing{Clock: 14, Read: 3}, totals.Min)
		assert.Equal(t, m68kcount.Timing{Clock: 18, Read: 4}, totals.Max)
	})

	t.Run("min and max are taken per component", func(t *testing.T) {
		t.Parallel()

		lines := []m68kcount.Line{
			{Words: 1, Timings: []m68kcount.Timing{
				{Clock: 10, Read: 1, Write: 2},
				{Clock: 8, Read: 3, Write: 0},
			}},
		}

		totals := m68kcount.Aggregate(lines)

		assert.Equal(t, m68kcount.Timing{Clock: 8, Read: 1, Write: 0}, totals.Min)
		assert.Equal(t, m68kcount.Timing{Clock: 10, Read: 3, Write: 2}, totals.Max)
	})

	t.Run("lines without timings contribute only words", func(t *testing.T) {
		t.Parallel()

		lines := []m68kcount.Line{
			{Text: "\tdc.w\t1,2,3", Words: 3},
			{Text: "; comment"},
		}

		totals := m68kcount.Aggregate(lines)

		assert.Equal(t, 3, totals.Words)
		assert.Equal(t, 6, totals.Bytes)
		assert.True(t, totals.Min.IsZero())
		assert.True(t, totals.Max.IsZero())
		assert.False(t, totals.IsRange)
	})

	t.Run("is pure", func(t *testing.T) {
		t.Parallel()

		lines := []m68kcount.Line{
			{Words: 2, Timings: []m68kcount.Timing{{Clock: 10, Read: 2}, {Clock: 8, Read: 1}}},
			{Words: 1, Timings: []m68kcount.Timing{{Clock: 4, Read: 1}}},
		}

		assert.Equal(t, m68kcount.Aggregate(lines), m68kcount.Aggregate(lines))
	})
}
