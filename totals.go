package m68kcount

// Aggregate reduces lines into word/byte counts and minimum and maximum
// timing sums. Lines with several outcomes add the component-wise minimum
// of their variants to the minimum sum and the component-wise maximum to
// the maximum sum, and mark the result as a range.
func Aggregate(lines []Line) Totals {
	var t Totals
	for _, line := range lines {
		t.Words += line.Words
		switch len(line.Timings) {
		case 0:
		case 1:
			t.Min = t.Min.Add(line.Timings[0])
			t.Max = t.Max.Add(line.Timings[0])
		default:
			t.IsRange = true
			lo, hi := line.Timings[0], line.Timings[0]
			for _, v := range line.Timings[1:] {
				lo = lo.Min(v)
				hi = hi.Max(v)
			}
			t.Min = t.Min.Add(lo)
			t.Max = t.Max.Add(hi)
		}
	}
	t.Bytes = t.Words * 2
	return t
}
