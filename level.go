package m68kcount

// Level is a presentational severity band for a size or cost.
type Level int

// Severity levels, in increasing order.
const (
	LevelLow Level = iota
	LevelMed
	LevelHigh
	LevelVeryHigh
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelMed:
		return "med"
	case LevelHigh:
		return "high"
	case LevelVeryHigh:
		return "vhigh"
	default:
		return "low"
	}
}

// Thresholds are the inclusive lower bounds of the Med, High and VeryHigh
// levels. They must be non-decreasing.
type Thresholds [3]int

// Default thresholds for clock cycles and word counts.
var (
	TimingThresholds = Thresholds{12, 30, 60}
	LengthThresholds = Thresholds{2, 3, 4}
)

// Classify maps v to a level. The mapping is monotonic non-decreasing in v.
func (t Thresholds) Classify(v int) Level {
	level := LevelLow
	for i, bound := range t {
		if v >= bound {
			level = Level(i + 1)
		}
	}
	return level
}

// ClassifyMagnitude maps value to a level using thresholds t.
func ClassifyMagnitude(value int, t Thresholds) Level {
	return t.Classify(value)
}

// TimingLevel bands a timing by its clock component.
func TimingLevel(t Timing) Level {
	return TimingThresholds.Classify(t.Clock)
}

// LengthLevel bands an instruction size in words.
func LengthLevel(words int) Level {
	return LengthThresholds.Classify(words)
}
