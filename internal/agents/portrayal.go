package agents

// Class is the presentation bucket an agent falls into.
type Class uint8

const (
	ClassCapital        Class = iota
	ClassWealthyForager       // wealth > WealthyThreshold
	ClassPoorForager
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassCapital:
		return "capital"
	case ClassWealthyForager:
		return "wealthy"
	case ClassPoorForager:
		return "poor"
	default:
		return "unknown"
	}
}

// Classify buckets an agent for display.
func Classify(a *Agent) Class {
	if a.IsCapital() {
		return ClassCapital
	}
	if a.Wealth > WealthyThreshold {
		return ClassWealthyForager
	}
	return ClassPoorForager
}

// ClassCounts tallies agents by class.
func ClassCounts(list []*Agent) map[Class]int {
	counts := make(map[Class]int, 3)
	for _, a := range list {
		counts[Classify(a)]++
	}
	return counts
}
