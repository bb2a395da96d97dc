package risk

// Severity is the ordered risk level attached to assessments, trend
// findings and insights.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRanks = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

func (s Severity) IsKnown() bool {
	_, ok := severityRanks[s]
	return ok
}

func (s Severity) AtLeast(other Severity) bool {
	return severityRanks[s] >= severityRanks[other]
}
