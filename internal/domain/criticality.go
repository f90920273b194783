package domain

import "strings"

const (
	CriticalityHigh   = "high"
	CriticalityMedium = "medium"
	CriticalityLow    = "low"
)

var criticalityRanks = map[string]int{
	CriticalityHigh:   3,
	CriticalityMedium: 2,
	CriticalityLow:    1,
}

// CriticalityRank returns the sort weight for a criticality level,
// higher meaning more important. Unknown levels rank below "low".
func CriticalityRank(level string) int {
	return criticalityRanks[strings.ToLower(level)]
}

// ValidCriticality reports whether level is one of the known classifications.
func ValidCriticality(level string) bool {
	_, ok := criticalityRanks[strings.ToLower(level)]
	return ok
}
