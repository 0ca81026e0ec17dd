package types

// Priority is the urgency tier of a check suggestion
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal of the priority, higher is more urgent
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}

// SuggestionSource names the candidate pool a check suggestion came from
type SuggestionSource string

const (
	SuggestionSourceTrending       SuggestionSource = "trending"
	SuggestionSourceRiskMitigation SuggestionSource = "risk-mitigation"
	SuggestionSourceBudgetFriendly SuggestionSource = "budget-friendly"
)

// String returns the string representation of the suggestion source
func (s SuggestionSource) String() string {
	return string(s)
}
