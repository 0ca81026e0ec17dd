package types

import "github.com/m-mizutani/goerr/v2"

// RiskLevel is the ordinal severity of a check
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// MaxRiskWeight is the weight of the most severe risk level
const MaxRiskWeight = 3

// AllRiskLevels returns all valid risk levels from least to most severe
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
	}
}

// IsValid checks if the risk level is valid
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh:
		return true
	default:
		return false
	}
}

// Weight returns the ordinal of the risk level (1-3), or 0 if invalid
func (r RiskLevel) Weight() int {
	switch r {
	case RiskLevelLow:
		return 1
	case RiskLevelMedium:
		return 2
	case RiskLevelHigh:
		return MaxRiskWeight
	default:
		return 0
	}
}

// String returns the string representation of the risk level
func (r RiskLevel) String() string {
	return string(r)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if !r.IsValid() {
		return "", goerr.New("invalid risk level", goerr.V("risk_level", s))
	}
	return r, nil
}
