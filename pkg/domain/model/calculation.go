package model

import "github.com/secmon-lab/vetplan/pkg/domain/types"

// CostBreakdownEntry is the cost share of one check category
type CostBreakdownEntry struct {
	Category          types.Category `json:"category"`
	Label             string         `json:"label"`
	Cost              float64        `json:"cost"`
	Count             int            `json:"count"`
	PercentageOfTotal float64        `json:"percentage_of_total"`
}

// RiskCoverage tallies checks by risk level
type RiskCoverage struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	Total  int `json:"total"`
}

// ProviderBreakdownEntry is a descriptive per-provider statistic
type ProviderBreakdownEntry struct {
	Provider              string  `json:"provider"`
	CheckCount            int     `json:"check_count"`
	TotalCost             float64 `json:"total_cost"`
	AverageTurnaroundDays float64 `json:"average_turnaround_days"`
}

// PackageSuggestion ranks a package against the current selection
type PackageSuggestion struct {
	PackageID      types.PackageID `json:"package_id"`
	Name           string          `json:"name"`
	Cost           float64         `json:"cost"`
	RelevanceScore float64         `json:"relevance_score"`
	OverlapCount   int             `json:"overlap_count"`
	OverlapRatio   float64         `json:"overlap_ratio"`
	CostFitScore   float64         `json:"cost_fit_score"`
	Popularity     float64         `json:"popularity_score"`
	Current        bool            `json:"current"`
	Reasons        []string        `json:"reasons,omitempty"`
}

// CheckSuggestion proposes a check to add to the selection
type CheckSuggestion struct {
	CheckID    types.CheckID            `json:"check_id"`
	Name       string                   `json:"name"`
	Cost       float64                  `json:"cost"`
	RiskLevel  types.RiskLevel          `json:"risk_level"`
	Confidence int                      `json:"confidence"`
	Priority   types.Priority           `json:"priority"`
	Sources    []types.SuggestionSource `json:"sources"`
	Reason     string                   `json:"reason"`
}

// OptimizationSuggestion points at a package that would be cheaper than
// the equivalent individually selected checks
type OptimizationSuggestion struct {
	PackageID        types.PackageID `json:"package_id"`
	Name             string          `json:"name"`
	PotentialSavings float64         `json:"potential_savings"`
	OverlapCount     int             `json:"overlap_count"`
}

// Calculation is the full view-model derived from a selection
type Calculation struct {
	Selection               Selection                `json:"selection"`
	Checks                  []*CheckDefinition       `json:"checks"`
	TotalCost               float64                  `json:"total_cost"`
	TotalTurnaroundDays     int                      `json:"total_turnaround_days"`
	CostBreakdown           []CostBreakdownEntry     `json:"cost_breakdown"`
	RiskCoverage            RiskCoverage             `json:"risk_coverage"`
	ProviderBreakdown       []ProviderBreakdownEntry `json:"provider_breakdown"`
	EfficiencyScore         int                      `json:"efficiency_score"`
	ConsentRequired         []types.CheckID          `json:"consent_required"`
	PackageSuggestions      []PackageSuggestion      `json:"package_suggestions"`
	CheckSuggestions        []CheckSuggestion        `json:"check_suggestions"`
	OptimizationSuggestions []OptimizationSuggestion `json:"optimization_suggestions"`
}
