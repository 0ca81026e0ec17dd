package usecase

import (
	"cmp"
	"math"
	"slices"

	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

// Efficiency score weights
const (
	efficiencyCostWeight = 0.35
	efficiencyTimeWeight = 0.25
	efficiencyRiskWeight = 0.40
)

// PricingUseCase aggregates cost, turnaround and coverage over resolved checks.
// Every method is total: empty input yields zero values.
type PricingUseCase struct {
	catalog *model.Catalog
}

func NewPricingUseCase(catalog *model.Catalog) *PricingUseCase {
	return &PricingUseCase{catalog: catalog}
}

// selectedPackage returns the package of a package-mode selection, or nil
func (uc *PricingUseCase) selectedPackage(sel model.Selection) *model.Package {
	if sel.Mode != types.SelectionModePackage {
		return nil
	}
	pkg, err := uc.catalog.Package(sel.PackageID)
	if err != nil {
		return nil
	}
	return pkg
}

// TotalCost returns the package's own (possibly discounted) price in package mode,
// otherwise the sum of the checks' costs.
func (uc *PricingUseCase) TotalCost(checks []*model.CheckDefinition, sel model.Selection) float64 {
	if len(checks) == 0 {
		return 0
	}
	if pkg := uc.selectedPackage(sel); pkg != nil {
		return pkg.TotalEstimatedCost
	}

	var total float64
	for _, check := range checks {
		total += check.EstimatedCost
	}
	return total
}

// MaxTurnaroundDays returns the package's own turnaround in package mode, otherwise the
// slowest check's turnaround. Checks run in parallel, so durations are not summed.
func (uc *PricingUseCase) MaxTurnaroundDays(checks []*model.CheckDefinition, sel model.Selection) int {
	if len(checks) == 0 {
		return 0
	}
	if pkg := uc.selectedPackage(sel); pkg != nil {
		return pkg.TotalEstimatedTurnaroundDays
	}

	maxDays := 0
	for _, check := range checks {
		maxDays = max(maxDays, check.EstimatedTurnaroundDays)
	}
	return maxDays
}

// CostBreakdownByCategory groups checks by category, ordered by cost descending and
// then category name.
func (uc *PricingUseCase) CostBreakdownByCategory(checks []*model.CheckDefinition, totalCost float64) []model.CostBreakdownEntry {
	groups := make(map[types.Category]*model.CostBreakdownEntry)
	for _, check := range checks {
		entry, ok := groups[check.Category]
		if !ok {
			entry = &model.CostBreakdownEntry{
				Category: check.Category,
				Label:    check.Category.Label(),
			}
			groups[check.Category] = entry
		}
		entry.Cost += check.EstimatedCost
		entry.Count++
	}

	result := make([]model.CostBreakdownEntry, 0, len(groups))
	for _, entry := range groups {
		if totalCost > 0 {
			entry.PercentageOfTotal = entry.Cost / totalCost * 100
		}
		result = append(result, *entry)
	}

	slices.SortFunc(result, func(a, b model.CostBreakdownEntry) int {
		if c := cmp.Compare(b.Cost, a.Cost); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return result
}

// RiskCoverage tallies checks by risk level
func (uc *PricingUseCase) RiskCoverage(checks []*model.CheckDefinition) model.RiskCoverage {
	var coverage model.RiskCoverage
	for _, check := range checks {
		switch check.RiskLevel {
		case types.RiskLevelLow:
			coverage.Low++
		case types.RiskLevelMedium:
			coverage.Medium++
		case types.RiskLevelHigh:
			coverage.High++
		}
		coverage.Total++
	}
	return coverage
}

// ProviderBreakdown groups checks by provider. AverageTurnaroundDays is the mean within
// the group, not the critical path. Ordered by total cost descending and then provider.
func (uc *PricingUseCase) ProviderBreakdown(checks []*model.CheckDefinition) []model.ProviderBreakdownEntry {
	type acc struct {
		entry   model.ProviderBreakdownEntry
		sumDays int
	}
	groups := make(map[string]*acc)
	for _, check := range checks {
		g, ok := groups[check.Provider]
		if !ok {
			g = &acc{entry: model.ProviderBreakdownEntry{Provider: check.Provider}}
			groups[check.Provider] = g
		}
		g.entry.CheckCount++
		g.entry.TotalCost += check.EstimatedCost
		g.sumDays += check.EstimatedTurnaroundDays
	}

	result := make([]model.ProviderBreakdownEntry, 0, len(groups))
	for _, g := range groups {
		g.entry.AverageTurnaroundDays = float64(g.sumDays) / float64(g.entry.CheckCount)
		result = append(result, g.entry)
	}

	slices.SortFunc(result, func(a, b model.ProviderBreakdownEntry) int {
		if c := cmp.Compare(b.TotalCost, a.TotalCost); c != 0 {
			return c
		}
		return cmp.Compare(a.Provider, b.Provider)
	})
	return result
}

// ConsentRequired returns the IDs of checks that need subject consent, in input order
func (uc *PricingUseCase) ConsentRequired(checks []*model.CheckDefinition) []types.CheckID {
	var ids []types.CheckID
	for _, check := range checks {
		if check.ConsentRequired {
			ids = append(ids, check.ID)
		}
	}
	return ids
}

// EfficiencyScore rates a calculation from 0 to 100 against the catalog baseline.
// It combines cost per check (cheaper than average is better), turnaround (shorter is
// better) and risk density (more high-risk coverage is better).
func (uc *PricingUseCase) EfficiencyScore(calc *model.Calculation) int {
	if calc == nil || calc.RiskCoverage.Total == 0 {
		return 0
	}
	n := float64(calc.RiskCoverage.Total)
	baseline := uc.catalog.Baseline()

	costComponent := 1.0
	if perCheck := calc.TotalCost / n; perCheck > 0 && baseline.AverageCostPerCheck > 0 {
		costComponent = math.Min(1, baseline.AverageCostPerCheck/perCheck)
	}

	days := float64(calc.TotalTurnaroundDays)
	if baseline.AverageTurnaroundDays > 0 {
		days /= baseline.AverageTurnaroundDays
	}
	timeComponent := 1 / (1 + days)

	weighted := calc.RiskCoverage.Low*types.RiskLevelLow.Weight() +
		calc.RiskCoverage.Medium*types.RiskLevelMedium.Weight() +
		calc.RiskCoverage.High*types.RiskLevelHigh.Weight()
	riskComponent := float64(weighted) / (types.MaxRiskWeight * n)

	score := 100 * (efficiencyCostWeight*costComponent +
		efficiencyTimeWeight*timeComponent +
		efficiencyRiskWeight*riskComponent)

	return int(math.Max(0, math.Min(100, math.Round(score))))
}
