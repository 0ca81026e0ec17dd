package usecase

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

// Package relevance weights
const (
	overlapWeight    = 0.4
	costFitWeight    = 0.3
	popularityWeight = 0.3

	popularScore   = 1.0
	unpopularScore = 0.5
)

// Check suggestion tuning
const (
	trendingBaseConfidence   = 85
	trendingRankStep         = 5
	trendingMinConfidence    = 60
	highRiskConfidence       = 90
	mediumRiskConfidence     = 70
	budgetFriendlyConfidence = 65
	budgetFriendlyMax        = 3
)

// Optimization thresholds
const (
	MinOptimizationOverlap = 3
	MinOptimizationSavings = 50.0 // ZAR
)

// SuggestionUseCase ranks packages and checks relative to a selection.
// It is a pure function of the selection, the catalog and the budget.
type SuggestionUseCase struct {
	catalog   *model.Catalog
	selection *SelectionUseCase
	pricing   *PricingUseCase
	limit     int
}

func NewSuggestionUseCase(catalog *model.Catalog, selection *SelectionUseCase, pricing *PricingUseCase, limit int) *SuggestionUseCase {
	return &SuggestionUseCase{
		catalog:   catalog,
		selection: selection,
		pricing:   pricing,
		limit:     limit,
	}
}

func checkIDSet(checks []*model.CheckDefinition) map[types.CheckID]struct{} {
	set := make(map[types.CheckID]struct{}, len(checks))
	for _, check := range checks {
		set[check.ID] = struct{}{}
	}
	return set
}

// costFit is 1 within budget and decreases linearly to 0 at twice the budget.
// budget <= 0 means no budget.
func costFit(cost, budget float64) float64 {
	if budget <= 0 || cost <= budget {
		return 1
	}
	return math.Max(0, 1-(cost-budget)/budget)
}

// SuggestPackages ranks the packages offered for the selection's entity type.
// Ties on relevance are broken by lower cost, then package ID.
func (uc *SuggestionUseCase) SuggestPackages(sel model.Selection, budget float64) []model.PackageSuggestion {
	if !sel.EntityType.IsValid() {
		return nil
	}
	selected := checkIDSet(uc.selection.EffectiveChecks(sel))

	var result []model.PackageSuggestion
	for _, pkg := range uc.catalog.PackagesFor(sel.EntityType) {
		overlap := 0
		for _, id := range pkg.CheckIDs {
			if _, ok := selected[id]; ok {
				overlap++
			}
		}
		var ratio float64
		if len(pkg.CheckIDs) > 0 {
			ratio = math.Min(1, float64(overlap)/float64(len(pkg.CheckIDs)))
		}
		fit := costFit(pkg.TotalEstimatedCost, budget)
		popularity := unpopularScore
		if pkg.IsPopular {
			popularity = popularScore
		}

		var reasons []string
		if overlap > 0 {
			reasons = append(reasons, fmt.Sprintf("includes %d of your selected checks", overlap))
		}
		if budget > 0 && pkg.TotalEstimatedCost <= budget {
			reasons = append(reasons, "within budget")
		}
		if pkg.IsPopular {
			reasons = append(reasons, "popular choice")
		}
		if pkg.DiscountPercentage > 0 {
			reasons = append(reasons, fmt.Sprintf("%g%% bundle discount", pkg.DiscountPercentage))
		}

		result = append(result, model.PackageSuggestion{
			PackageID:      pkg.ID,
			Name:           pkg.Name,
			Cost:           pkg.TotalEstimatedCost,
			RelevanceScore: overlapWeight*ratio + costFitWeight*fit + popularityWeight*popularity,
			OverlapCount:   overlap,
			OverlapRatio:   ratio,
			CostFitScore:   fit,
			Popularity:     popularity,
			Current:        sel.Mode == types.SelectionModePackage && sel.PackageID == pkg.ID,
			Reasons:        reasons,
		})
	}

	slices.SortFunc(result, func(a, b model.PackageSuggestion) int {
		if c := cmp.Compare(b.RelevanceScore, a.RelevanceScore); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
			return c
		}
		return cmp.Compare(a.PackageID, b.PackageID)
	})
	return result
}

// SuggestAdditionalChecks merges the trending, risk-mitigation and budget-friendly
// pools. A check found in several pools keeps its strongest priority and confidence.
// Ordered by priority, then confidence, then cost.
func (uc *SuggestionUseCase) SuggestAdditionalChecks(sel model.Selection, budget float64) []model.CheckSuggestion {
	if !sel.EntityType.IsValid() {
		return nil
	}
	effective := uc.selection.EffectiveChecks(sel)
	selected := checkIDSet(effective)

	merged := make(map[types.CheckID]*model.CheckSuggestion)
	add := func(check *model.CheckDefinition, source types.SuggestionSource, priority types.Priority, confidence int, reason string) {
		if _, ok := selected[check.ID]; ok || !check.AppliesTo(sel.EntityType) {
			return
		}
		existing, ok := merged[check.ID]
		if !ok {
			merged[check.ID] = &model.CheckSuggestion{
				CheckID:    check.ID,
				Name:       check.Name,
				Cost:       check.EstimatedCost,
				RiskLevel:  check.RiskLevel,
				Confidence: confidence,
				Priority:   priority,
				Sources:    []types.SuggestionSource{source},
				Reason:     reason,
			}
			return
		}
		existing.Sources = append(existing.Sources, source)
		if priority.Rank() > existing.Priority.Rank() ||
			(priority == existing.Priority && confidence > existing.Confidence) {
			existing.Priority = priority
			existing.Confidence = confidence
			existing.Reason = reason
		}
	}

	for rank, check := range uc.catalog.Trending(sel.EntityType) {
		confidence := max(trendingMinConfidence, trendingBaseConfidence-trendingRankStep*rank)
		add(check, types.SuggestionSourceTrending, types.PriorityMedium, confidence,
			fmt.Sprintf("Trending for %s vetting", sel.EntityType.Label()))
	}

	candidates := uc.catalog.ChecksFor(sel.EntityType)
	for _, check := range candidates {
		switch check.RiskLevel {
		case types.RiskLevelHigh:
			add(check, types.SuggestionSourceRiskMitigation, types.PriorityHigh, highRiskConfidence,
				"Covers a high-risk area not yet checked")
		case types.RiskLevelMedium:
			add(check, types.SuggestionSourceRiskMitigation, types.PriorityMedium, mediumRiskConfidence,
				"Covers a medium-risk area not yet checked")
		}
	}

	if budget > 0 {
		remaining := budget - uc.pricing.TotalCost(effective, sel)
		var affordable []*model.CheckDefinition
		for _, check := range candidates {
			if _, ok := selected[check.ID]; ok {
				continue
			}
			if check.EstimatedCost <= remaining {
				affordable = append(affordable, check)
			}
		}
		slices.SortStableFunc(affordable, func(a, b *model.CheckDefinition) int {
			return cmp.Compare(a.EstimatedCost, b.EstimatedCost)
		})
		for _, check := range affordable[:min(budgetFriendlyMax, len(affordable))] {
			add(check, types.SuggestionSourceBudgetFriendly, types.PriorityLow, budgetFriendlyConfidence,
				fmt.Sprintf("Fits the remaining budget of R%.0f", remaining))
		}
	}

	result := make([]model.CheckSuggestion, 0, len(merged))
	for _, s := range merged {
		result = append(result, *s)
	}
	slices.SortFunc(result, func(a, b model.CheckSuggestion) int {
		if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
			return c
		}
		return cmp.Compare(a.CheckID, b.CheckID)
	})

	if uc.limit > 0 && len(result) > uc.limit {
		result = result[:uc.limit]
	}
	return result
}

// SuggestOptimizations finds packages that would price the individually selected checks
// they share below their individual total. Only individual-mode selections qualify.
func (uc *SuggestionUseCase) SuggestOptimizations(sel model.Selection) []model.OptimizationSuggestion {
	if sel.Mode != types.SelectionModeIndividual {
		return nil
	}
	effective := uc.selection.EffectiveChecks(sel)
	if len(effective) < MinOptimizationOverlap {
		return nil
	}

	var result []model.OptimizationSuggestion
	for _, pkg := range uc.catalog.PackagesFor(sel.EntityType) {
		overlap := 0
		var overlapCost float64
		for _, check := range effective {
			if pkg.Contains(check.ID) {
				overlap++
				overlapCost += check.EstimatedCost
			}
		}
		if overlap < MinOptimizationOverlap {
			continue
		}

		ratio := float64(overlap) / float64(len(pkg.CheckIDs))
		savings := math.Round((overlapCost-pkg.TotalEstimatedCost*ratio)*100) / 100
		if savings <= MinOptimizationSavings {
			continue
		}
		result = append(result, model.OptimizationSuggestion{
			PackageID:        pkg.ID,
			Name:             pkg.Name,
			PotentialSavings: savings,
			OverlapCount:     overlap,
		})
	}

	slices.SortFunc(result, func(a, b model.OptimizationSuggestion) int {
		if c := cmp.Compare(b.PotentialSavings, a.PotentialSavings); c != 0 {
			return c
		}
		return cmp.Compare(a.PackageID, b.PackageID)
	})
	return result
}
