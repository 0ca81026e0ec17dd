package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/utils/logging"
)

// QuoteInput is the caller-side state of a vetting request form
type QuoteInput struct {
	EntityType types.EntityType    `json:"entity_type"`
	Mode       types.SelectionMode `json:"mode"`
	PackageID  types.PackageID     `json:"package_id,omitempty"`
	CheckIDs   []types.CheckID     `json:"check_ids,omitempty"`
	Budget     float64             `json:"budget,omitempty"` // ZAR, <= 0 means no budget
}

// selection converts the input into a Selection. In package mode the check IDs are
// taken from the package when it exists.
func (in QuoteInput) selection(catalog *model.Catalog) model.Selection {
	sel := model.Selection{
		EntityType: in.EntityType,
		Mode:       in.Mode,
	}
	switch in.Mode {
	case types.SelectionModePackage:
		sel.PackageID = in.PackageID
		if pkg, err := catalog.Package(in.PackageID); err == nil {
			return sel.WithPackage(pkg)
		}
	case types.SelectionModeIndividual:
		sel.CheckIDs = append([]types.CheckID(nil), in.CheckIDs...)
	}
	return sel
}

// Quote computes every view-model for the input. Only a malformed entity type or mode is
// rejected; stale or unknown IDs degrade to an empty or filtered check set.
func (uc *UseCases) Quote(ctx context.Context, in QuoteInput) (*model.Calculation, error) {
	if !in.EntityType.IsValid() {
		return nil, goerr.Wrap(ErrInvalidEntityType, "invalid quote input", goerr.V(model.EntityTypeKey, in.EntityType))
	}
	if !in.Mode.IsValid() {
		return nil, goerr.Wrap(ErrInvalidSelectionMode, "invalid quote input", goerr.V(ModeKey, in.Mode))
	}

	sel := in.selection(uc.catalog)
	calc := uc.Calculate(sel, in.Budget)

	logging.From(ctx).Debug("quote calculated",
		"entity_type", sel.EntityType,
		"mode", sel.Mode,
		"package_id", sel.PackageID,
		"check_count", len(calc.Checks),
		"total_cost", calc.TotalCost,
		"turnaround_days", calc.TotalTurnaroundDays,
	)
	return calc, nil
}

// Calculate derives the full Calculation for a selection. It never fails.
func (uc *UseCases) Calculate(sel model.Selection, budget float64) *model.Calculation {
	checks := uc.Selection.EffectiveChecks(sel)
	if checks == nil {
		checks = []*model.CheckDefinition{}
	}

	calc := &model.Calculation{
		Selection:           sel.Clone(),
		Checks:              checks,
		TotalCost:           uc.Pricing.TotalCost(checks, sel),
		TotalTurnaroundDays: uc.Pricing.MaxTurnaroundDays(checks, sel),
		RiskCoverage:        uc.Pricing.RiskCoverage(checks),
		ProviderBreakdown:   uc.Pricing.ProviderBreakdown(checks),
		ConsentRequired:     uc.Pricing.ConsentRequired(checks),
	}
	calc.CostBreakdown = uc.Pricing.CostBreakdownByCategory(checks, calc.TotalCost)
	calc.EfficiencyScore = uc.Pricing.EfficiencyScore(calc)
	calc.PackageSuggestions = uc.Suggestion.SuggestPackages(sel, budget)
	calc.CheckSuggestions = uc.Suggestion.SuggestAdditionalChecks(sel, budget)
	calc.OptimizationSuggestions = uc.Suggestion.SuggestOptimizations(sel)
	return calc
}
