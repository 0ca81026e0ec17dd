package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/repository/memory"
	"github.com/secmon-lab/vetplan/pkg/usecase"
)

var (
	individual   = []types.EntityType{types.EntityTypeIndividual}
	company      = []types.EntityType{types.EntityTypeCompany}
	staffMedical = []types.EntityType{types.EntityTypeStaffMedical}
)

func testChecks() []model.CheckDefinition {
	return []model.CheckDefinition{
		{ID: "id-verify", Name: "ID Verification", Category: types.CategoryIdentity,
			ApplicableEntityTypes: []types.EntityType{types.EntityTypeIndividual, types.EntityTypeStaffMedical},
			EstimatedCost:         50, EstimatedTurnaroundDays: 1, RiskLevel: types.RiskLevelMedium, Provider: "Home Affairs"},
		{ID: "criminal", Name: "Criminal Record", Category: types.CategoryCriminal,
			ApplicableEntityTypes: individual, EstimatedCost: 150, EstimatedTurnaroundDays: 2,
			ConsentRequired: true, RiskLevel: types.RiskLevelHigh, Provider: "SAPS"},
		{ID: "credit", Name: "Credit Check", Category: types.CategoryFinancial,
			ApplicableEntityTypes: []types.EntityType{types.EntityTypeIndividual, types.EntityTypeCompany},
			EstimatedCost:         120, EstimatedTurnaroundDays: 3, ConsentRequired: true,
			RiskLevel: types.RiskLevelMedium, Provider: "TransUnion"},
		{ID: "sanctions", Name: "Sanctions Screening", Category: types.CategoryCompliance,
			ApplicableEntityTypes: []types.EntityType{types.EntityTypeIndividual, types.EntityTypeCompany},
			EstimatedCost:         80, EstimatedTurnaroundDays: 1, RiskLevel: types.RiskLevelHigh, Provider: "WorldCheck"},
		{ID: "qualification", Name: "Qualification Verification", Category: types.CategoryOperational,
			ApplicableEntityTypes: individual, EstimatedCost: 200, EstimatedTurnaroundDays: 5,
			RiskLevel: types.RiskLevelLow, Provider: "SAQA"},
		{ID: "cipc", Name: "CIPC Registration", Category: types.CategoryCompliance,
			ApplicableEntityTypes: company, EstimatedCost: 100, EstimatedTurnaroundDays: 2,
			RiskLevel: types.RiskLevelLow, Provider: "CIPC"},
		{ID: "medical-fitness", Name: "Medical Fitness", Category: types.CategoryMedical,
			ApplicableEntityTypes: staffMedical, EstimatedCost: 300, EstimatedTurnaroundDays: 4,
			ConsentRequired: true, RiskLevel: types.RiskLevelHigh, Provider: "OccuMed"},
		{ID: "media-scan", Name: "Adverse Media Scan", Category: types.CategoryReputational,
			ApplicableEntityTypes: individual, EstimatedCost: 30, EstimatedTurnaroundDays: 1,
			RiskLevel: types.RiskLevelLow, Provider: "MediaScan"},
	}
}

func testPackages() []model.Package {
	return []model.Package{
		{ID: "basic", Name: "Basic", ApplicableEntityTypes: individual,
			CheckIDs:           []types.CheckID{"id-verify", "criminal"},
			TotalEstimatedCost: 180, TotalEstimatedTurnaroundDays: 2, DiscountPercentage: 10, IsPopular: true},
		{ID: "full", Name: "Full", ApplicableEntityTypes: individual,
			CheckIDs:           []types.CheckID{"id-verify", "criminal", "credit", "sanctions"},
			TotalEstimatedCost: 300, TotalEstimatedTurnaroundDays: 3},
		{ID: "supplier", Name: "Supplier", ApplicableEntityTypes: company,
			CheckIDs:           []types.CheckID{"cipc", "credit", "sanctions"},
			TotalEstimatedCost: 250, TotalEstimatedTurnaroundDays: 3, IsPopular: true},
		{ID: "mining", Name: "Mining", ApplicableEntityTypes: staffMedical,
			CheckIDs:           []types.CheckID{"id-verify", "medical-fitness"},
			TotalEstimatedCost: 320, TotalEstimatedTurnaroundDays: 4},
	}
}

func newTestCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	catalog, err := model.NewCatalog(testChecks(), testPackages(), map[types.EntityType][]types.CheckID{
		types.EntityTypeIndividual: {"sanctions", "credit"},
	})
	gt.NoError(t, err).Required()
	return catalog
}

func newTestUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	return usecase.New(memory.New(), newTestCatalog(t), opts...)
}

func individualSelection(ids ...types.CheckID) model.Selection {
	return model.Selection{
		EntityType: types.EntityTypeIndividual,
		Mode:       types.SelectionModeIndividual,
		CheckIDs:   ids,
	}
}

func checkIDs(checks []*model.CheckDefinition) []types.CheckID {
	ids := make([]types.CheckID, len(checks))
	for i, c := range checks {
		ids[i] = c.ID
	}
	return ids
}
