package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

func validChecks() []model.CheckDefinition {
	return []model.CheckDefinition{
		{
			ID:                      "id-verification",
			Name:                    "ID Verification",
			Category:                types.CategoryIdentity,
			ApplicableEntityTypes:   []types.EntityType{types.EntityTypeIndividual, types.EntityTypeStaffMedical},
			EstimatedCost:           50,
			EstimatedTurnaroundDays: 1,
			RiskLevel:               types.RiskLevelMedium,
			Provider:                "Home Affairs",
		},
		{
			ID:                      "criminal-record",
			Name:                    "Criminal Record",
			Category:                types.CategoryCriminal,
			ApplicableEntityTypes:   []types.EntityType{types.EntityTypeIndividual},
			EstimatedCost:           150,
			EstimatedTurnaroundDays: 2,
			ConsentRequired:         true,
			RiskLevel:               types.RiskLevelHigh,
			Provider:                "SAPS",
		},
		{
			ID:                      "cipc-registration",
			Name:                    "CIPC Registration",
			Category:                types.CategoryCompliance,
			ApplicableEntityTypes:   []types.EntityType{types.EntityTypeCompany},
			EstimatedCost:           100,
			EstimatedTurnaroundDays: 3,
			RiskLevel:               types.RiskLevelLow,
			Provider:                "CIPC",
		},
	}
}

func TestNewCatalog(t *testing.T) {
	catalog, err := model.NewCatalog(validChecks(), []model.Package{
		{
			ID:                           "basic",
			Name:                         "Basic",
			ApplicableEntityTypes:        []types.EntityType{types.EntityTypeIndividual},
			CheckIDs:                     []types.CheckID{"criminal-record", "id-verification", "criminal-record"},
			TotalEstimatedCost:           180,
			TotalEstimatedTurnaroundDays: 2,
			DiscountPercentage:           10,
		},
	}, map[types.EntityType][]types.CheckID{
		types.EntityTypeIndividual: {"criminal-record"},
	})
	gt.NoError(t, err).Required()

	gt.Array(t, catalog.Checks()).Length(3)
	gt.Value(t, catalog.Checks()[0].ID).Equal(types.CheckID("id-verification"))
	gt.Array(t, catalog.ChecksFor(types.EntityTypeIndividual)).Length(2)
	gt.Array(t, catalog.ChecksFor(types.EntityTypeCompany)).Length(1)

	pkg, err := catalog.Package("basic")
	gt.NoError(t, err).Required()
	gt.Value(t, pkg.CheckIDs).Equal([]types.CheckID{"criminal-record", "id-verification"})
	gt.Array(t, catalog.PackagesFor(types.EntityTypeIndividual)).Length(1)
	gt.Array(t, catalog.PackagesFor(types.EntityTypeCompany)).Length(0)

	trending := catalog.Trending(types.EntityTypeIndividual)
	gt.Array(t, trending).Length(1).Required()
	gt.Value(t, trending[0].ID).Equal(types.CheckID("criminal-record"))
	gt.Array(t, catalog.Trending(types.EntityTypeCompany)).Length(0)

	baseline := catalog.Baseline()
	gt.Value(t, baseline.AverageCostPerCheck).Equal(100.0)
	gt.Value(t, baseline.AverageTurnaroundDays).Equal(2.0)
}

func TestCatalog_Lookup(t *testing.T) {
	catalog, err := model.NewCatalog(validChecks(), nil, nil)
	gt.NoError(t, err).Required()

	check, err := catalog.Check("criminal-record")
	gt.NoError(t, err).Required()
	gt.Value(t, check.Provider).Equal("SAPS")
	gt.Bool(t, check.AppliesTo(types.EntityTypeIndividual)).True()
	gt.Bool(t, check.AppliesTo(types.EntityTypeCompany)).False()

	_, err = catalog.Check("unknown")
	gt.Error(t, err).Is(model.ErrNotFound)

	_, err = catalog.Package("unknown")
	gt.Error(t, err).Is(model.ErrNotFound)
}

func TestCatalog_SortByCatalogOrder(t *testing.T) {
	catalog, err := model.NewCatalog(validChecks(), nil, nil)
	gt.NoError(t, err).Required()

	got := catalog.SortByCatalogOrder([]types.CheckID{"cipc-registration", "unknown", "id-verification", "cipc-registration"})
	gt.Value(t, got).Equal([]types.CheckID{"id-verification", "cipc-registration"})
}

func TestNewCatalog_EmptyBaseline(t *testing.T) {
	catalog, err := model.NewCatalog(nil, nil, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, catalog.Baseline()).Equal(model.Baseline{})
	gt.Array(t, catalog.Checks()).Length(0)
}

func TestNewCatalog_Invalid(t *testing.T) {
	individual := []types.EntityType{types.EntityTypeIndividual}

	tests := []struct {
		name     string
		mutate   func(checks []model.CheckDefinition) []model.CheckDefinition
		packages []model.Package
		trending map[types.EntityType][]types.CheckID
	}{
		{
			name: "duplicate check ID",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				return append(checks, checks[0])
			},
		},
		{
			name: "invalid check ID",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				checks[0].ID = "ID_Verification"
				return checks
			},
		},
		{
			name: "missing name",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				checks[0].Name = ""
				return checks
			},
		},
		{
			name: "no entity types",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				checks[0].ApplicableEntityTypes = nil
				return checks
			},
		},
		{
			name: "negative cost",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				checks[0].EstimatedCost = -1
				return checks
			},
		},
		{
			name: "zero turnaround",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				checks[0].EstimatedTurnaroundDays = 0
				return checks
			},
		},
		{
			name: "invalid category",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				checks[0].Category = "biometric"
				return checks
			},
		},
		{
			name: "invalid risk level",
			mutate: func(checks []model.CheckDefinition) []model.CheckDefinition {
				checks[0].RiskLevel = "critical"
				return checks
			},
		},
		{
			name: "package references unknown check",
			packages: []model.Package{
				{ID: "basic", Name: "Basic", ApplicableEntityTypes: individual, CheckIDs: []types.CheckID{"unknown"}},
			},
		},
		{
			name: "package check shares no entity type",
			packages: []model.Package{
				{ID: "basic", Name: "Basic", ApplicableEntityTypes: individual, CheckIDs: []types.CheckID{"cipc-registration"}},
			},
		},
		{
			name: "package discount out of range",
			packages: []model.Package{
				{ID: "basic", Name: "Basic", ApplicableEntityTypes: individual, DiscountPercentage: 120},
			},
		},
		{
			name: "duplicate package ID",
			packages: []model.Package{
				{ID: "basic", Name: "Basic", ApplicableEntityTypes: individual},
				{ID: "basic", Name: "Basic again", ApplicableEntityTypes: individual},
			},
		},
		{
			name: "trending check not applicable",
			trending: map[types.EntityType][]types.CheckID{
				types.EntityTypeCompany: {"criminal-record"},
			},
		},
		{
			name: "trending check unknown",
			trending: map[types.EntityType][]types.CheckID{
				types.EntityTypeIndividual: {"unknown"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := validChecks()
			if tt.mutate != nil {
				checks = tt.mutate(checks)
			}
			_, err := model.NewCatalog(checks, tt.packages, tt.trending)
			gt.Error(t, err).Is(model.ErrInvalidCatalog)
		})
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	catalog, err := model.NewCatalog(validChecks(), []model.Package{
		{
			ID:                    "basic",
			Name:                  "Basic",
			ApplicableEntityTypes: []types.EntityType{types.EntityTypeIndividual},
			CheckIDs:              []types.CheckID{"id-verification", "criminal-record"},
			TotalEstimatedCost:    180,
		},
	}, map[types.EntityType][]types.CheckID{
		types.EntityTypeIndividual: {"criminal-record"},
	})
	gt.NoError(t, err).Required()

	check, err := catalog.Check("criminal-record")
	gt.NoError(t, err).Required()
	check.EstimatedCost = 1
	check.ApplicableEntityTypes[0] = types.EntityTypeCompany

	catalog.Checks()[1].Name = "tampered"
	catalog.ChecksFor(types.EntityTypeIndividual)[1].RiskLevel = types.RiskLevelLow
	catalog.Trending(types.EntityTypeIndividual)[0].Provider = "tampered"

	got, err := catalog.Check("criminal-record")
	gt.NoError(t, err).Required()
	gt.Value(t, got.EstimatedCost).Equal(150.0)
	gt.Value(t, got.Name).Equal("Criminal Record")
	gt.Value(t, got.RiskLevel).Equal(types.RiskLevelHigh)
	gt.Value(t, got.Provider).Equal("SAPS")
	gt.Bool(t, got.AppliesTo(types.EntityTypeIndividual)).True()

	pkg, err := catalog.Package("basic")
	gt.NoError(t, err).Required()
	pkg.CheckIDs[0] = "tampered"
	pkg.TotalEstimatedCost = 0
	catalog.Packages()[0].Name = "tampered"
	catalog.PackagesFor(types.EntityTypeIndividual)[0].IsPopular = true

	gotPkg, err := catalog.Package("basic")
	gt.NoError(t, err).Required()
	gt.Value(t, gotPkg.CheckIDs).Equal([]types.CheckID{"id-verification", "criminal-record"})
	gt.Value(t, gotPkg.TotalEstimatedCost).Equal(180.0)
	gt.Value(t, gotPkg.Name).Equal("Basic")
	gt.Bool(t, gotPkg.IsPopular).False()
}
