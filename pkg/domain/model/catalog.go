package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

// Catalog is the immutable registry of check definitions and packages.
// Accessors hand out copies, so callers cannot alter registered entries.
// Registration order is preserved and is the "catalog order" used for resolving selections.
type Catalog struct {
	checks       map[types.CheckID]*CheckDefinition
	checkOrder   []types.CheckID
	checkIndex   map[types.CheckID]int
	packages     map[types.PackageID]*Package
	packageOrder []types.PackageID
	trending     map[types.EntityType][]types.CheckID
	baseline     Baseline
}

// Baseline holds catalog-wide averages that selection statistics are compared against
type Baseline struct {
	AverageCostPerCheck   float64
	AverageTurnaroundDays float64
}

// NewCatalog validates the definitions and builds a Catalog.
// trending lists, per entity type, the checks surfaced as trending suggestions.
func NewCatalog(checks []CheckDefinition, packages []Package, trending map[types.EntityType][]types.CheckID) (*Catalog, error) {
	c := &Catalog{
		checks:     make(map[types.CheckID]*CheckDefinition, len(checks)),
		checkIndex: make(map[types.CheckID]int, len(checks)),
		packages:   make(map[types.PackageID]*Package, len(packages)),
		trending:   make(map[types.EntityType][]types.CheckID),
	}

	var totalCost float64
	var totalDays int
	for i := range checks {
		check := checks[i]
		if err := validateCheck(&check); err != nil {
			return nil, err
		}
		if _, exists := c.checks[check.ID]; exists {
			return nil, goerr.Wrap(ErrInvalidCatalog, "duplicate check ID", goerr.V(CheckIDKey, check.ID))
		}
		check.ApplicableEntityTypes = slices.Clone(check.ApplicableEntityTypes)
		c.checkIndex[check.ID] = len(c.checkOrder)
		c.checks[check.ID] = &check
		c.checkOrder = append(c.checkOrder, check.ID)

		totalCost += check.EstimatedCost
		totalDays += check.EstimatedTurnaroundDays
	}
	if n := len(c.checkOrder); n > 0 {
		c.baseline = Baseline{
			AverageCostPerCheck:   totalCost / float64(n),
			AverageTurnaroundDays: float64(totalDays) / float64(n),
		}
	}

	for i := range packages {
		pkg := packages[i]
		pkg.ApplicableEntityTypes = slices.Clone(pkg.ApplicableEntityTypes)
		pkg.CheckIDs = dedupCheckIDs(pkg.CheckIDs)
		if err := c.validatePackage(&pkg); err != nil {
			return nil, err
		}
		if _, exists := c.packages[pkg.ID]; exists {
			return nil, goerr.Wrap(ErrInvalidCatalog, "duplicate package ID", goerr.V(PackageIDKey, pkg.ID))
		}
		c.packages[pkg.ID] = &pkg
		c.packageOrder = append(c.packageOrder, pkg.ID)
	}

	for entityType, ids := range trending {
		if !entityType.IsValid() {
			return nil, goerr.Wrap(ErrInvalidCatalog, "invalid trending entity type", goerr.V(EntityTypeKey, entityType))
		}
		ids = dedupCheckIDs(ids)
		for _, id := range ids {
			check, ok := c.checks[id]
			if !ok {
				return nil, goerr.Wrap(ErrInvalidCatalog, "trending check not in catalog",
					goerr.V(CheckIDKey, id), goerr.V(EntityTypeKey, entityType))
			}
			if !check.AppliesTo(entityType) {
				return nil, goerr.Wrap(ErrInvalidCatalog, "trending check not applicable to entity type",
					goerr.V(CheckIDKey, id), goerr.V(EntityTypeKey, entityType))
			}
		}
		c.trending[entityType] = ids
	}

	return c, nil
}

func validateCheck(check *CheckDefinition) error {
	if err := check.ID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCatalog, "invalid check ID", goerr.V(CheckIDKey, check.ID), goerr.V("cause", err.Error()))
	}
	if check.Name == "" {
		return goerr.Wrap(ErrInvalidCatalog, "check name is required", goerr.V(CheckIDKey, check.ID))
	}
	if !check.Category.IsValid() {
		return goerr.Wrap(ErrInvalidCatalog, "invalid check category",
			goerr.V(CheckIDKey, check.ID), goerr.V("category", check.Category))
	}
	if !check.RiskLevel.IsValid() {
		return goerr.Wrap(ErrInvalidCatalog, "invalid check risk level",
			goerr.V(CheckIDKey, check.ID), goerr.V("risk_level", check.RiskLevel))
	}
	if err := validateEntityTypes(check.ApplicableEntityTypes); err != nil {
		return goerr.Wrap(err, "invalid check entity types", goerr.V(CheckIDKey, check.ID))
	}
	if check.EstimatedCost < 0 {
		return goerr.Wrap(ErrInvalidCatalog, "check cost must not be negative",
			goerr.V(CheckIDKey, check.ID), goerr.V("cost", check.EstimatedCost))
	}
	if check.EstimatedTurnaroundDays < 1 {
		return goerr.Wrap(ErrInvalidCatalog, "check turnaround must be at least one day",
			goerr.V(CheckIDKey, check.ID), goerr.V("turnaround_days", check.EstimatedTurnaroundDays))
	}
	return nil
}

func (c *Catalog) validatePackage(pkg *Package) error {
	if err := pkg.ID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCatalog, "invalid package ID", goerr.V(PackageIDKey, pkg.ID), goerr.V("cause", err.Error()))
	}
	if pkg.Name == "" {
		return goerr.Wrap(ErrInvalidCatalog, "package name is required", goerr.V(PackageIDKey, pkg.ID))
	}
	if err := validateEntityTypes(pkg.ApplicableEntityTypes); err != nil {
		return goerr.Wrap(err, "invalid package entity types", goerr.V(PackageIDKey, pkg.ID))
	}
	if pkg.DiscountPercentage < 0 || pkg.DiscountPercentage > 100 {
		return goerr.Wrap(ErrInvalidCatalog, "package discount must be between 0 and 100",
			goerr.V(PackageIDKey, pkg.ID), goerr.V("discount_percentage", pkg.DiscountPercentage))
	}
	if pkg.TotalEstimatedCost < 0 {
		return goerr.Wrap(ErrInvalidCatalog, "package cost must not be negative", goerr.V(PackageIDKey, pkg.ID))
	}
	if pkg.TotalEstimatedTurnaroundDays < 0 {
		return goerr.Wrap(ErrInvalidCatalog, "package turnaround must not be negative", goerr.V(PackageIDKey, pkg.ID))
	}

	for _, id := range pkg.CheckIDs {
		check, ok := c.checks[id]
		if !ok {
			return goerr.Wrap(ErrInvalidCatalog, "package references unknown check",
				goerr.V(PackageIDKey, pkg.ID), goerr.V(CheckIDKey, id))
		}
		shared := false
		for _, t := range pkg.ApplicableEntityTypes {
			if check.AppliesTo(t) {
				shared = true
				break
			}
		}
		if !shared {
			return goerr.Wrap(ErrInvalidCatalog, "package check shares no entity type with package",
				goerr.V(PackageIDKey, pkg.ID), goerr.V(CheckIDKey, id))
		}
	}
	return nil
}

func validateEntityTypes(entityTypes []types.EntityType) error {
	if len(entityTypes) == 0 {
		return goerr.Wrap(ErrInvalidCatalog, "at least one applicable entity type is required")
	}
	for _, t := range entityTypes {
		if !t.IsValid() {
			return goerr.Wrap(ErrInvalidCatalog, "invalid entity type", goerr.V(EntityTypeKey, t))
		}
	}
	return nil
}

func dedupCheckIDs(ids []types.CheckID) []types.CheckID {
	seen := make(map[types.CheckID]struct{}, len(ids))
	result := make([]types.CheckID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// Check retrieves a check definition by ID
func (c *Catalog) Check(id types.CheckID) (*CheckDefinition, error) {
	check, ok := c.checks[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "check not found", goerr.V(CheckIDKey, id))
	}
	return check.Clone(), nil
}

// Package retrieves a package by ID
func (c *Catalog) Package(id types.PackageID) (*Package, error) {
	pkg, ok := c.packages[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "package not found", goerr.V(PackageIDKey, id))
	}
	return pkg.Clone(), nil
}

// Checks returns all check definitions in catalog order
func (c *Catalog) Checks() []*CheckDefinition {
	result := make([]*CheckDefinition, 0, len(c.checkOrder))
	for _, id := range c.checkOrder {
		result = append(result, c.checks[id].Clone())
	}
	return result
}

// ChecksFor returns the checks applicable to the entity type in catalog order
func (c *Catalog) ChecksFor(t types.EntityType) []*CheckDefinition {
	var result []*CheckDefinition
	for _, id := range c.checkOrder {
		if check := c.checks[id]; check.AppliesTo(t) {
			result = append(result, check.Clone())
		}
	}
	return result
}

// Packages returns all packages in registration order
func (c *Catalog) Packages() []*Package {
	result := make([]*Package, 0, len(c.packageOrder))
	for _, id := range c.packageOrder {
		result = append(result, c.packages[id].Clone())
	}
	return result
}

// PackagesFor returns the packages offered for the entity type in registration order
func (c *Catalog) PackagesFor(t types.EntityType) []*Package {
	var result []*Package
	for _, id := range c.packageOrder {
		if pkg := c.packages[id]; pkg.AppliesTo(t) {
			result = append(result, pkg.Clone())
		}
	}
	return result
}

// Trending returns the trending checks configured for the entity type
func (c *Catalog) Trending(t types.EntityType) []*CheckDefinition {
	ids := c.trending[t]
	result := make([]*CheckDefinition, 0, len(ids))
	for _, id := range ids {
		result = append(result, c.checks[id].Clone())
	}
	return result
}

// Baseline returns the catalog-wide averages
func (c *Catalog) Baseline() Baseline {
	return c.baseline
}

// SortByCatalogOrder returns the IDs known to the catalog, de-duplicated, in catalog order.
// Unknown IDs are dropped.
func (c *Catalog) SortByCatalogOrder(ids []types.CheckID) []types.CheckID {
	known := make([]types.CheckID, 0, len(ids))
	for _, id := range dedupCheckIDs(ids) {
		if _, ok := c.checkIndex[id]; ok {
			known = append(known, id)
		}
	}
	slices.SortFunc(known, func(a, b types.CheckID) int {
		return c.checkIndex[a] - c.checkIndex[b]
	})
	return known
}
