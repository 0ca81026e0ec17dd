package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

// SelectionUseCase resolves selections against the catalog and applies
// the three selection transitions. It never mutates its inputs.
type SelectionUseCase struct {
	catalog *model.Catalog
}

func NewSelectionUseCase(catalog *model.Catalog) *SelectionUseCase {
	return &SelectionUseCase{catalog: catalog}
}

// ResolveEffectiveChecks returns the checks the selection stands for, in catalog order.
// Package mode fails when the package is unknown or not offered for the entity type.
// Individual mode silently drops unknown or inapplicable check IDs.
func (uc *SelectionUseCase) ResolveEffectiveChecks(sel model.Selection) ([]*model.CheckDefinition, error) {
	switch sel.Mode {
	case types.SelectionModePackage:
		pkg, err := uc.applicablePackage(sel.EntityType, sel.PackageID)
		if err != nil {
			return nil, err
		}
		return uc.checksOf(uc.catalog.SortByCatalogOrder(pkg.CheckIDs)), nil

	case types.SelectionModeIndividual:
		var checks []*model.CheckDefinition
		for _, check := range uc.checksOf(uc.catalog.SortByCatalogOrder(sel.CheckIDs)) {
			if check.AppliesTo(sel.EntityType) {
				checks = append(checks, check)
			}
		}
		return checks, nil

	default:
		return nil, nil
	}
}

// EffectiveChecks is ResolveEffectiveChecks for queries: a stale package yields an empty set.
func (uc *SelectionUseCase) EffectiveChecks(sel model.Selection) []*model.CheckDefinition {
	checks, err := uc.ResolveEffectiveChecks(sel)
	if err != nil {
		return nil
	}
	return checks
}

// ToggleCheck adds the check if absent and removes it if present. The result is always
// in individual mode with no package. In package mode the package's catalog checks
// become the individual base, whatever CheckIDs the input carries.
// On error the input selection is returned unchanged.
func (uc *SelectionUseCase) ToggleCheck(sel model.Selection, id types.CheckID) (model.Selection, error) {
	base := sel
	if sel.Mode == types.SelectionModePackage {
		pkg, err := uc.applicablePackage(sel.EntityType, sel.PackageID)
		if err != nil {
			return sel, goerr.Wrap(err, "cannot toggle check of stale package", goerr.V(model.CheckIDKey, id))
		}
		base = sel.WithPackage(pkg)
		base.CheckIDs = uc.catalog.SortByCatalogOrder(base.CheckIDs)
	}

	if !base.Has(id) {
		check, err := uc.catalog.Check(id)
		if err != nil {
			return sel, err
		}
		if !check.AppliesTo(sel.EntityType) {
			return sel, goerr.Wrap(model.ErrInapplicableEntityType, "check is not available for entity type",
				goerr.V(model.CheckIDKey, id),
				goerr.V(model.EntityTypeKey, sel.EntityType))
		}
	}
	return base.WithToggled(id), nil
}

// SelectPackage switches the selection to the package. On error the input selection is
// returned unchanged.
func (uc *SelectionUseCase) SelectPackage(sel model.Selection, id types.PackageID) (model.Selection, error) {
	pkg, err := uc.applicablePackage(sel.EntityType, id)
	if err != nil {
		return sel, err
	}
	return sel.WithPackage(pkg), nil
}

// ChangeEntityType starts over with an empty selection for the new entity type,
// since check and package applicability depend on it.
func (uc *SelectionUseCase) ChangeEntityType(sel model.Selection, entityType types.EntityType) (model.Selection, error) {
	if !entityType.IsValid() {
		return sel, goerr.Wrap(ErrInvalidEntityType, "cannot change entity type", goerr.V(model.EntityTypeKey, entityType))
	}
	return model.NewSelection(entityType), nil
}

func (uc *SelectionUseCase) applicablePackage(entityType types.EntityType, id types.PackageID) (*model.Package, error) {
	pkg, err := uc.catalog.Package(id)
	if err != nil {
		return nil, err
	}
	if !pkg.AppliesTo(entityType) {
		return nil, goerr.Wrap(model.ErrInapplicableEntityType, "package is not available for entity type",
			goerr.V(model.PackageIDKey, id),
			goerr.V(model.EntityTypeKey, entityType))
	}
	return pkg, nil
}

func (uc *SelectionUseCase) checksOf(ids []types.CheckID) []*model.CheckDefinition {
	checks := make([]*model.CheckDefinition, 0, len(ids))
	for _, id := range ids {
		if check, err := uc.catalog.Check(id); err == nil {
			checks = append(checks, check)
		}
	}
	return checks
}
