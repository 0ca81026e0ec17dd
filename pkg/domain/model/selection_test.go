package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

func TestSelection_WithToggled(t *testing.T) {
	sel := model.Selection{
		EntityType: types.EntityTypeIndividual,
		Mode:       types.SelectionModeIndividual,
		CheckIDs:   []types.CheckID{"a", "b"},
	}

	added := sel.WithToggled("c")
	gt.Value(t, added.CheckIDs).Equal([]types.CheckID{"a", "b", "c"})
	gt.Value(t, sel.CheckIDs).Equal([]types.CheckID{"a", "b"})

	removed := added.WithToggled("a")
	gt.Value(t, removed.CheckIDs).Equal([]types.CheckID{"b", "c"})
	gt.Value(t, removed.Mode).Equal(types.SelectionModeIndividual)

	gt.Value(t, added.WithToggled("c")).Equal(sel)
}

func TestSelection_WithToggledClearsPackage(t *testing.T) {
	pkg := &model.Package{ID: "basic", CheckIDs: []types.CheckID{"a", "b"}}
	sel := model.NewSelection(types.EntityTypeIndividual).WithPackage(pkg)
	gt.Value(t, sel.Mode).Equal(types.SelectionModePackage)
	gt.Value(t, sel.PackageID).Equal(types.PackageID("basic"))

	// Mutating the package slice must not leak into the selection
	pkg.CheckIDs[0] = "z"
	gt.Value(t, sel.CheckIDs).Equal([]types.CheckID{"a", "b"})

	toggled := sel.WithToggled("b")
	gt.Value(t, toggled.Mode).Equal(types.SelectionModeIndividual)
	gt.Value(t, toggled.PackageID).Equal(types.PackageID(""))
	gt.Value(t, toggled.CheckIDs).Equal([]types.CheckID{"a"})
}

func TestSelection_IsEmpty(t *testing.T) {
	gt.Bool(t, model.NewSelection(types.EntityTypeCompany).IsEmpty()).True()
	gt.Bool(t, model.NewSelection(types.EntityTypeCompany).WithToggled("a").IsEmpty()).False()
}

func TestSelection_Clone(t *testing.T) {
	sel := model.Selection{CheckIDs: []types.CheckID{"a"}}
	cloned := sel.Clone()
	cloned.CheckIDs[0] = "b"
	gt.Value(t, sel.CheckIDs[0]).Equal(types.CheckID("a"))
}
