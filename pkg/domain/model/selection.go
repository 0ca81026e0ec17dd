package model

import (
	"slices"

	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

// Selection is the user's in-progress choice of checks for one vetting request.
// It is a value: transitions build a new Selection and never share CheckIDs
// backing storage with the receiver.
type Selection struct {
	EntityType types.EntityType    `json:"entity_type"`
	Mode       types.SelectionMode `json:"mode"`
	PackageID  types.PackageID     `json:"package_id,omitempty"`
	CheckIDs   []types.CheckID     `json:"check_ids,omitempty"`
}

// NewSelection returns an empty selection for the entity type with no mode chosen
func NewSelection(entityType types.EntityType) Selection {
	return Selection{EntityType: entityType}
}

// Has reports whether the check ID is part of the selection's check IDs
func (s Selection) Has(id types.CheckID) bool {
	return slices.Contains(s.CheckIDs, id)
}

// IsEmpty reports whether nothing has been selected yet
func (s Selection) IsEmpty() bool {
	return s.PackageID == "" && len(s.CheckIDs) == 0
}

// WithPackage returns a package-mode copy of the selection carrying the package's checks
func (s Selection) WithPackage(pkg *Package) Selection {
	return Selection{
		EntityType: s.EntityType,
		Mode:       types.SelectionModePackage,
		PackageID:  pkg.ID,
		CheckIDs:   slices.Clone(pkg.CheckIDs),
	}
}

// WithToggled returns an individual-mode copy with the check added or removed.
// Removal keeps the order of the remaining checks; addition appends.
func (s Selection) WithToggled(id types.CheckID) Selection {
	next := Selection{
		EntityType: s.EntityType,
		Mode:       types.SelectionModeIndividual,
	}

	if s.Has(id) {
		next.CheckIDs = make([]types.CheckID, 0, len(s.CheckIDs)-1)
		for _, existing := range s.CheckIDs {
			if existing != id {
				next.CheckIDs = append(next.CheckIDs, existing)
			}
		}
		return next
	}

	next.CheckIDs = make([]types.CheckID, 0, len(s.CheckIDs)+1)
	next.CheckIDs = append(next.CheckIDs, s.CheckIDs...)
	next.CheckIDs = append(next.CheckIDs, id)
	return next
}

// Clone returns a deep copy of the selection
func (s Selection) Clone() Selection {
	s.CheckIDs = slices.Clone(s.CheckIDs)
	return s
}
