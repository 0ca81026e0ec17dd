package model

import (
	"slices"

	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

// CheckDefinition is an immutable catalog entry describing one verification procedure
type CheckDefinition struct {
	ID                      types.CheckID      `json:"id"`
	Name                    string             `json:"name"`
	Description             string             `json:"description"`
	Category                types.Category     `json:"category"`
	ApplicableEntityTypes   []types.EntityType `json:"applicable_entity_types"`
	EstimatedCost           float64            `json:"estimated_cost"` // ZAR
	EstimatedTurnaroundDays int                `json:"estimated_turnaround_days"`
	ConsentRequired         bool               `json:"consent_required"`
	RiskLevel               types.RiskLevel    `json:"risk_level"`
	Provider                string             `json:"provider"` // display only
}

// AppliesTo reports whether the check can be run for the entity type
func (c *CheckDefinition) AppliesTo(t types.EntityType) bool {
	return slices.Contains(c.ApplicableEntityTypes, t)
}

// Clone returns a deep copy of the check definition
func (c *CheckDefinition) Clone() *CheckDefinition {
	copied := *c
	copied.ApplicableEntityTypes = slices.Clone(c.ApplicableEntityTypes)
	return &copied
}

// Package is an immutable, optionally discounted bundle of checks
type Package struct {
	ID                           types.PackageID    `json:"id"`
	Name                         string             `json:"name"`
	Description                  string             `json:"description"`
	ApplicableEntityTypes        []types.EntityType `json:"applicable_entity_types"`
	CheckIDs                     []types.CheckID    `json:"check_ids"`
	TotalEstimatedCost           float64            `json:"total_estimated_cost"`
	TotalEstimatedTurnaroundDays int                `json:"total_estimated_turnaround_days"`
	IsPopular                    bool               `json:"is_popular"`
	DiscountPercentage           float64            `json:"discount_percentage,omitempty"`
}

// AppliesTo reports whether the package is offered for the entity type
func (p *Package) AppliesTo(t types.EntityType) bool {
	return slices.Contains(p.ApplicableEntityTypes, t)
}

// Contains reports whether the package bundles the check
func (p *Package) Contains(id types.CheckID) bool {
	return slices.Contains(p.CheckIDs, id)
}

// Clone returns a deep copy of the package
func (p *Package) Clone() *Package {
	copied := *p
	copied.ApplicableEntityTypes = slices.Clone(p.ApplicableEntityTypes)
	copied.CheckIDs = slices.Clone(p.CheckIDs)
	return &copied
}
