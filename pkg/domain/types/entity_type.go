package types

import "github.com/m-mizutani/goerr/v2"

// EntityType represents the kind of subject being vetted
type EntityType string

const (
	EntityTypeIndividual   EntityType = "individual"
	EntityTypeCompany      EntityType = "company"
	EntityTypeStaffMedical EntityType = "staff-medical"
)

// AllEntityTypes returns all valid entity types
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeIndividual,
		EntityTypeCompany,
		EntityTypeStaffMedical,
	}
}

// IsValid checks if the entity type is valid
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeIndividual,
		EntityTypeCompany,
		EntityTypeStaffMedical:
		return true
	default:
		return false
	}
}

// Label returns the display label of the entity type
func (t EntityType) Label() string {
	switch t {
	case EntityTypeIndividual:
		return "Individual"
	case EntityTypeCompany:
		return "Company"
	case EntityTypeStaffMedical:
		return "Staff Medical"
	default:
		return string(t)
	}
}

// String returns the string representation of the entity type
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType parses a string into an EntityType
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsValid() {
		return "", goerr.New("invalid entity type", goerr.V("entity_type", s))
	}
	return t, nil
}
