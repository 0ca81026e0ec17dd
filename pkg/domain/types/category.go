package types

import "github.com/m-mizutani/goerr/v2"

// Category classifies a check by the kind of verification it performs
type Category string

const (
	CategoryIdentity         Category = "identity"
	CategoryFinancial        Category = "financial"
	CategoryCriminal         Category = "criminal"
	CategoryCompliance       Category = "compliance"
	CategoryOperational      Category = "operational"
	CategoryReputational     Category = "reputational"
	CategoryMedical          Category = "medical"
	CategoryBusinessSpecific Category = "business-specific"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryIdentity,
		CategoryFinancial,
		CategoryCriminal,
		CategoryCompliance,
		CategoryOperational,
		CategoryReputational,
		CategoryMedical,
		CategoryBusinessSpecific,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryIdentity,
		CategoryFinancial,
		CategoryCriminal,
		CategoryCompliance,
		CategoryOperational,
		CategoryReputational,
		CategoryMedical,
		CategoryBusinessSpecific:
		return true
	default:
		return false
	}
}

// Label returns the display name of the category
func (c Category) Label() string {
	switch c {
	case CategoryIdentity:
		return "Identity"
	case CategoryFinancial:
		return "Financial"
	case CategoryCriminal:
		return "Criminal"
	case CategoryCompliance:
		return "Compliance"
	case CategoryOperational:
		return "Operational"
	case CategoryReputational:
		return "Reputational"
	case CategoryMedical:
		return "Medical"
	case CategoryBusinessSpecific:
		return "Business Specific"
	default:
		return string(c)
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", goerr.New("invalid category", goerr.V("category", s))
	}
	return c, nil
}
