package types

import "github.com/m-mizutani/goerr/v2"

// SelectionMode tells whether a selection is driven by a package or by individual checks.
// The zero value means no choice has been made yet.
type SelectionMode string

const (
	SelectionModeNone       SelectionMode = ""
	SelectionModePackage    SelectionMode = "package"
	SelectionModeIndividual SelectionMode = "individual"
)

// IsValid checks if the selection mode is valid. SelectionModeNone is valid.
func (m SelectionMode) IsValid() bool {
	switch m {
	case SelectionModeNone,
		SelectionModePackage,
		SelectionModeIndividual:
		return true
	default:
		return false
	}
}

// String returns the string representation of the selection mode
func (m SelectionMode) String() string {
	return string(m)
}

// ParseSelectionMode parses a string into a SelectionMode
func ParseSelectionMode(s string) (SelectionMode, error) {
	m := SelectionMode(s)
	if !m.IsValid() {
		return "", goerr.New("invalid selection mode", goerr.V("mode", s))
	}
	return m, nil
}
