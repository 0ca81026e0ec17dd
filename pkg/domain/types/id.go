package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CheckID represents a unique identifier for a check definition
type CheckID string

// Validate checks if the CheckID is valid
func (c CheckID) Validate() error {
	if c == "" {
		return goerr.New("check ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("check ID must be lowercase alphanumeric with hyphens", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of CheckID
func (c CheckID) String() string {
	return string(c)
}

// PackageID represents a unique identifier for a check package
type PackageID string

// Validate checks if the PackageID is valid
func (p PackageID) Validate() error {
	if p == "" {
		return goerr.New("package ID cannot be empty")
	}
	if !idPattern.MatchString(string(p)) {
		return goerr.New("package ID must be lowercase alphanumeric with hyphens", goerr.V("id", p))
	}
	return nil
}

// String returns the string representation of PackageID
func (p PackageID) String() string {
	return string(p)
}
