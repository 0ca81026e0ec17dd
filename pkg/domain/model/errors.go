package model

import "github.com/m-mizutani/goerr/v2"

// Catalog and selection errors
var (
	ErrNotFound               = goerr.New("not found in catalog")
	ErrInapplicableEntityType = goerr.New("not applicable to entity type")
	ErrInvalidCatalog         = goerr.New("invalid catalog")

	ErrRequestNotFound = goerr.New("vetting request not found")
)

// Context keys for error values
const (
	CheckIDKey    = "check_id"
	PackageIDKey  = "package_id"
	EntityTypeKey = "entity_type"
	RequestIDKey  = "request_id"
)
