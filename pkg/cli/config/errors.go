package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrInvalidCheck   = goerr.New("invalid check definition")
	ErrInvalidPackage = goerr.New("invalid package definition")
	ErrDuplicateID    = goerr.New("duplicate ID")
	ErrUnknownCheck   = goerr.New("package references unknown check")
	ErrMissingName    = goerr.New("name is required")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	CheckIDKey    = "check_id"
	PackageIDKey  = "package_id"
	EntityTypeKey = "entity_type"
	IndexKey      = "index"
	LogLevelKey   = "log_level"
	LogFormatKey  = "log_format"
	BackendKey    = "backend"
)
