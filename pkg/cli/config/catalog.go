package config

import (
	_ "embed"
	"math"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

//go:embed default_catalog.toml
var defaultCatalogTOML []byte

// CatalogConfig is the TOML representation of the check and package catalog
type CatalogConfig struct {
	Checks   []Check             `toml:"check"`
	Packages []Package           `toml:"package"`
	Trending map[string][]string `toml:"trending"`
}

// Check represents a check definition in the catalog file
type Check struct {
	ID              string   `toml:"id"`
	Name            string   `toml:"name"`
	Description     string   `toml:"description"`
	Category        string   `toml:"category"`
	EntityTypes     []string `toml:"entity_types"`
	Cost            float64  `toml:"cost"`
	TurnaroundDays  int      `toml:"turnaround_days"`
	ConsentRequired bool     `toml:"consent_required"`
	RiskLevel       string   `toml:"risk_level"`
	Provider        string   `toml:"provider"`
}

// Validate checks if the Check is valid
func (c *Check) Validate() error {
	id := types.CheckID(c.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCheck, "invalid check ID", goerr.V(CheckIDKey, c.ID))
	}
	if c.Name == "" {
		return goerr.Wrap(ErrMissingName, "check name is required", goerr.V(CheckIDKey, c.ID))
	}
	if _, err := types.ParseCategory(c.Category); err != nil {
		return goerr.Wrap(ErrInvalidCheck, "invalid category", goerr.V(CheckIDKey, c.ID), goerr.V("category", c.Category))
	}
	if _, err := types.ParseRiskLevel(c.RiskLevel); err != nil {
		return goerr.Wrap(ErrInvalidCheck, "invalid risk level", goerr.V(CheckIDKey, c.ID), goerr.V("risk_level", c.RiskLevel))
	}
	if err := validateEntityTypes(c.EntityTypes); err != nil {
		return goerr.Wrap(err, "invalid check", goerr.V(CheckIDKey, c.ID))
	}
	if c.Cost < 0 {
		return goerr.Wrap(ErrInvalidCheck, "cost must not be negative", goerr.V(CheckIDKey, c.ID), goerr.V("cost", c.Cost))
	}
	if c.TurnaroundDays < 1 {
		return goerr.Wrap(ErrInvalidCheck, "turnaround_days must be at least 1",
			goerr.V(CheckIDKey, c.ID), goerr.V("turnaround_days", c.TurnaroundDays))
	}
	return nil
}

// Package represents a package definition in the catalog file. Cost and
// TurnaroundDays may be omitted and are then derived from the checks.
type Package struct {
	ID                 string   `toml:"id"`
	Name               string   `toml:"name"`
	Description        string   `toml:"description"`
	EntityTypes        []string `toml:"entity_types"`
	Checks             []string `toml:"checks"`
	Cost               *float64 `toml:"cost"`
	TurnaroundDays     *int     `toml:"turnaround_days"`
	DiscountPercentage float64  `toml:"discount_percentage"`
	Popular            bool     `toml:"popular"`
}

// Validate checks if the Package is valid
func (p *Package) Validate() error {
	id := types.PackageID(p.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidPackage, "invalid package ID", goerr.V(PackageIDKey, p.ID))
	}
	if p.Name == "" {
		return goerr.Wrap(ErrMissingName, "package name is required", goerr.V(PackageIDKey, p.ID))
	}
	if err := validateEntityTypes(p.EntityTypes); err != nil {
		return goerr.Wrap(err, "invalid package", goerr.V(PackageIDKey, p.ID))
	}
	if len(p.Checks) == 0 {
		return goerr.Wrap(ErrInvalidPackage, "package requires at least one check", goerr.V(PackageIDKey, p.ID))
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		return goerr.Wrap(ErrInvalidPackage, "discount_percentage must be between 0 and 100",
			goerr.V(PackageIDKey, p.ID), goerr.V("discount_percentage", p.DiscountPercentage))
	}
	if p.Cost != nil && *p.Cost < 0 {
		return goerr.Wrap(ErrInvalidPackage, "cost must not be negative", goerr.V(PackageIDKey, p.ID))
	}
	if p.TurnaroundDays != nil && *p.TurnaroundDays < 1 {
		return goerr.Wrap(ErrInvalidPackage, "turnaround_days must be at least 1", goerr.V(PackageIDKey, p.ID))
	}
	return nil
}

func validateEntityTypes(entityTypes []string) error {
	if len(entityTypes) == 0 {
		return goerr.Wrap(ErrInvalidConfig, "entity_types must not be empty")
	}
	for _, t := range entityTypes {
		if _, err := types.ParseEntityType(t); err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid entity type", goerr.V(EntityTypeKey, t))
		}
	}
	return nil
}

// Validate checks if the CatalogConfig is valid
func (c *CatalogConfig) Validate() error {
	if len(c.Checks) == 0 {
		return goerr.Wrap(ErrInvalidConfig, "catalog requires at least one check")
	}

	checkIDs := make(map[string]bool, len(c.Checks))
	for i := range c.Checks {
		check := &c.Checks[i]
		if err := check.Validate(); err != nil {
			return goerr.Wrap(err, "invalid check", goerr.V(IndexKey, i))
		}
		if checkIDs[check.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate check ID", goerr.V(CheckIDKey, check.ID))
		}
		checkIDs[check.ID] = true
	}

	packageIDs := make(map[string]bool, len(c.Packages))
	for i := range c.Packages {
		pkg := &c.Packages[i]
		if err := pkg.Validate(); err != nil {
			return goerr.Wrap(err, "invalid package", goerr.V(IndexKey, i))
		}
		if packageIDs[pkg.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate package ID", goerr.V(PackageIDKey, pkg.ID))
		}
		packageIDs[pkg.ID] = true

		for _, id := range pkg.Checks {
			if !checkIDs[id] {
				return goerr.Wrap(ErrUnknownCheck, "unknown check in package",
					goerr.V(PackageIDKey, pkg.ID), goerr.V(CheckIDKey, id))
			}
		}
	}

	for entityType, ids := range c.Trending {
		if _, err := types.ParseEntityType(entityType); err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid entity type in trending", goerr.V(EntityTypeKey, entityType))
		}
		for _, id := range ids {
			if !checkIDs[id] {
				return goerr.Wrap(ErrUnknownCheck, "unknown check in trending",
					goerr.V(EntityTypeKey, entityType), goerr.V(CheckIDKey, id))
			}
		}
	}

	return nil
}

// ParseCatalogConfig decodes and validates catalog TOML
func ParseCatalogConfig(data []byte) (*CatalogConfig, error) {
	var cfg CatalogConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog TOML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed")
	}
	return &cfg, nil
}

// LoadCatalogConfig loads the catalog from a TOML file. An empty path selects
// the embedded default catalog.
func LoadCatalogConfig(path string) (*CatalogConfig, error) {
	if path == "" {
		return ParseCatalogConfig(defaultCatalogTOML)
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, path))
	}

	cfg, err := ParseCatalogConfig(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V(ConfigPathKey, path))
	}
	return cfg, nil
}

func toEntityTypes(ss []string) []types.EntityType {
	result := make([]types.EntityType, len(ss))
	for i, s := range ss {
		result[i] = types.EntityType(s)
	}
	return result
}

func toCheckIDs(ss []string) []types.CheckID {
	result := make([]types.CheckID, len(ss))
	for i, s := range ss {
		result[i] = types.CheckID(s)
	}
	return result
}

// ToDomainCatalog converts the configuration into a domain Catalog. Package cost
// defaults to the discounted sum of its checks and turnaround to the slowest check.
func (c *CatalogConfig) ToDomainCatalog() (*model.Catalog, error) {
	checks := make([]model.CheckDefinition, len(c.Checks))
	byID := make(map[string]*Check, len(c.Checks))
	for i := range c.Checks {
		check := &c.Checks[i]
		byID[check.ID] = check
		checks[i] = model.CheckDefinition{
			ID:                      types.CheckID(check.ID),
			Name:                    check.Name,
			Description:             check.Description,
			Category:                types.Category(check.Category),
			ApplicableEntityTypes:   toEntityTypes(check.EntityTypes),
			EstimatedCost:           check.Cost,
			EstimatedTurnaroundDays: check.TurnaroundDays,
			ConsentRequired:         check.ConsentRequired,
			RiskLevel:               types.RiskLevel(check.RiskLevel),
			Provider:                check.Provider,
		}
	}

	packages := make([]model.Package, len(c.Packages))
	for i, pkg := range c.Packages {
		var sum float64
		maxDays := 0
		for _, id := range pkg.Checks {
			if check, ok := byID[id]; ok {
				sum += check.Cost
				maxDays = max(maxDays, check.TurnaroundDays)
			}
		}

		cost := math.Round(sum*(100-pkg.DiscountPercentage)) / 100
		if pkg.Cost != nil {
			cost = *pkg.Cost
		}
		days := maxDays
		if pkg.TurnaroundDays != nil {
			days = *pkg.TurnaroundDays
		}

		packages[i] = model.Package{
			ID:                           types.PackageID(pkg.ID),
			Name:                         pkg.Name,
			Description:                  pkg.Description,
			ApplicableEntityTypes:        toEntityTypes(pkg.EntityTypes),
			CheckIDs:                     toCheckIDs(pkg.Checks),
			TotalEstimatedCost:           cost,
			TotalEstimatedTurnaroundDays: days,
			IsPopular:                    pkg.Popular,
			DiscountPercentage:           pkg.DiscountPercentage,
		}
	}

	trending := make(map[types.EntityType][]types.CheckID, len(c.Trending))
	for entityType, ids := range c.Trending {
		trending[types.EntityType(entityType)] = toCheckIDs(ids)
	}

	catalog, err := model.NewCatalog(checks, packages, trending)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build catalog")
	}
	return catalog, nil
}

// Catalog holds CLI flags for the catalog source
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Path to catalog TOML file (embedded South African catalog when empty)",
			Sources:     cli.EnvVars("VETPLAN_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured catalog path
func (c *Catalog) Path() string {
	return c.path
}

// Configure loads the catalog and builds the domain Catalog
func (c *Catalog) Configure() (*model.Catalog, error) {
	cfg, err := LoadCatalogConfig(c.path)
	if err != nil {
		return nil, err
	}
	catalog, err := cfg.ToDomainCatalog()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid catalog", goerr.V(ConfigPathKey, c.path))
	}

	source := c.path
	if source == "" {
		source = "embedded"
	}
	logging.Default().Info("Catalog loaded",
		"source", source,
		"checks", len(cfg.Checks),
		"packages", len(cfg.Packages),
	)
	return catalog, nil
}
