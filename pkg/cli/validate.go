package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/cli/config"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a catalog file",
		Flags:   catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			for _, et := range types.AllEntityTypes() {
				checks := catalog.ChecksFor(et)
				packages := catalog.PackagesFor(et)
				logger.Info("Entity type validated",
					"entity_type", et,
					"check_count", len(checks),
					"package_count", len(packages),
				)
				if len(checks) == 0 {
					logger.Warn("No checks available for entity type", "entity_type", et)
				}
			}

			source := catalogCfg.Path()
			if source == "" {
				source = "embedded catalog"
			}
			if _, err := fmt.Fprintf(c.Root().Writer, "%s is valid: %d checks, %d packages\n",
				source, len(catalog.Checks()), len(catalog.Packages())); err != nil {
				return goerr.Wrap(err, "failed to write result")
			}
			return nil
		},
	}
}
