package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/cli/config"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdCatalog() *cli.Command {
	var entityType string
	var format string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "entity-type",
			Aliases:     []string{"e"},
			Usage:       "Only show checks and packages for this entity type",
			Destination: &entityType,
		},
		formatFlag(&format),
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "catalog",
		Usage: "List available checks and packages",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			checks := catalog.Checks()
			packages := catalog.Packages()
			if entityType != "" {
				et, err := types.ParseEntityType(entityType)
				if err != nil {
					return goerr.Wrap(err, "invalid --entity-type")
				}
				checks = catalog.ChecksFor(et)
				packages = catalog.PackagesFor(et)
			}

			w := c.Root().Writer
			if format == formatJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				out := struct {
					Checks   []*model.CheckDefinition `json:"checks"`
					Packages []*model.Package         `json:"packages"`
				}{Checks: checks, Packages: packages}
				if err := enc.Encode(out); err != nil {
					return goerr.Wrap(err, "failed to write catalog")
				}
				return nil
			}
			return renderCatalog(w, checks, packages)
		},
	}
}
