package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/cli/config"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/repository/memory"
	"github.com/secmon-lab/vetplan/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
)

var errInvalidFormat = goerr.New("invalid output format")

func formatFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "format",
		Aliases:     []string{"f"},
		Usage:       "Output format (text, json)",
		Value:       formatText,
		Destination: dst,
	}
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return goerr.Wrap(errInvalidFormat, "unsupported format", goerr.V("format", format))
	}
}

func cmdQuote() *cli.Command {
	var entityType string
	var packageID string
	var checkIDs []string
	var budget float64
	var format string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "entity-type",
			Aliases:     []string{"e"},
			Usage:       "Entity type being vetted (individual, company, staff-medical)",
			Required:    true,
			Destination: &entityType,
		},
		&cli.StringFlag{
			Name:        "package",
			Aliases:     []string{"p"},
			Usage:       "Package ID to quote (mutually exclusive with --check)",
			Destination: &packageID,
		},
		&cli.StringSliceFlag{
			Name:        "check",
			Usage:       "Check ID to include (can be specified multiple times)",
			Destination: &checkIDs,
		},
		&cli.FloatFlag{
			Name:        "budget",
			Aliases:     []string{"b"},
			Usage:       "Budget in ZAR used for suggestions (0 for none)",
			Destination: &budget,
		},
		formatFlag(&format),
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "quote",
		Aliases: []string{"q"},
		Usage:   "Calculate cost, turnaround and suggestions for a selection",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if packageID != "" && len(checkIDs) > 0 {
				return goerr.New("--package and --check cannot be combined")
			}

			et, err := types.ParseEntityType(entityType)
			if err != nil {
				return goerr.Wrap(err, "invalid --entity-type")
			}

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}
			uc := usecase.New(memory.New(), catalog)

			in := usecase.QuoteInput{
				EntityType: et,
				Budget:     budget,
			}
			switch {
			case packageID != "":
				if _, err := catalog.Package(types.PackageID(packageID)); err != nil {
					return goerr.Wrap(err, "unknown --package")
				}
				in.Mode = types.SelectionModePackage
				in.PackageID = types.PackageID(packageID)
			case len(checkIDs) > 0:
				in.Mode = types.SelectionModeIndividual
				for _, id := range checkIDs {
					in.CheckIDs = append(in.CheckIDs, types.CheckID(id))
				}
			}

			calc, err := uc.Quote(ctx, in)
			if err != nil {
				return goerr.Wrap(err, "failed to calculate quote")
			}

			w := c.Root().Writer
			if format == formatJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(calc); err != nil {
					return goerr.Wrap(err, "failed to write quote")
				}
				return nil
			}
			return renderCalculation(w, calc)
		},
	}
}
