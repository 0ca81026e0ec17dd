package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	amountColor  = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

func riskColor(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelHigh:
		return color.New(color.FgRed)
	case types.RiskLevelMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func zar(v float64) string {
	return fmt.Sprintf("R%.2f", v)
}

// textWriter keeps the first write error so renderers can print unconditionally
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(c *color.Color, format string, args ...any) {
	if t.err != nil {
		return
	}
	if c == nil {
		_, t.err = fmt.Fprintf(t.w, format, args...)
		return
	}
	_, t.err = c.Fprintf(t.w, format, args...)
}

func (t *textWriter) heading(title string) {
	t.printf(headingColor, "\n%s\n", title)
}

func renderCalculation(w io.Writer, calc *model.Calculation) error {
	tw := &textWriter{w: w}

	tw.heading("Selection")
	tw.printf(nil, "  Entity type: %s\n", calc.Selection.EntityType.Label())
	switch calc.Selection.Mode {
	case types.SelectionModePackage:
		tw.printf(nil, "  Package:     %s\n", calc.Selection.PackageID)
	case types.SelectionModeIndividual:
		tw.printf(nil, "  Mode:        individual checks\n")
	default:
		tw.printf(dimColor, "  Nothing selected yet\n")
	}

	if len(calc.Checks) > 0 {
		tw.heading("Checks")
		for _, check := range calc.Checks {
			tw.printf(nil, "  %-32s %10s  %d day(s)  ", check.Name, zar(check.EstimatedCost), check.EstimatedTurnaroundDays)
			tw.printf(riskColor(check.RiskLevel), "%-6s", check.RiskLevel)
			if check.ConsentRequired {
				tw.printf(warnColor, "  consent")
			}
			tw.printf(nil, "\n")
		}
	}

	tw.heading("Summary")
	tw.printf(nil, "  Total cost:  ")
	tw.printf(amountColor, "%s\n", zar(calc.TotalCost))
	tw.printf(nil, "  Turnaround:  %d day(s)\n", calc.TotalTurnaroundDays)
	tw.printf(nil, "  Risk:        %d high, %d medium, %d low\n",
		calc.RiskCoverage.High, calc.RiskCoverage.Medium, calc.RiskCoverage.Low)
	tw.printf(nil, "  Efficiency:  %d/100\n", calc.EfficiencyScore)
	if len(calc.ConsentRequired) > 0 {
		ids := make([]string, len(calc.ConsentRequired))
		for i, id := range calc.ConsentRequired {
			ids[i] = id.String()
		}
		tw.printf(warnColor, "  Consent required: %s\n", strings.Join(ids, ", "))
	}

	if len(calc.CostBreakdown) > 0 {
		tw.heading("Cost by category")
		for _, entry := range calc.CostBreakdown {
			tw.printf(nil, "  %-20s %10s  %5.1f%%  (%d)\n", entry.Label, zar(entry.Cost), entry.PercentageOfTotal, entry.Count)
		}
	}

	if len(calc.ProviderBreakdown) > 0 {
		tw.heading("Providers")
		for _, entry := range calc.ProviderBreakdown {
			tw.printf(nil, "  %-28s %10s  %d check(s)  avg %.1f day(s)\n",
				entry.Provider, zar(entry.TotalCost), entry.CheckCount, entry.AverageTurnaroundDays)
		}
	}

	if len(calc.OptimizationSuggestions) > 0 {
		tw.heading("Savings")
		for _, opt := range calc.OptimizationSuggestions {
			tw.printf(amountColor, "  Switch to %s (%s) to save about %s on %d checks\n",
				opt.Name, opt.PackageID, zar(opt.PotentialSavings), opt.OverlapCount)
		}
	}

	if len(calc.PackageSuggestions) > 0 {
		tw.heading("Packages")
		for _, s := range calc.PackageSuggestions {
			marker := " "
			if s.Current {
				marker = "*"
			}
			tw.printf(nil, "  %s %-34s %10s  relevance %.2f", marker, s.Name, zar(s.Cost), s.RelevanceScore)
			if len(s.Reasons) > 0 {
				tw.printf(dimColor, "  %s", strings.Join(s.Reasons, ", "))
			}
			tw.printf(nil, "\n")
		}
	}

	if len(calc.CheckSuggestions) > 0 {
		tw.heading("Suggested checks")
		for _, s := range calc.CheckSuggestions {
			tw.printf(riskColor(s.RiskLevel), "  [%-6s]", s.Priority)
			tw.printf(nil, " %-32s %10s  %d%%", s.Name, zar(s.Cost), s.Confidence)
			tw.printf(dimColor, "  %s\n", s.Reason)
		}
	}

	if tw.err != nil {
		return goerr.Wrap(tw.err, "failed to write quote")
	}
	return nil
}

func renderCatalog(w io.Writer, checks []*model.CheckDefinition, packages []*model.Package) error {
	tw := &textWriter{w: w}

	tw.heading(fmt.Sprintf("Checks (%d)", len(checks)))
	for _, check := range checks {
		tw.printf(nil, "  %-28s %-32s %10s  %d day(s)  ", check.ID, check.Name, zar(check.EstimatedCost), check.EstimatedTurnaroundDays)
		tw.printf(riskColor(check.RiskLevel), "%s", check.RiskLevel)
		tw.printf(dimColor, "  %s\n", check.Provider)
	}

	tw.heading(fmt.Sprintf("Packages (%d)", len(packages)))
	for _, pkg := range packages {
		tw.printf(nil, "  %-28s %-34s %10s  %d check(s)", pkg.ID, pkg.Name, zar(pkg.TotalEstimatedCost), len(pkg.CheckIDs))
		if pkg.IsPopular {
			tw.printf(warnColor, "  popular")
		}
		tw.printf(nil, "\n")
	}

	if tw.err != nil {
		return goerr.Wrap(tw.err, "failed to write catalog")
	}
	return nil
}
