package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// ComparisonTable renders one column per tax year for the same inputs.
// All reports are expected to share a country.
func ComparisonTable(reports []domain.TaxReport) string {
	if len(reports) == 0 {
		return ""
	}
	country := reports[0].Country
	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("TAX YEAR COMPARISON: %s", country.Name())))

	fmt.Fprintf(&buf, "%-24s", "")
	for _, r := range reports {
		fmt.Fprintf(&buf, " %16s", r.TaxYear.Label)
	}
	fmt.Fprintln(&buf)

	row := func(label string, cell func(r domain.TaxReport) string) {
		fmt.Fprintf(&buf, "%-24s", label)
		for _, r := range reports {
			fmt.Fprintf(&buf, " %16s", cell(r))
		}
		fmt.Fprintln(&buf)
	}
	row("Taxable income", func(r domain.TaxReport) string { return FormatCurrency(r.Breakdown.TaxableIncome, country) })
	row("Income tax", func(r domain.TaxReport) string { return FormatCurrency(r.Breakdown.IncomeTax, country) })
	row(country.ContributionsTitle(), func(r domain.TaxReport) string {
		return FormatCurrency(r.Breakdown.TotalSocialContributions, country)
	})
	row("Total liability", func(r domain.TaxReport) string { return FormatCurrency(r.Breakdown.TotalTaxLiability, country) })
	row("Effective rate", func(r domain.TaxReport) string { return FormatPercentage(r.Breakdown.EffectiveRate) })
	row("Marginal rate", func(r domain.TaxReport) string { return FormatRate(r.MarginalRate) })
	return buf.String()
}
