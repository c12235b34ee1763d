package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// Row is one line of the tabular export: a section title, a label/value pair,
// a free-text line, or empty as a separator.
type Row []string

// Disclaimer closes every exported report.
var Disclaimer = []string{
	"This is an estimate only and does not constitute tax advice.",
	"Figures use the published rates for the selected tax year and assume all income is self-employed.",
	"Consult a qualified tax professional or the relevant tax authority before filing.",
}

// FileName is the export name for a report, e.g. tax-breakdown-uk-2024-25.csv.
func FileName(country domain.Country, taxYear, ext string) string {
	return fmt.Sprintf("tax-breakdown-%s-%s.%s", strings.ToLower(string(country)), taxYear, ext)
}

// Rows flattens a breakdown into the export layout: header, income, expenses,
// allowances, income tax, contributions, summary, disclaimer.
func Rows(b *domain.TaxBreakdown, country domain.Country, taxYear string, generatedAt time.Time) []Row {
	amount := func(label string, v decimal.Decimal) Row { return Row{label, FormatAmount(v)} }

	rows := []Row{
		{"Tax Breakdown Report"},
		{"Country", country.Name()},
		{"Tax Year", taxYear},
		{"Currency", country.Currency()},
		{"Generated", generatedAt.Format(time.RFC3339)},
		{},
		{"Income Summary"},
		amount("Event Income", b.EventIncome),
		amount("Other Income", b.OtherIncomeTotal),
		amount("Gross Income", b.GrossIncome),
		{},
		{"Expenses"},
		amount("Total Expenses", b.TotalExpenses),
		amount("Deductible Expenses", b.DeductibleExpenses),
		amount("Net Income", b.NetIncome),
		{},
		{"Allowances & Deductions"},
	}
	if b.PersonalAllowance.IsPositive() {
		rows = append(rows, amount("Personal Allowance", b.PersonalAllowance))
	}
	if b.TradingAllowance.IsPositive() {
		rows = append(rows, amount(country.TradingAllowanceLabel(), b.TradingAllowance))
	}
	rows = append(rows, amount("Taxable Income", b.TaxableIncome), Row{})

	rows = append(rows, Row{"Income Tax Breakdown"})
	if len(b.IncomeTaxBreakdown) == 0 {
		rows = append(rows, Row{"No income tax due", FormatAmount(decimal.Zero)})
	}
	for _, l := range b.IncomeTaxBreakdown {
		rows = append(rows, amount(fmt.Sprintf("%s @ %s", l.Bracket, FormatRate(l.Rate)), l.Amount))
	}
	rows = append(rows, Row{})

	rows = append(rows, Row{country.ContributionsTitle()})
	if len(b.SocialContributions) == 0 {
		rows = append(rows, Row{"No contributions due", FormatAmount(decimal.Zero)})
	}
	for _, c := range b.SocialContributions {
		rows = append(rows, amount(c.Name, c.Amount))
	}
	rows = append(rows, Row{})

	rows = append(rows,
		Row{"Summary"},
		amount("Income Tax", b.IncomeTax),
		amount("Social Contributions", b.TotalSocialContributions),
		amount("Total Tax Liability", b.TotalTaxLiability),
		Row{"Effective Tax Rate", FormatPercentage(b.EffectiveRate)},
	)
	for _, note := range b.Adjustments {
		rows = append(rows, Row{"Adjustment", note})
	}
	rows = append(rows, Row{}, Row{"Disclaimer"})
	for _, line := range Disclaimer {
		rows = append(rows, Row{line})
	}
	return rows
}

// WriteCSV encodes rows with standard CSV quoting: cells holding a comma,
// quote or newline are wrapped in quotes and inner quotes are doubled.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
