package output

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#626262")
	colorWarn    = lipgloss.Color("#FFA500")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
)

const labelWidth = 34

// ConsoleFormatter renders a human-readable breakdown for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	if report == nil || report.Breakdown == nil {
		return nil, errors.New("console: report has no breakdown")
	}
	b := report.Breakdown
	country := report.Country
	money := func(d decimal.Decimal) string { return FormatCurrency(d, country) }

	var buf bytes.Buffer
	line := func(label, value string) { fmt.Fprintf(&buf, "  %-*s %s\n", labelWidth, label, value) }
	section := func(title string) { fmt.Fprintf(&buf, "\n%s\n", sectionStyle.Render(title)) }

	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("TAX ESTIMATE: %s %s", strings.ToUpper(country.Name()), report.TaxYear.Label)))
	fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf("%s to %s, amounts in %s",
		report.TaxYear.StartDate.Format("2 Jan 2006"), report.TaxYear.EndDate.Format("2 Jan 2006"), country.Currency())))

	section("Income")
	line("Event income", money(b.EventIncome))
	line("Other income", money(b.OtherIncomeTotal))
	line("Gross income", money(b.GrossIncome))

	section("Expenses")
	line("Total expenses", money(b.TotalExpenses))
	line("Deductible expenses", money(b.DeductibleExpenses))
	line("Net income", money(b.NetIncome))

	section("Allowances & Deductions")
	if b.PersonalAllowance.IsPositive() {
		line("Personal allowance", money(b.PersonalAllowance))
	}
	if b.TradingAllowance.IsPositive() {
		line(country.TradingAllowanceLabel(), money(b.TradingAllowance))
	}
	line("Taxable income", money(b.TaxableIncome))

	section("Income Tax")
	if len(b.IncomeTaxBreakdown) == 0 {
		line("No income tax due", money(decimal.Zero))
	}
	for _, l := range b.IncomeTaxBreakdown {
		line(fmt.Sprintf("%s @ %s", l.Bracket, FormatRate(l.Rate)), money(l.Amount))
	}

	section(country.ContributionsTitle())
	if len(b.SocialContributions) == 0 {
		line("No contributions due", money(decimal.Zero))
	}
	for _, c := range b.SocialContributions {
		line(c.Name, money(c.Amount))
		if c.Info != "" {
			fmt.Fprintf(&buf, "    %s\n", mutedStyle.Render(c.Info))
		}
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "%-*s %s\n", labelWidth-2, "Income tax", money(b.IncomeTax))
	fmt.Fprintf(&summary, "%-*s %s\n", labelWidth-2, "Social contributions", money(b.TotalSocialContributions))
	fmt.Fprintf(&summary, "%-*s %s\n", labelWidth-2, "Total tax liability", money(b.TotalTaxLiability))
	fmt.Fprintf(&summary, "%-*s %s\n", labelWidth-2, "Effective rate", FormatPercentage(b.EffectiveRate))
	fmt.Fprintf(&summary, "%-*s %s", labelWidth-2, "Marginal rate", FormatRate(report.MarginalRate))
	fmt.Fprintf(&buf, "\n%s\n", summaryStyle.Render(summary.String()))

	for _, note := range b.Adjustments {
		fmt.Fprintln(&buf, warnStyle.Render("Note: "+note))
	}
	fmt.Fprintln(&buf)
	for _, d := range Disclaimer {
		fmt.Fprintln(&buf, mutedStyle.Render(d))
	}
	return buf.Bytes(), nil
}
