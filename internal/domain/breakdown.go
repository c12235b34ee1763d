package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxInputs are the caller's aggregated figures in the country's currency.
// DeductibleExpenses is the already-classified deductible part of TotalExpenses.
type TaxInputs struct {
	EventIncome        decimal.Decimal `json:"event_income"`
	OtherIncomeTotal   decimal.Decimal `json:"other_income_total"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	DeductibleExpenses decimal.Decimal `json:"deductible_expenses"`
}

// BracketAmount is the tax owed within one income-tax bracket.
type BracketAmount struct {
	Bracket string          `json:"bracket"`
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
}

// ContributionAmount is the amount owed under one social-contribution rule.
type ContributionAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	// Info is the rule's display note, e.g. its bands or threshold.
	Info string `json:"info,omitempty"`
}

// TaxBreakdown is the full result of one calculation. Amounts are unrounded.
type TaxBreakdown struct {
	EventIncome              decimal.Decimal      `json:"event_income"`
	OtherIncomeTotal         decimal.Decimal      `json:"other_income_total"`
	GrossIncome              decimal.Decimal      `json:"gross_income"`
	TotalExpenses            decimal.Decimal      `json:"total_expenses"`
	DeductibleExpenses       decimal.Decimal      `json:"deductible_expenses"`
	NetIncome                decimal.Decimal      `json:"net_income"`
	PersonalAllowance        decimal.Decimal      `json:"personal_allowance"`
	TradingAllowance         decimal.Decimal      `json:"trading_allowance"`
	TaxableIncome            decimal.Decimal      `json:"taxable_income"`
	IncomeTaxBreakdown       []BracketAmount      `json:"income_tax_breakdown"`
	IncomeTax                decimal.Decimal      `json:"income_tax"`
	SocialContributions      []ContributionAmount `json:"social_contributions"`
	TotalSocialContributions decimal.Decimal      `json:"total_social_contributions"`
	TotalTaxLiability        decimal.Decimal      `json:"total_tax_liability"`
	// EffectiveRate is a percentage (25.5 means 25.5%), not a fraction.
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Adjustments   []string        `json:"adjustments,omitempty"`
}

// TaxReport ties a breakdown to the jurisdiction and period it was computed for.
type TaxReport struct {
	Country     Country       `json:"country"`
	TaxYear     TaxYear       `json:"tax_year"`
	GeneratedAt time.Time     `json:"generated_at"`
	Breakdown   *TaxBreakdown `json:"breakdown"`
	// MarginalRate is the combined rate, as a fraction, on the next unit of taxable income.
	MarginalRate decimal.Decimal `json:"marginal_rate"`
}
