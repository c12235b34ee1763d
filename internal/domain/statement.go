package domain

import (
	money "github.com/rpgo/tax-estimator/pkg/decimal"
)

// IncomeItem is a single non-event income source.
type IncomeItem struct {
	Description string      `yaml:"description" json:"description"`
	Amount      money.Money `yaml:"amount" json:"amount"`
}

// ExpenseItem is a single expense; Deductible marks it as allowable against income.
type ExpenseItem struct {
	Description string      `yaml:"description" json:"description"`
	Amount      money.Money `yaml:"amount" json:"amount"`
	Deductible  bool        `yaml:"deductible" json:"deductible"`
}

// Statement is the on-disk description of one person's year: where they are
// taxed, which tax year, and the raw income and expense items.
type Statement struct {
	Country     string        `yaml:"country" json:"country"`
	TaxYear     string        `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
	EventIncome money.Money   `yaml:"event_income" json:"event_income"`
	OtherIncome []IncomeItem  `yaml:"other_income,omitempty" json:"other_income,omitempty"`
	Expenses    []ExpenseItem `yaml:"expenses,omitempty" json:"expenses,omitempty"`
}

// Inputs aggregates the statement's items into calculator inputs.
func (s Statement) Inputs() TaxInputs {
	other := make([]money.Money, 0, len(s.OtherIncome))
	for _, item := range s.OtherIncome {
		other = append(other, item.Amount)
	}
	var all, deductible []money.Money
	for _, e := range s.Expenses {
		all = append(all, e.Amount)
		if e.Deductible {
			deductible = append(deductible, e.Amount)
		}
	}
	return TaxInputs{
		EventIncome:        s.EventIncome.Decimal,
		OtherIncomeTotal:   money.Sum(other...).Decimal,
		TotalExpenses:      money.Sum(all...).Decimal,
		DeductibleExpenses: money.Sum(deductible...).Decimal,
	}
}
