package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/domain"
)

// Sweeps event income for a statement in fixed steps and prints each point
// where the marginal rate changes.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_breakpoints <statement-file> [step]")
		return
	}
	statement, err := config.NewInputParser(nil).LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	step := decimal.NewFromInt(500)
	if len(os.Args) > 2 {
		step = decimal.RequireFromString(os.Args[2])
	}

	engine := calculation.NewEngine(nil)
	country := domain.Country(statement.Country)
	in := statement.Inputs()
	limit := decimal.NewFromInt(300000)

	var last decimal.Decimal
	for income := decimal.Zero; income.LessThanOrEqual(limit); income = income.Add(step) {
		in.EventIncome = income
		r, err := engine.Estimate(context.Background(), country, statement.TaxYear, in)
		if err != nil {
			panic(err)
		}
		if income.IsZero() || !r.MarginalRate.Equal(last) {
			fmt.Printf("event income %12s  taxable %12s  marginal %6s  liability %12s\n",
				income.StringFixed(2), r.Breakdown.TaxableIncome.StringFixed(2),
				r.MarginalRate.String(), r.Breakdown.TotalTaxLiability.StringFixed(2))
			last = r.MarginalRate
		}
	}
}
