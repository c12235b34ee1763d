package main

import (
	"fmt"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxrules"
)

// Dumps every configured rule table, for checking against published rates.
func main() {
	rules := taxrules.NewProvider()
	for _, country := range domain.Countries {
		years, err := rules.TaxYears(country)
		if err != nil {
			panic(err)
		}
		for _, y := range years {
			cfg, err := rules.Config(country, y.Value)
			if err != nil {
				panic(err)
			}
			fmt.Printf("%s %s (%s to %s)\n", country, y.Label, y.StartDate.Format("2006-01-02"), y.EndDate.Format("2006-01-02"))
			fmt.Printf("  personal allowance: %s\n", cfg.PersonalAllowance.StringFixed(2))
			fmt.Printf("  %s: %s\n", country.TradingAllowanceLabel(), cfg.TradingAllowance.StringFixed(2))
			for _, b := range cfg.IncomeTaxBrackets {
				fmt.Printf("  income tax %-16s %s\n", b.Label(), b.Rate.String())
			}
			for _, rule := range cfg.SocialContributions {
				fmt.Printf("  %-10s %s\n", rule.Kind(), rule.RuleName())
				switch r := rule.(type) {
				case domain.FlatContribution:
					fmt.Printf("             threshold %s, flat %s\n", r.Threshold, r.FlatRate)
				case domain.PercentageContribution:
					fmt.Printf("             threshold %s, rate %s\n", r.Threshold, r.Rate)
				case domain.BracketContribution:
					for _, b := range r.Brackets {
						fmt.Printf("             %-16s %s\n", b.Label(), b.Rate.String())
					}
				}
			}
			fmt.Println()
		}
	}
}
