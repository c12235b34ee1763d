package taxrules

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/pkg/dateutil"
)

type ieRuleSet int

const (
	ieRules2023 ieRuleSet = iota + 1
	ieRules2024
)

var ieYears = []yearEntry[ieRuleSet]{
	{year: calendarTaxYear(2024), rules: ieRules2024},
	{year: calendarTaxYear(2023), rules: ieRules2023},
}

func calendarTaxYear(year int) domain.TaxYear {
	w := dateutil.CalendarYear(year)
	v := strconv.Itoa(year)
	return domain.TaxYear{Label: v, Value: v, StartDate: w.Start, EndDate: w.End}
}

type ireland struct{}

func (ireland) years() []domain.TaxYear { return yearsOf(ieYears) }

func (ireland) config(taxYear string, _ options) (domain.CountryTaxConfig, error) {
	rules, err := resolve(ieYears, domain.CountryIE, taxYear)
	if err != nil {
		return domain.CountryTaxConfig{}, err
	}

	// standard rate cut-off, single person
	var cutOff int64
	switch rules {
	case ieRules2024:
		cutOff = 42000
	case ieRules2023:
		cutOff = 40000
	default:
		return domain.CountryTaxConfig{}, unknownRuleSet(domain.CountryIE, rules)
	}

	return domain.CountryTaxConfig{
		PersonalAllowance: decimal.Zero,
		TradingAllowance:  decimal.Zero,
		IncomeTaxBrackets: []domain.TaxBracket{
			domain.Bracket(0, cutOff, 0.20),
			domain.TopBracket(cutOff, 0.40),
		},
		SocialContributions: []domain.SocialContributionRule{
			domain.BracketContribution{
				Name: "Universal Social Charge (USC)",
				Brackets: []domain.TaxBracket{
					domain.Bracket(0, 12012, 0.005),
					domain.Bracket(12012, 25760, 0.02),
					domain.Bracket(25760, 70044, 0.04),
					domain.TopBracket(70044, 0.08),
				},
				AdditionalInfo: "0.5%, 2%, 4% and 8% bands",
			},
			domain.PercentageContribution{
				Name:           "PRSI (Class S)",
				Threshold:      decimal.NewFromInt(5000),
				Rate:           decimal.NewFromFloat(0.04),
				AdditionalInfo: "4% for self-employed income over €5,000",
			},
		},
	}, nil
}
