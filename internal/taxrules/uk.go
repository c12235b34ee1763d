package taxrules

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/pkg/dateutil"
)

type ukRuleSet int

const (
	ukRules2023To24 ukRuleSet = iota + 1
	ukRules2024To25
)

var ukYears = []yearEntry[ukRuleSet]{
	{year: ukTaxYear(2024), rules: ukRules2024To25},
	{year: ukTaxYear(2023), rules: ukRules2023To24},
}

func ukTaxYear(startYear int) domain.TaxYear {
	w := dateutil.UKTaxYear(startYear)
	label := dateutil.FiscalLabel(startYear)
	return domain.TaxYear{Label: label, Value: label, StartDate: w.Start, EndDate: w.End}
}

type unitedKingdom struct{}

func (unitedKingdom) years() []domain.TaxYear { return yearsOf(ukYears) }

func (unitedKingdom) config(taxYear string, _ options) (domain.CountryTaxConfig, error) {
	rules, err := resolve(ukYears, domain.CountryUK, taxYear)
	if err != nil {
		return domain.CountryTaxConfig{}, err
	}

	var class4Main float64
	switch rules {
	case ukRules2024To25:
		class4Main = 0.06
	case ukRules2023To24:
		class4Main = 0.09
	default:
		return domain.CountryTaxConfig{}, unknownRuleSet(domain.CountryUK, rules)
	}

	return domain.CountryTaxConfig{
		PersonalAllowance: decimal.NewFromInt(12570),
		TradingAllowance:  decimal.NewFromInt(1000),
		IncomeTaxBrackets: []domain.TaxBracket{
			domain.Bracket(0, 37700, 0.20),
			domain.Bracket(37700, 125140, 0.40),
			domain.TopBracket(125140, 0.45),
		},
		SocialContributions: []domain.SocialContributionRule{
			domain.FlatContribution{
				Name:           "Class 2 National Insurance",
				Threshold:      decimal.NewFromInt(12570),
				FlatRate:       decimal.NewFromFloat(3.45).Mul(decimal.NewFromInt(52)),
				AdditionalInfo: "£3.45 per week, payable when profits exceed £12,570",
			},
			domain.BracketContribution{
				Name: "Class 4 National Insurance",
				Brackets: []domain.TaxBracket{
					domain.Bracket(12570, 50270, class4Main),
					domain.TopBracket(50270, 0.02),
				},
				AdditionalInfo: "Main rate on profits between £12,570 and £50,270, 2% above",
			},
		},
	}, nil
}
