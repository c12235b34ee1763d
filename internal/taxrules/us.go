package taxrules

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/domain"
)

type usRuleSet int

const (
	usRules2023 usRuleSet = iota + 1
	usRules2024
)

var usYears = []yearEntry[usRuleSet]{
	{year: calendarTaxYear(2024), rules: usRules2024},
	{year: calendarTaxYear(2023), rules: usRules2023},
}

// SelfEmploymentEarningsFactor is the share of net profit treated as net
// earnings from self-employment.
var SelfEmploymentEarningsFactor = decimal.NewFromFloat(0.9235)

// SelfEmploymentAdjustmentNote is recorded on configs built with the factor applied.
const SelfEmploymentAdjustmentNote = "Self-employment tax computed on 92.35% of taxable income"

type unitedStates struct{}

func (unitedStates) years() []domain.TaxYear { return yearsOf(usYears) }

func (unitedStates) config(taxYear string, opts options) (domain.CountryTaxConfig, error) {
	rules, err := resolve(usYears, domain.CountryUS, taxYear)
	if err != nil {
		return domain.CountryTaxConfig{}, err
	}

	// single filer
	var standardDeduction int64
	var brackets []domain.TaxBracket
	switch rules {
	case usRules2024:
		standardDeduction = 14600
		brackets = []domain.TaxBracket{
			domain.Bracket(0, 11600, 0.10),
			domain.Bracket(11600, 47150, 0.12),
			domain.Bracket(47150, 100525, 0.22),
			domain.Bracket(100525, 191950, 0.24),
			domain.Bracket(191950, 243725, 0.32),
			domain.Bracket(243725, 609350, 0.35),
			domain.TopBracket(609350, 0.37),
		}
	case usRules2023:
		standardDeduction = 13850
		brackets = []domain.TaxBracket{
			domain.Bracket(0, 11000, 0.10),
			domain.Bracket(11000, 44725, 0.12),
			domain.Bracket(44725, 95375, 0.22),
			domain.Bracket(95375, 182100, 0.24),
			domain.Bracket(182100, 231250, 0.32),
			domain.Bracket(231250, 578125, 0.35),
			domain.TopBracket(578125, 0.37),
		}
	default:
		return domain.CountryTaxConfig{}, unknownRuleSet(domain.CountryUS, rules)
	}

	seTax := domain.PercentageContribution{
		Name:           "Self-Employment Tax",
		Threshold:      decimal.NewFromInt(400),
		Rate:           decimal.NewFromFloat(0.153),
		AdditionalInfo: "15.3% (12.4% Social Security + 2.9% Medicare) on 92.35% of net earnings",
	}
	var adjustments []string
	if opts.selfEmploymentAdjustment {
		seTax.EarningsFactor = SelfEmploymentEarningsFactor
		adjustments = append(adjustments, SelfEmploymentAdjustmentNote)
	}

	return domain.CountryTaxConfig{
		PersonalAllowance:   decimal.Zero,
		TradingAllowance:    decimal.NewFromInt(standardDeduction),
		IncomeTaxBrackets:   brackets,
		SocialContributions: []domain.SocialContributionRule{seTax},
		Adjustments:         adjustments,
	}, nil
}
