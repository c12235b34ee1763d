package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculator turns aggregated income and expenses into a TaxBreakdown for a
// single rule set. It holds no state between calls.
type Calculator struct {
	Logger Logger
}

// NewCalculator creates a calculator with a no-op logger.
func NewCalculator() *Calculator {
	return &Calculator{Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (c *Calculator) SetLogger(l Logger) {
	c.Logger = orNop(l)
}

// ValidateInputs rejects negative aggregates instead of clamping them, and
// deductible expenses larger than the total they are drawn from.
func ValidateInputs(in domain.TaxInputs) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"event income", in.EventIncome},
		{"other income", in.OtherIncomeTotal},
		{"total expenses", in.TotalExpenses},
		{"deductible expenses", in.DeductibleExpenses},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s is %s", domain.ErrNegativeInput, f.name, f.value)
		}
	}
	// deductible expenses are a subset of total expenses
	if in.DeductibleExpenses.GreaterThan(in.TotalExpenses) {
		return fmt.Errorf("%w: deductible expenses %s exceed total expenses %s",
			domain.ErrNegativeInput, in.DeductibleExpenses, in.TotalExpenses)
	}
	return nil
}

// Calculate applies allowances, then the progressive income-tax schedule, then
// every social-contribution rule, all against the same taxable income.
func (c *Calculator) Calculate(in domain.TaxInputs, cfg domain.CountryTaxConfig) (*domain.TaxBreakdown, error) {
	if err := ValidateInputs(in); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := orNop(c.Logger)

	gross := in.EventIncome.Add(in.OtherIncomeTotal)
	net := gross.Sub(in.DeductibleExpenses)
	taxable := decimal.Max(decimal.Zero, net.Sub(cfg.PersonalAllowance).Sub(cfg.TradingAllowance))
	log.Debugf("gross=%s net=%s taxable=%s", gross, net, taxable)

	incomeTax, lines := walkBrackets(taxable, cfg.IncomeTaxBrackets)
	for _, l := range lines {
		log.Debugf("income tax %s @ %s = %s", l.Bracket, l.Rate, l.Amount)
	}

	contributions := make([]domain.ContributionAmount, 0, len(cfg.SocialContributions))
	totalContributions := decimal.Zero
	for _, rule := range cfg.SocialContributions {
		amount, err := contribution(rule, taxable)
		if err != nil {
			return nil, err
		}
		log.Debugf("%s (%s) = %s", rule.RuleName(), rule.Kind(), amount)
		contributions = append(contributions, domain.ContributionAmount{Name: rule.RuleName(), Amount: amount, Info: rule.Info()})
		totalContributions = totalContributions.Add(amount)
	}

	liability := incomeTax.Add(totalContributions)
	effective := decimal.Zero
	if gross.IsPositive() {
		effective = liability.Div(gross).Mul(hundred)
	}

	return &domain.TaxBreakdown{
		EventIncome:              in.EventIncome,
		OtherIncomeTotal:         in.OtherIncomeTotal,
		GrossIncome:              gross,
		TotalExpenses:            in.TotalExpenses,
		DeductibleExpenses:       in.DeductibleExpenses,
		NetIncome:                net,
		PersonalAllowance:        cfg.PersonalAllowance,
		TradingAllowance:         cfg.TradingAllowance,
		TaxableIncome:            taxable,
		IncomeTaxBreakdown:       lines,
		IncomeTax:                incomeTax,
		SocialContributions:      contributions,
		TotalSocialContributions: totalContributions,
		TotalTaxLiability:        liability,
		EffectiveRate:            effective,
		Adjustments:              append([]string(nil), cfg.Adjustments...),
	}, nil
}

// walkBrackets taxes the slice of income inside each bracket at its rate.
// Brackets the income never reaches, and zero-amount slices, produce no line.
func walkBrackets(income decimal.Decimal, brackets []domain.TaxBracket) (decimal.Decimal, []domain.BracketAmount) {
	total := decimal.Zero
	lines := []domain.BracketAmount{}
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		upper := income
		if !b.Unbounded() {
			upper = decimal.Min(income, *b.Max)
		}
		amount := upper.Sub(b.Min).Mul(b.Rate)
		if amount.IsZero() {
			continue
		}
		total = total.Add(amount)
		lines = append(lines, domain.BracketAmount{Bracket: b.Label(), Rate: b.Rate, Amount: amount})
	}
	return total, lines
}

func contribution(rule domain.SocialContributionRule, taxable decimal.Decimal) (decimal.Decimal, error) {
	switch r := rule.(type) {
	case domain.FlatContribution:
		if taxable.GreaterThan(r.Threshold) {
			return r.FlatRate, nil
		}
		return decimal.Zero, nil
	case domain.PercentageContribution:
		base := taxable
		if !r.EarningsFactor.IsZero() {
			base = base.Mul(r.EarningsFactor)
		}
		return decimal.Max(decimal.Zero, base.Sub(r.Threshold)).Mul(r.Rate), nil
	case domain.BracketContribution:
		amount, _ := walkBrackets(taxable, r.Brackets)
		return amount, nil
	}
	return decimal.Zero, fmt.Errorf("%w: unsupported contribution rule %T", domain.ErrInvalidConfig, rule)
}

// MarginalRate is the combined fraction of the next unit of taxable income
// taken by income tax and every contribution rule that scales with income.
func MarginalRate(cfg domain.CountryTaxConfig, taxable decimal.Decimal) decimal.Decimal {
	rate := bracketRateAt(cfg.IncomeTaxBrackets, taxable)
	for _, rule := range cfg.SocialContributions {
		switch r := rule.(type) {
		case domain.PercentageContribution:
			factor := decimal.NewFromInt(1)
			if !r.EarningsFactor.IsZero() {
				factor = r.EarningsFactor
			}
			if taxable.Mul(factor).GreaterThanOrEqual(r.Threshold) {
				rate = rate.Add(r.Rate.Mul(factor))
			}
		case domain.BracketContribution:
			rate = rate.Add(bracketRateAt(r.Brackets, taxable))
		}
	}
	return rate
}

// bracketRateAt returns the rate of the bracket the next unit of income falls in.
func bracketRateAt(brackets []domain.TaxBracket, income decimal.Decimal) decimal.Decimal {
	for _, b := range brackets {
		if income.LessThan(b.Min) {
			return decimal.Zero
		}
		if b.Unbounded() || income.LessThan(*b.Max) {
			return b.Rate
		}
	}
	return decimal.Zero
}
