package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TaxYear is a named accounting period a rule table applies to.
type TaxYear struct {
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// TaxBracket is one marginal-rate slice of a progressive schedule, covering
// [Min, Max). A nil Max marks the unbounded top bracket.
type TaxBracket struct {
	Min  decimal.Decimal  `json:"min"`
	Max  *decimal.Decimal `json:"max"`
	Rate decimal.Decimal  `json:"rate"`
}

// Bracket builds a bounded bracket from whole-currency thresholds.
func Bracket(min, max int64, rate float64) TaxBracket {
	upper := decimal.NewFromInt(max)
	return TaxBracket{Min: decimal.NewFromInt(min), Max: &upper, Rate: decimal.NewFromFloat(rate)}
}

// TopBracket builds the unbounded bracket starting at min.
func TopBracket(min int64, rate float64) TaxBracket {
	return TaxBracket{Min: decimal.NewFromInt(min), Rate: decimal.NewFromFloat(rate)}
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool { return b.Max == nil }

// Label renders the bracket range as "min-max", or "min+" for the top bracket.
func (b TaxBracket) Label() string {
	if b.Unbounded() {
		return b.Min.String() + "+"
	}
	return b.Min.String() + "-" + b.Max.String()
}

// ValidateBrackets checks a schedule is ascending, contiguous and ends unbounded.
func ValidateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: empty bracket schedule", ErrInvalidConfig)
	}
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		if b.Min.IsNegative() {
			return fmt.Errorf("%w: bracket %d starts below zero", ErrInvalidConfig, i)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1)", ErrInvalidConfig, i, b.Rate)
		}
		last := i == len(brackets)-1
		if last != b.Unbounded() {
			return fmt.Errorf("%w: only the last bracket may be unbounded (bracket %d)", ErrInvalidConfig, i)
		}
		if b.Unbounded() {
			continue
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%w: bracket %s is empty", ErrInvalidConfig, b.Label())
		}
		if !b.Max.Equal(brackets[i+1].Min) {
			return fmt.Errorf("%w: gap or overlap between %s and %s", ErrInvalidConfig, b.Label(), brackets[i+1].Label())
		}
	}
	return nil
}

// ContributionKind tags the shape of a social-contribution rule.
type ContributionKind string

const (
	KindFlat       ContributionKind = "flat"
	KindPercentage ContributionKind = "percentage"
	KindBrackets   ContributionKind = "brackets"
)

// SocialContributionRule is one of FlatContribution, PercentageContribution
// or BracketContribution. The set is closed.
type SocialContributionRule interface {
	RuleName() string
	Kind() ContributionKind
	Info() string
	validate() error
}

// FlatContribution owes FlatRate once income exceeds Threshold.
type FlatContribution struct {
	Name           string
	Threshold      decimal.Decimal
	FlatRate       decimal.Decimal
	AdditionalInfo string
}

func (r FlatContribution) RuleName() string       { return r.Name }
func (r FlatContribution) Kind() ContributionKind { return KindFlat }
func (r FlatContribution) Info() string           { return r.AdditionalInfo }

func (r FlatContribution) validate() error {
	if r.FlatRate.IsNegative() || r.Threshold.IsNegative() {
		return fmt.Errorf("%w: %s has a negative amount", ErrInvalidConfig, r.Name)
	}
	return nil
}

// PercentageContribution charges Rate on income above Threshold. When
// EarningsFactor is non-zero the income is first scaled by it.
type PercentageContribution struct {
	Name           string
	Threshold      decimal.Decimal
	Rate           decimal.Decimal
	EarningsFactor decimal.Decimal
	AdditionalInfo string
}

func (r PercentageContribution) RuleName() string       { return r.Name }
func (r PercentageContribution) Kind() ContributionKind { return KindPercentage }
func (r PercentageContribution) Info() string           { return r.AdditionalInfo }

func (r PercentageContribution) validate() error {
	if r.Rate.IsNegative() || r.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %s rate %s outside [0,1)", ErrInvalidConfig, r.Name, r.Rate)
	}
	if r.Threshold.IsNegative() || r.EarningsFactor.IsNegative() {
		return fmt.Errorf("%w: %s has a negative threshold or factor", ErrInvalidConfig, r.Name)
	}
	return nil
}

// BracketContribution walks its own progressive schedule.
type BracketContribution struct {
	Name           string
	Brackets       []TaxBracket
	AdditionalInfo string
}

func (r BracketContribution) RuleName() string       { return r.Name }
func (r BracketContribution) Kind() ContributionKind { return KindBrackets }
func (r BracketContribution) Info() string           { return r.AdditionalInfo }

func (r BracketContribution) validate() error {
	if err := ValidateBrackets(r.Brackets); err != nil {
		return fmt.Errorf("%s: %w", r.Name, err)
	}
	return nil
}

// CountryTaxConfig is the complete rule set for one (country, tax year).
type CountryTaxConfig struct {
	PersonalAllowance   decimal.Decimal
	TradingAllowance    decimal.Decimal
	IncomeTaxBrackets   []TaxBracket
	SocialContributions []SocialContributionRule
	// Adjustments lists opt-in deviations from the published encoding that
	// were applied when the config was built.
	Adjustments []string
}

// Validate checks allowances, the income-tax schedule and every contribution rule.
func (c CountryTaxConfig) Validate() error {
	if c.PersonalAllowance.IsNegative() || c.TradingAllowance.IsNegative() {
		return fmt.Errorf("%w: negative allowance", ErrInvalidConfig)
	}
	if err := ValidateBrackets(c.IncomeTaxBrackets); err != nil {
		return fmt.Errorf("income tax: %w", err)
	}
	for _, r := range c.SocialContributions {
		if r == nil {
			return fmt.Errorf("%w: nil contribution rule", ErrInvalidConfig)
		}
		if err := r.validate(); err != nil {
			return err
		}
	}
	return nil
}
