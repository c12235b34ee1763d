// Package taxrules resolves the income-tax and social-contribution rule set
// for a (country, tax year) pair. Every lookup is a pure function of its
// inputs and the provider's clock; configs are rebuilt on each call and never
// shared, so a Provider is safe for concurrent use.
package taxrules

import (
	"fmt"
	"time"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/pkg/dateutil"
)

// yearEntry binds a published tax year to the rule set that encodes it.
type yearEntry[R comparable] struct {
	year  domain.TaxYear
	rules R
}

// jurisdiction is implemented once per country.
type jurisdiction interface {
	years() []domain.TaxYear
	config(taxYear string, opts options) (domain.CountryTaxConfig, error)
}

type options struct {
	selfEmploymentAdjustment bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock overrides the wall clock used to resolve the current tax year.
func WithClock(clock func() time.Time) Option {
	return func(p *Provider) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithSelfEmploymentAdjustment applies the 92.35% net-earnings factor to the
// US self-employment tax. Off by default: the published encoding charges
// 15.3% on the full taxable income.
func WithSelfEmploymentAdjustment() Option {
	return func(p *Provider) { p.opts.selfEmploymentAdjustment = true }
}

// Provider maps countries and tax years to rule sets.
type Provider struct {
	clock         func() time.Time
	opts          options
	jurisdictions map[domain.Country]jurisdiction
}

// NewProvider returns a provider for every supported country.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		clock: time.Now,
		jurisdictions: map[domain.Country]jurisdiction{
			domain.CountryUK: unitedKingdom{},
			domain.CountryIE: ireland{},
			domain.CountryUS: unitedStates{},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) lookup(country domain.Country) (jurisdiction, error) {
	j, ok := p.jurisdictions[country]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCountry, country)
	}
	return j, nil
}

// TaxYears lists the configured tax years for a country, most recent first.
func (p *Provider) TaxYears(country domain.Country) ([]domain.TaxYear, error) {
	j, err := p.lookup(country)
	if err != nil {
		return nil, err
	}
	return j.years(), nil
}

// CurrentTaxYear returns the value of the tax year whose window contains the
// provider's "now". When the clock falls outside every configured window the
// most recent year is returned.
func (p *Provider) CurrentTaxYear(country domain.Country) (string, error) {
	years, err := p.TaxYears(country)
	if err != nil {
		return "", err
	}
	now := p.clock()
	for _, y := range years {
		if (dateutil.Window{Start: y.StartDate, End: y.EndDate}).Contains(now) {
			return y.Value, nil
		}
	}
	return years[0].Value, nil
}

// TaxYear returns the full descriptor for a configured tax year value.
func (p *Provider) TaxYear(country domain.Country, value string) (domain.TaxYear, error) {
	years, err := p.TaxYears(country)
	if err != nil {
		return domain.TaxYear{}, err
	}
	for _, y := range years {
		if y.Value == value {
			return y, nil
		}
	}
	return domain.TaxYear{}, fmt.Errorf("%w: %q for %s", domain.ErrInvalidTaxYear, value, country)
}

// Config returns the rule set for a country and tax year.
func (p *Provider) Config(country domain.Country, taxYear string) (domain.CountryTaxConfig, error) {
	j, err := p.lookup(country)
	if err != nil {
		return domain.CountryTaxConfig{}, err
	}
	return j.config(taxYear, p.opts)
}

func resolve[R comparable](entries []yearEntry[R], country domain.Country, taxYear string) (R, error) {
	for _, e := range entries {
		if e.year.Value == taxYear {
			return e.rules, nil
		}
	}
	var zero R
	return zero, fmt.Errorf("%w: %q for %s", domain.ErrInvalidTaxYear, taxYear, country)
}

func yearsOf[R comparable](entries []yearEntry[R]) []domain.TaxYear {
	out := make([]domain.TaxYear, len(entries))
	for i, e := range entries {
		out[i] = e.year
	}
	return out
}

// unknownRuleSet is returned for enum values without a case; it means a year
// was added to a table without encoding its rules.
func unknownRuleSet(country domain.Country, rules any) error {
	return fmt.Errorf("%w: no rules encoded for %s rule set %v", domain.ErrInvalidTaxYear, country, rules)
}
