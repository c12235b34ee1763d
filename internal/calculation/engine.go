package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxrules"
)

// Engine resolves rule sets through a Provider and runs the Calculator.
type Engine struct {
	Rules  *taxrules.Provider
	Calc   *Calculator
	Clock  func() time.Time
	Logger Logger
}

// NewEngine creates an engine over the given provider.
func NewEngine(rules *taxrules.Provider) *Engine {
	if rules == nil {
		rules = taxrules.NewProvider()
	}
	return &Engine{
		Rules:  rules,
		Calc:   NewCalculator(),
		Clock:  time.Now,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its calculator. If nil is
// provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	e.Logger = orNop(l)
	e.Calc.SetLogger(l)
}

// Estimate computes a report for one tax year. An empty taxYear selects the
// country's current tax year.
func (e *Engine) Estimate(ctx context.Context, country domain.Country, taxYear string, in domain.TaxInputs) (*domain.TaxReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := orNop(e.Logger)
	if taxYear == "" {
		current, err := e.Rules.CurrentTaxYear(country)
		if err != nil {
			return nil, err
		}
		log.Infof("no tax year given for %s, using %s", country, current)
		taxYear = current
	}

	year, err := e.Rules.TaxYear(country, taxYear)
	if err != nil {
		return nil, err
	}
	cfg, err := e.Rules.Config(country, taxYear)
	if err != nil {
		return nil, err
	}
	breakdown, err := e.Calc.Calculate(in, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", country, taxYear, err)
	}
	for _, note := range breakdown.Adjustments {
		log.Warnf("%s %s: %s", country, taxYear, note)
	}

	return &domain.TaxReport{
		Country:      country,
		TaxYear:      year,
		GeneratedAt:  e.now(),
		Breakdown:    breakdown,
		MarginalRate: MarginalRate(cfg, breakdown.TaxableIncome),
	}, nil
}

// CompareTaxYears computes the same inputs under every configured tax year
// for the country, most recent first.
func (e *Engine) CompareTaxYears(ctx context.Context, country domain.Country, in domain.TaxInputs) ([]domain.TaxReport, error) {
	years, err := e.Rules.TaxYears(country)
	if err != nil {
		return nil, err
	}
	reports := make([]domain.TaxReport, 0, len(years))
	for _, y := range years {
		r, err := e.Estimate(ctx, country, y.Value, in)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, nil
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}
