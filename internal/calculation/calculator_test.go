package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxrules"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), fmt.Sprint(msgAndArgs...))
}

func mustConfig(t *testing.T, p *taxrules.Provider, c domain.Country, year string) domain.CountryTaxConfig {
	t.Helper()
	cfg, err := p.Config(c, year)
	require.NoError(t, err)
	return cfg
}

func income(event string) domain.TaxInputs {
	return domain.TaxInputs{EventIncome: dec(event)}
}

func contributionNamed(t *testing.T, b *domain.TaxBreakdown, name string) decimal.Decimal {
	t.Helper()
	for _, c := range b.SocialContributions {
		if c.Name == name {
			return c.Amount
		}
	}
	t.Fatalf("contribution %q not in breakdown", name)
	return decimal.Zero
}

func TestUKScenarioTaxable60000(t *testing.T) {
	cfg := mustConfig(t, taxrules.NewProvider(), domain.CountryUK, "2024-25")
	// 60000 taxable after the 12570 personal and 1000 trading allowances
	b, err := NewCalculator().Calculate(income("73570"), cfg)
	require.NoError(t, err)

	assertAmount(t, "73570", b.GrossIncome)
	assertAmount(t, "73570", b.NetIncome)
	assertAmount(t, "60000", b.TaxableIncome)

	require.Len(t, b.IncomeTaxBreakdown, 2)
	assert.Equal(t, "0-37700", b.IncomeTaxBreakdown[0].Bracket)
	assertAmount(t, "7540", b.IncomeTaxBreakdown[0].Amount)
	assert.Equal(t, "37700-125140", b.IncomeTaxBreakdown[1].Bracket)
	assertAmount(t, "8920", b.IncomeTaxBreakdown[1].Amount)
	assertAmount(t, "16460", b.IncomeTax)

	assertAmount(t, "179.40", contributionNamed(t, b, "Class 2 National Insurance"))
	assertAmount(t, "2456.60", contributionNamed(t, b, "Class 4 National Insurance"))
	assertAmount(t, "2636.00", b.TotalSocialContributions)
	assertAmount(t, "19096.00", b.TotalTaxLiability)
	assert.Equal(t, "25.96", b.EffectiveRate.StringFixed(2))
}

func TestUKClass4MainRateByYear(t *testing.T) {
	p := taxrules.NewProvider()
	b, err := NewCalculator().Calculate(income("73570"), mustConfig(t, p, domain.CountryUK, "2023-24"))
	require.NoError(t, err)
	// (50270-12570)*0.09 + (60000-50270)*0.02
	assertAmount(t, "3587.60", contributionNamed(t, b, "Class 4 National Insurance"))
}

func TestIrelandScenarioIncomeAbsorbedByExpenses(t *testing.T) {
	cfg := mustConfig(t, taxrules.NewProvider(), domain.CountryIE, "2024")
	in := domain.TaxInputs{
		EventIncome:        dec("10000"),
		OtherIncomeTotal:   dec("2500"),
		TotalExpenses:      dec("16000"),
		DeductibleExpenses: dec("15000"),
	}
	b, err := NewCalculator().Calculate(in, cfg)
	require.NoError(t, err)

	assertAmount(t, "-2500", b.NetIncome)
	assertAmount(t, "0", b.TaxableIncome)
	assert.Empty(t, b.IncomeTaxBreakdown)
	assertAmount(t, "0", b.IncomeTax)
	require.Len(t, b.SocialContributions, 2)
	for _, c := range b.SocialContributions {
		assertAmount(t, "0", c.Amount, c.Name)
	}
	assertAmount(t, "0", b.TotalTaxLiability)
	assertAmount(t, "0", b.EffectiveRate)
}

func TestIrelandProgressiveUSC(t *testing.T) {
	cfg := mustConfig(t, taxrules.NewProvider(), domain.CountryIE, "2024")
	b, err := NewCalculator().Calculate(income("80000"), cfg)
	require.NoError(t, err)

	// 42000*0.20 + 38000*0.40
	assertAmount(t, "23600", b.IncomeTax)
	// 12012*0.005 + 13748*0.02 + 44284*0.04 + 9956*0.08
	assertAmount(t, "2902.86", contributionNamed(t, b, "Universal Social Charge (USC)"))
	// (80000-5000)*0.04
	assertAmount(t, "3000", contributionNamed(t, b, "PRSI (Class S)"))
}

func TestUSScenarioTaxable500000(t *testing.T) {
	cfg := mustConfig(t, taxrules.NewProvider(), domain.CountryUS, "2024")
	b, err := NewCalculator().Calculate(income("514600"), cfg)
	require.NoError(t, err)

	assertAmount(t, "500000", b.TaxableIncome)
	want := []struct {
		bracket string
		amount  string
	}{
		{"0-11600", "1160"},
		{"11600-47150", "4266"},
		{"47150-100525", "11742.50"},
		{"100525-191950", "21942"},
		{"191950-243725", "16568"},
		{"243725-609350", "89696.25"},
	}
	require.Len(t, b.IncomeTaxBreakdown, len(want))
	for i, w := range want {
		assert.Equal(t, w.bracket, b.IncomeTaxBreakdown[i].Bracket)
		assertAmount(t, w.amount, b.IncomeTaxBreakdown[i].Amount, w.bracket)
	}
	assertAmount(t, "145374.75", b.IncomeTax)
	// (500000-400)*0.153, no 92.35% factor by default
	assertAmount(t, "76438.80", contributionNamed(t, b, "Self-Employment Tax"))
	assertAmount(t, "221813.55", b.TotalTaxLiability)
	assert.Empty(t, b.Adjustments)
}

func TestUSSelfEmploymentAdjustmentOptIn(t *testing.T) {
	p := taxrules.NewProvider(taxrules.WithSelfEmploymentAdjustment())
	b, err := NewCalculator().Calculate(income("514600"), mustConfig(t, p, domain.CountryUS, "2024"))
	require.NoError(t, err)
	// (500000*0.9235 - 400)*0.153
	assertAmount(t, "70586.55", contributionNamed(t, b, "Self-Employment Tax"))
	assert.Equal(t, []string{taxrules.SelfEmploymentAdjustmentNote}, b.Adjustments)
}

func TestZeroIncomeBoundary(t *testing.T) {
	p := taxrules.NewProvider()
	for _, c := range domain.Countries {
		years, err := p.TaxYears(c)
		require.NoError(t, err)
		cfg := mustConfig(t, p, c, years[0].Value)
		b, err := NewCalculator().Calculate(domain.TaxInputs{}, cfg)
		require.NoError(t, err)
		assert.Empty(t, b.IncomeTaxBreakdown, c)
		assert.NotNil(t, b.IncomeTaxBreakdown, "empty slice, not nil, so JSON renders []")
		assertAmount(t, "0", b.IncomeTax)
		assert.Len(t, b.SocialContributions, len(cfg.SocialContributions), "zero-amount rules are still reported")
		assertAmount(t, "0", b.EffectiveRate)
	}
}

func TestAllowanceClamp(t *testing.T) {
	cfg := mustConfig(t, taxrules.NewProvider(), domain.CountryUK, "2024-25")
	in := domain.TaxInputs{EventIncome: dec("14000"), TotalExpenses: dec("900"), DeductibleExpenses: dec("600")}
	b, err := NewCalculator().Calculate(in, cfg)
	require.NoError(t, err)
	// 13400 net is below 12570 + 1000
	assertAmount(t, "13400", b.NetIncome)
	assert.True(t, b.TaxableIncome.IsZero())
	assert.False(t, b.TaxableIncome.IsNegative())
	assertAmount(t, "0", contributionNamed(t, b, "Class 2 National Insurance"))
	// gross is positive, so the rate is 0 rather than undefined
	assertAmount(t, "0", b.EffectiveRate)
}

func TestFlatContributionThresholdIsStrict(t *testing.T) {
	cfg := domain.CountryTaxConfig{
		IncomeTaxBrackets: []domain.TaxBracket{domain.TopBracket(0, 0)},
		SocialContributions: []domain.SocialContributionRule{
			domain.FlatContribution{Name: "flat", Threshold: dec("100"), FlatRate: dec("50")},
		},
	}
	at, err := NewCalculator().Calculate(income("100"), cfg)
	require.NoError(t, err)
	assertAmount(t, "0", at.TotalSocialContributions)

	above, err := NewCalculator().Calculate(income("100.01"), cfg)
	require.NoError(t, err)
	assertAmount(t, "50", above.TotalSocialContributions)
	// 0% bracket produces no breakdown line
	assert.Empty(t, above.IncomeTaxBreakdown)
}

func TestNegativeInputsFailFast(t *testing.T) {
	cfg := mustConfig(t, taxrules.NewProvider(), domain.CountryUK, "2024-25")
	cases := map[string]domain.TaxInputs{
		"event income":        {EventIncome: dec("-1")},
		"other income":        {OtherIncomeTotal: dec("-0.01")},
		"total expenses":      {TotalExpenses: dec("-5")},
		"deductible expenses": {DeductibleExpenses: dec("-5")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := NewCalculator().Calculate(in, cfg)
			assert.Nil(t, b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNegativeInput))
			assert.Contains(t, err.Error(), name)
		})
	}
}

// cumulativeTax computes tax as the precomputed tax up to the start of the
// bracket containing income, plus the marginal slice inside it.
func cumulativeTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	below := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Min) {
			return below
		}
		if b.Unbounded() || income.LessThanOrEqual(*b.Max) {
			return below.Add(income.Sub(b.Min).Mul(b.Rate))
		}
		below = below.Add(b.Max.Sub(b.Min).Mul(b.Rate))
	}
	return below
}

func TestBracketWalkMatchesCumulativeThresholds(t *testing.T) {
	p := taxrules.NewProvider()
	for _, c := range domain.Countries {
		years, _ := p.TaxYears(c)
		for _, y := range years {
			cfg := mustConfig(t, p, c, y.Value)
			for _, amount := range []string{"0", "1", "11600", "12012.01", "37700", "37700.01", "42000", "70044", "125140", "250000.37", "700000"} {
				taxable := dec(amount)
				got, lines := walkBrackets(taxable, cfg.IncomeTaxBrackets)
				assert.True(t, cumulativeTax(taxable, cfg.IncomeTaxBrackets).Equal(got), "%s %s at %s", c, y.Value, amount)

				sum := decimal.Zero
				for _, l := range lines {
					sum = sum.Add(l.Amount)
				}
				assert.True(t, sum.Equal(got))
			}
		}
	}
}

func TestMonotonicity(t *testing.T) {
	p := taxrules.NewProvider()
	calc := NewCalculator()
	step := dec("1234.56")
	for _, c := range domain.Countries {
		years, _ := p.TaxYears(c)
		cfg := mustConfig(t, p, c, years[0].Value)
		var prev *domain.TaxBreakdown
		for in := decimal.Zero; in.LessThan(dec("300000")); in = in.Add(step) {
			b, err := calc.Calculate(domain.TaxInputs{EventIncome: in}, cfg)
			require.NoError(t, err)
			if prev != nil {
				assert.True(t, b.IncomeTax.GreaterThanOrEqual(prev.IncomeTax), "%s income tax fell at %s", c, in)
				for i := range b.SocialContributions {
					assert.True(t, b.SocialContributions[i].Amount.GreaterThanOrEqual(prev.SocialContributions[i].Amount),
						"%s %s fell at %s", c, b.SocialContributions[i].Name, in)
				}
			}
			prev = b
		}
	}
}

func TestMarginalRate(t *testing.T) {
	p := taxrules.NewProvider()
	uk := mustConfig(t, p, domain.CountryUK, "2024-25")
	assertAmount(t, "0.42", MarginalRate(uk, dec("60000")))
	assertAmount(t, "0.26", MarginalRate(uk, dec("20000")))
	assertAmount(t, "0.2", MarginalRate(uk, dec("0")))

	us := mustConfig(t, p, domain.CountryUS, "2024")
	assertAmount(t, "0.503", MarginalRate(us, dec("500000")))
	assertAmount(t, "0.1", MarginalRate(us, dec("100")))

	adjusted := mustConfig(t, taxrules.NewProvider(taxrules.WithSelfEmploymentAdjustment()), domain.CountryUS, "2024")
	// 0.35 + 0.153*0.9235
	assertAmount(t, "0.4912955", MarginalRate(adjusted, dec("500000")))
}

type recordingLogger struct {
	NopLogger
	debug []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}

func TestCalculatorLogsEachStep(t *testing.T) {
	rec := &recordingLogger{}
	calc := NewCalculator()
	calc.SetLogger(rec)
	_, err := calc.Calculate(income("73570"), mustConfig(t, taxrules.NewProvider(), domain.CountryUK, "2024-25"))
	require.NoError(t, err)
	// totals line, two income tax brackets, two contribution rules
	assert.Len(t, rec.debug, 5)
	assert.Contains(t, rec.debug[0], "taxable=60000")

	calc.SetLogger(nil)
	assert.IsType(t, NopLogger{}, calc.Logger)
}

func TestCalculateRejectsInvalidSchedules(t *testing.T) {
	overlap := domain.TaxBracket{Min: dec("50"), Rate: dec("0.5")}
	tests := []struct {
		name string
		cfg  domain.CountryTaxConfig
	}{
		{"overlapping brackets", domain.CountryTaxConfig{
			IncomeTaxBrackets: []domain.TaxBracket{domain.Bracket(0, 100, 0.1), overlap},
		}},
		{"gap between brackets", domain.CountryTaxConfig{
			IncomeTaxBrackets: []domain.TaxBracket{domain.Bracket(0, 100, 0.1), domain.TopBracket(150, 0.2)},
		}},
		{"bounded last bracket", domain.CountryTaxConfig{
			IncomeTaxBrackets: []domain.TaxBracket{domain.Bracket(0, 100, 0.1)},
		}},
		{"rate of one", domain.CountryTaxConfig{
			IncomeTaxBrackets: []domain.TaxBracket{domain.TopBracket(0, 1)},
		}},
		{"overlapping contribution brackets", domain.CountryTaxConfig{
			IncomeTaxBrackets: []domain.TaxBracket{domain.TopBracket(0, 0.2)},
			SocialContributions: []domain.SocialContributionRule{
				domain.BracketContribution{Name: "levy", Brackets: []domain.TaxBracket{domain.Bracket(0, 100, 0.1), overlap}},
			},
		}},
		{"negative allowance", domain.CountryTaxConfig{
			PersonalAllowance: dec("-1"),
			IncomeTaxBrackets: []domain.TaxBracket{domain.TopBracket(0, 0.2)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewCalculator().Calculate(income("200"), tt.cfg)
			assert.Nil(t, b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestDeductibleExpensesMustNotExceedTotal(t *testing.T) {
	cfg := mustConfig(t, taxrules.NewProvider(), domain.CountryIE, "2024")
	in := domain.TaxInputs{EventIncome: dec("20000"), DeductibleExpenses: dec("15000")}
	b, err := NewCalculator().Calculate(in, cfg)
	assert.Nil(t, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNegativeInput))
	assert.Contains(t, err.Error(), "exceed total expenses")

	in.TotalExpenses = dec("15000")
	b, err = NewCalculator().Calculate(in, cfg)
	require.NoError(t, err)
	assertAmount(t, "5000", b.NetIncome)
}

func TestContributionInfoIsCarried(t *testing.T) {
	b, err := NewCalculator().Calculate(income("80000"), mustConfig(t, taxrules.NewProvider(), domain.CountryIE, "2024"))
	require.NoError(t, err)
	for _, c := range b.SocialContributions {
		assert.NotEmpty(t, c.Info, c.Name)
	}
}
