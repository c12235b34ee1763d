package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/tax-estimator/internal/domain"
)

const ukStatement = "country: uk\n" +
	"tax_year: \"2024-25\"\n" +
	"event_income: \"52000\"\n" +
	"other_income:\n" +
	"  - description: \"Workshops, online\"\n" +
	"    amount: 8000\n" +
	"expenses:\n" +
	"  - description: \"Camera\"\n" +
	"    amount: \"1200.50\"\n" +
	"    deductible: true\n" +
	"  - description: \"Lunch\"\n" +
	"    amount: 300\n"

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser(nil)
	assert.NotNil(t, parser)
	assert.NotNil(t, parser.rules)
}

func TestLoadFromFile_Success(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_statement_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())
	_, err = tmpfile.WriteString(ukStatement)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	s, err := NewInputParser(nil).LoadFromFile(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "UK", s.Country, "country is normalised")
	assert.Equal(t, "2024-25", s.TaxYear)
	require.Len(t, s.OtherIncome, 1)
	assert.Equal(t, "Workshops, online", s.OtherIncome[0].Description)

	in := s.Inputs()
	assert.Equal(t, "52000", in.EventIncome.String())
	assert.Equal(t, "8000", in.OtherIncomeTotal.String())
	assert.Equal(t, "1500.5", in.TotalExpenses.String())
	assert.Equal(t, "1200.5", in.DeductibleExpenses.String())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	_, err := NewInputParser(nil).LoadFromFile("nonexistent_file.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_TaxYearIsOptional(t *testing.T) {
	s, err := NewInputParser(nil).Parse([]byte("country: US\nevent_income: 1000\n"))
	require.NoError(t, err)
	assert.Empty(t, s.TaxYear)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		snippet string
	}{
		{"unknown country", "country: FR\nevent_income: 1\n", domain.ErrUnknownCountry, ""},
		{"missing country", "event_income: 1\n", domain.ErrUnknownCountry, ""},
		{"year for wrong country", "country: IE\ntax_year: \"2024-25\"\n", domain.ErrInvalidTaxYear, ""},
		{"negative event income", "country: UK\nevent_income: -5\n", domain.ErrNegativeInput, "event_income"},
		{"negative other income", "country: UK\nother_income:\n  - {description: gift, amount: -1}\n", domain.ErrNegativeInput, "gift"},
		{"negative expense", "country: UK\nexpenses:\n  - {description: refund, amount: -1}\n", domain.ErrNegativeInput, "refund"},
		{"bad amount", "country: UK\nevent_income: lots\n", nil, "invalid money amount"},
		{"unknown field", "country: UK\nexpence: 5\n", nil, "expence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser(nil).Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.snippet != "" {
				assert.Contains(t, err.Error(), tt.snippet)
			}
		})
	}
}

func TestSaveStatementRoundTrip(t *testing.T) {
	parser := NewInputParser(nil)
	s, err := parser.Parse([]byte(ukStatement))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "statement.yaml")
	require.NoError(t, SaveStatement(s, path))

	back, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Country, back.Country)
	assert.Equal(t, s.TaxYear, back.TaxYear)
	assert.True(t, s.Inputs().TotalExpenses.Equal(back.Inputs().TotalExpenses))
	assert.True(t, s.Inputs().DeductibleExpenses.Equal(back.Inputs().DeductibleExpenses))
	assert.True(t, s.EventIncome.Equal(back.EventIncome.Decimal))
}
