package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxrules"
)

// InputParser handles parsing of income statement files
type InputParser struct {
	rules *taxrules.Provider
}

// NewInputParser creates a new input parser. Tax years are checked against rules;
// a nil provider uses the built-in tables.
func NewInputParser(rules *taxrules.Provider) *InputParser {
	if rules == nil {
		rules = taxrules.NewProvider()
	}
	return &InputParser{rules: rules}
}

// LoadFromFile loads a statement from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Statement, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML statement. Unknown keys are rejected so
// that typos such as "expence" do not silently drop amounts.
func (ip *InputParser) Parse(data []byte) (*domain.Statement, error) {
	var statement domain.Statement
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&statement); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateStatement(&statement); err != nil {
		return nil, fmt.Errorf("statement validation failed: %w", err)
	}
	return &statement, nil
}

// ValidateStatement checks the country, tax year and every amount.
func (ip *InputParser) ValidateStatement(s *domain.Statement) error {
	country, err := domain.ParseCountry(s.Country)
	if err != nil {
		return err
	}
	s.Country = string(country)

	if s.TaxYear != "" {
		if _, err := ip.rules.TaxYear(country, s.TaxYear); err != nil {
			return err
		}
	}

	if s.EventIncome.IsNegative() {
		return fmt.Errorf("%w: event_income is %s", domain.ErrNegativeInput, s.EventIncome)
	}
	for i, item := range s.OtherIncome {
		if item.Amount.IsNegative() {
			return fmt.Errorf("%w: other_income[%d] %q is %s", domain.ErrNegativeInput, i, item.Description, item.Amount)
		}
	}
	for i, e := range s.Expenses {
		if e.Amount.IsNegative() {
			return fmt.Errorf("%w: expenses[%d] %q is %s", domain.ErrNegativeInput, i, e.Description, e.Amount)
		}
	}
	return nil
}

// SaveStatement writes a statement back out as YAML.
func SaveStatement(s *domain.Statement, filename string) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
