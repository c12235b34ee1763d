package decimal

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money represents a monetary amount in a single, implied currency.
// Arithmetic is exact; only String and Format round for display.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sum adds up a list of amounts.
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount fixed to two decimal places.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format prefixes the two-decimal amount with a currency symbol. Negative
// amounts render as -£12.00 rather than £-12.00.
func (m Money) Format(symbol string) string {
	if m.Decimal.IsNegative() {
		return "-" + symbol + m.Decimal.Abs().StringFixed(2)
	}
	return symbol + m.String()
}

// UnmarshalYAML accepts amounts written either as YAML numbers or quoted
// strings ("1234.56"); quoting avoids float parsing in other tools.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: money amount must be a scalar", value.Line)
	}
	if value.Value == "" {
		*m = Zero()
		return nil
	}
	parsed, err := NewMoneyFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid money amount %q: %w", value.Line, value.Value, err)
	}
	*m = parsed
	return nil
}

// MarshalYAML writes the exact amount as a quoted string.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.Decimal.String(), nil
}
