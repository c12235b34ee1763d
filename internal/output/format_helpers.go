package output

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/tax-estimator/internal/domain"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatAmount renders a plain two-decimal number, the form used in CSV cells.
func FormatAmount(amount decimal.Decimal) string { return amount.StringFixed(2) }

// FormatCurrency formats an amount with the country's currency symbol.
func FormatCurrency(amount decimal.Decimal, country domain.Country) string {
	return money.NewMoneyFromDecimal(amount).Format(country.Symbol())
}

// FormatPercentage formats a value already in percentage units with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fractional rate as a percentage without padding: 0.005 -> "0.5%".
func FormatRate(rate decimal.Decimal) string { return rate.Mul(decimalHundred).String() + "%" }
