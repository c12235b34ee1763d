package domain

import (
	"fmt"
	"strings"
)

// Country selects a jurisdiction's rule tables.
type Country string

const (
	CountryUK Country = "UK"
	CountryIE Country = "IE"
	CountryUS Country = "US"
)

// Countries lists the supported jurisdictions in display order.
var Countries = []Country{CountryUK, CountryIE, CountryUS}

// ParseCountry accepts the two-letter code in any case.
func ParseCountry(s string) (Country, error) {
	c := Country(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CountryUK, CountryIE, CountryUS:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCountry, s)
}

// Name is the display name used in report headers.
func (c Country) Name() string {
	switch c {
	case CountryUK:
		return "United Kingdom"
	case CountryIE:
		return "Ireland"
	case CountryUS:
		return "United States"
	}
	return string(c)
}

// Currency is the ISO 4217 code all of the country's amounts are expressed in.
func (c Country) Currency() string {
	switch c {
	case CountryUK:
		return "GBP"
	case CountryIE:
		return "EUR"
	case CountryUS:
		return "USD"
	}
	return ""
}

// Symbol is the display symbol for Currency.
func (c Country) Symbol() string {
	switch c {
	case CountryUK:
		return "£"
	case CountryIE:
		return "€"
	case CountryUS:
		return "$"
	}
	return ""
}

// ContributionsTitle names the social-contribution section of a report.
func (c Country) ContributionsTitle() string {
	switch c {
	case CountryUK:
		return "National Insurance"
	case CountryIE:
		return "USC & PRSI"
	case CountryUS:
		return "Self-Employment Tax"
	}
	return "Social Contributions"
}

// TradingAllowanceLabel is what the country calls the second fixed deduction.
func (c Country) TradingAllowanceLabel() string {
	if c == CountryUS {
		return "Standard Deduction"
	}
	return "Trading Allowance"
}
