package domain

import "errors"

var (
	// ErrInvalidTaxYear is returned when a tax year is not configured for a country.
	ErrInvalidTaxYear = errors.New("invalid tax year")
	// ErrNegativeInput is returned when an income or expense aggregate is below zero.
	ErrNegativeInput = errors.New("negative input")
	// ErrUnknownCountry is returned for country codes without rule tables.
	ErrUnknownCountry = errors.New("unknown country")
	// ErrInvalidConfig marks a malformed bracket schedule or contribution rule.
	ErrInvalidConfig = errors.New("invalid tax configuration")
)
