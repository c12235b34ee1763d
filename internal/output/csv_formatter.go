package output

import (
	"bytes"
	"errors"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// CSVFormatter renders the sectioned breakdown export.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	if report == nil || report.Breakdown == nil {
		return nil, errors.New("csv: report has no breakdown")
	}
	var buf bytes.Buffer
	rows := Rows(report.Breakdown, report.Country, report.TaxYear.Label, report.GeneratedAt)
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
