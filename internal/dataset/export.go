package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mam276/loan-default-dashboard/internal/model"
)

// RecordSource is anything exposing records by index: the full Dataset or
// a filtered view.
type RecordSource interface {
	Len() int
	At(i int) model.Record
}

// WriteCSV serializes records as CSV for download: a header row matching
// the dataset column names, then one row per record in source order.
func WriteCSV(w io.Writer, src RecordSource) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(model.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < src.Len(); i++ {
		r := src.At(i)
		row := []string{
			formatFloat(r.Age),
			r.Education,
			formatFloat(r.Income),
			formatFloat(r.LoanAmount),
			formatFloat(r.InterestRate),
			r.Purpose,
			strconv.Itoa(r.CreditScore),
			strconv.Itoa(r.Defaulted),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRatesCSV serializes the default-rates table with the same header the
// upstream artifact carries.
func WriteRatesCSV(w io.Writer, rows []model.PurposeRateRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Loan Purpose", "Default Rate (%)"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Purpose, strconv.FormatFloat(row.RatePercent, 'f', 2, 64)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for %s: %w", row.Purpose, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
