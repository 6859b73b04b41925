package model

import "time"

// Column names as they appear in the cleaned dataset header.
const (
	ColAge          = "person_age"
	ColEducation    = "person_education"
	ColIncome       = "person_income"
	ColLoanAmount   = "loan_amnt"
	ColInterestRate = "loan_int_rate"
	ColPurpose      = "loan_intent"
	ColCreditScore  = "credit_score"
	ColStatus       = "loan_status"
)

// Columns is the canonical column order for the dataset, matching the
// header of loan_data_cleaned.csv.
var Columns = []string{
	ColAge,
	ColEducation,
	ColIncome,
	ColLoanAmount,
	ColInterestRate,
	ColPurpose,
	ColCreditScore,
	ColStatus,
}

// Record is a single loan application row.
// Defaulted carries the loan_status column: 1 = default, 0 = repaid.
type Record struct {
	Age          float64 `json:"person_age"`
	Education    string  `json:"person_education"`
	Income       float64 `json:"person_income"`
	LoanAmount   float64 `json:"loan_amnt"`
	InterestRate float64 `json:"loan_int_rate"`
	Purpose      string  `json:"loan_intent"`
	CreditScore  int     `json:"credit_score"`
	Defaulted    int     `json:"loan_status"`
}

// NumericField returns the value of a numeric column by name.
// The second return is false for unknown or non-numeric columns.
func (r Record) NumericField(col string) (float64, bool) {
	switch col {
	case ColAge:
		return r.Age, true
	case ColIncome:
		return r.Income, true
	case ColLoanAmount:
		return r.LoanAmount, true
	case ColInterestRate:
		return r.InterestRate, true
	case ColCreditScore:
		return float64(r.CreditScore), true
	case ColStatus:
		return float64(r.Defaulted), true
	}
	return 0, false
}

// Field returns the value of any column by name as a string/float pair
// suitable for display. ok is false for unknown columns.
func (r Record) Field(col string) (string, float64, bool) {
	switch col {
	case ColEducation:
		return r.Education, 0, true
	case ColPurpose:
		return r.Purpose, 0, true
	}
	if v, ok := r.NumericField(col); ok {
		return "", v, true
	}
	return "", 0, false
}

// NumericColumns lists the columns NumericField understands, in header order.
func NumericColumns() []string {
	return []string{ColAge, ColIncome, ColLoanAmount, ColInterestRate, ColCreditScore, ColStatus}
}

// Dataset is an ordered collection of Records sharing the uniform schema.
// It is read-only after loading; filtering and aggregation never mutate it.
type Dataset struct {
	Records  []Record
	Source   string    // path the dataset was loaded from
	LoadedAt time.Time // when the load happened
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// At returns the record at index i.
func (d *Dataset) At(i int) Record { return d.Records[i] }

// AmountBounds returns the observed [min, max] of loan_amnt.
func (d *Dataset) AmountBounds() Range {
	return boundsOf(d.Records, func(r Record) float64 { return r.LoanAmount })
}

// CreditBounds returns the observed [min, max] of credit_score.
func (d *Dataset) CreditBounds() Range {
	return boundsOf(d.Records, func(r Record) float64 { return float64(r.CreditScore) })
}

// Purposes returns the distinct loan_intent values in first-seen order.
func (d *Dataset) Purposes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.Records {
		if !seen[r.Purpose] {
			seen[r.Purpose] = true
			out = append(out, r.Purpose)
		}
	}
	return out
}

func boundsOf(records []Record, get func(Record) float64) Range {
	if len(records) == 0 {
		return Range{}
	}
	b := Range{Min: get(records[0]), Max: get(records[0])}
	for _, r := range records[1:] {
		v := get(r)
		if v < b.Min {
			b.Min = v
		}
		if v > b.Max {
			b.Max = v
		}
	}
	return b
}
