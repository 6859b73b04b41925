package model

// SummaryTable is the precomputed summary-statistics artifact, carried
// through as an opaque table: the dashboard displays it, nothing computes
// over it.
type SummaryTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// PurposeRateRow is one row of the precomputed default_rates_by_purpose.csv
// artifact. RatePercent is a percentage, matching the file's
// "Default Rate (%)" column.
type PurposeRateRow struct {
	Purpose     string  `json:"purpose"`
	RatePercent float64 `json:"rate_percent"`
}

// Artifacts reports which optional auxiliary artifacts loaded successfully.
// A missing artifact disables the corresponding dashboard feature; it never
// fails the pipeline.
type Artifacts struct {
	Summary      bool `json:"summary"`
	DefaultRates bool `json:"default_rates"`
	Report       bool `json:"report"`
}
