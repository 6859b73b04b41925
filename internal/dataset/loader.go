package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/mam276/loan-default-dashboard/internal/cache"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

// Loader reads the primary dataset and the auxiliary artifacts. Loads are
// idempotent: re-reading an unchanged file yields an equivalent result. A
// cache, when configured, memoizes the parsed form keyed by path and
// modification stamp.
type Loader struct {
	cache  cache.Cache
	logger *slog.Logger
}

// NewLoader creates a Loader. cache may be nil to disable memoization.
func NewLoader(c cache.Cache, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cache: c, logger: logger}
}

// LoadDataset parses the primary dataset CSV into a typed Dataset.
// Every row must carry loan_amnt, credit_score, loan_intent and loan_status;
// a row violating the schema fails the whole load with a ParseError rather
// than letting loosely-typed values through.
func (l *Loader) LoadDataset(path string) (*model.Dataset, error) {
	var cached model.Dataset
	key, hit := l.cacheGet(path, &cached)
	if hit {
		cached.Source = path
		cached.LoadedAt = time.Now().UTC()
		l.logger.Debug("dataset cache hit", "path", path, "records", len(cached.Records))
		return &cached, nil
	}

	ds, err := l.parseDataset(path)
	if err != nil {
		return nil, err
	}

	l.cacheSet(path, key, ds)
	return ds, nil
}

// cacheGet decodes the cached entry for path into v. When the lookup
// misses it still returns the key so the caller can store the parsed
// result under it.
func (l *Loader) cacheGet(path string, v any) (key string, hit bool) {
	if l.cache == nil {
		return "", false
	}
	key, err := cache.FileKey(path)
	if err != nil {
		return "", false
	}
	data, found := l.cache.Get(key)
	if !found {
		return key, false
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = l.cache.Delete(key)
		return key, false
	}
	return key, true
}

func (l *Loader) cacheSet(path, key string, v any) {
	if l.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := l.cache.Set(key, data, 0); err != nil {
		l.logger.Warn("cache write failed", "path", path, "error", err)
	}
}

// LoadSummary parses the optional summary-statistics artifact. The table is
// carried through verbatim: header plus string cells.
func (l *Loader) LoadSummary(path string) (*model.SummaryTable, error) {
	var cached model.SummaryTable
	key, hit := l.cacheGet(path, &cached)
	if hit {
		return &cached, nil
	}

	rows, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("empty file")}
	}

	table := &model.SummaryTable{Columns: rows[0], Rows: rows[1:]}
	l.cacheSet(path, key, table)
	return table, nil
}

// LoadDefaultRates parses the optional default-rates artifact. The file
// must carry the header columns "Loan Purpose" and "Default Rate (%)".
func (l *Loader) LoadDefaultRates(path string) ([]model.PurposeRateRow, error) {
	var cached []model.PurposeRateRow
	key, hit := l.cacheGet(path, &cached)
	if hit {
		return cached, nil
	}

	rows, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("empty file")}
	}

	purposeIdx, rateIdx := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case "Loan Purpose":
			purposeIdx = i
		case "Default Rate (%)":
			rateIdx = i
		}
	}
	if purposeIdx < 0 || rateIdx < 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("missing required headers, got %v", rows[0])}
	}

	out := make([]model.PurposeRateRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if purposeIdx >= len(row) || rateIdx >= len(row) {
			return nil, &ParseError{Path: path, Row: i + 1, Err: errors.New("short row")}
		}
		rate, err := cast.ToFloat64E(strings.TrimSpace(row[rateIdx]))
		if err != nil {
			return nil, &ParseError{Path: path, Row: i + 1, Column: "Default Rate (%)", Err: err}
		}
		out = append(out, model.PurposeRateRow{
			Purpose:     strings.TrimSpace(row[purposeIdx]),
			RatePercent: rate,
		})
	}

	l.cacheSet(path, key, out)
	return out, nil
}

// LoadReport reads the optional plain-text analysis report.
func (l *Loader) LoadReport(path string) (string, error) {
	var cached string
	key, hit := l.cacheGet(path, &cached)
	if hit {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &NotFoundError{Path: path, Err: err}
	}

	text := string(data)
	l.cacheSet(path, key, text)
	return text, nil
}

func (l *Loader) parseDataset(path string) (*model.Dataset, error) {
	rows, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("empty file")}
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{model.ColLoanAmount, model.ColCreditScore, model.ColPurpose, model.ColStatus} {
		if _, ok := idx[required]; !ok {
			return nil, &ParseError{Path: path, Column: required, Err: errors.New("missing required column")}
		}
	}

	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row, idx)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = path
				pe.Row = i + 1
				return nil, pe
			}
			return nil, &ParseError{Path: path, Row: i + 1, Err: err}
		}
		records = append(records, rec)
	}

	l.logger.Info("dataset loaded", "path", path, "records", len(records))
	return &model.Dataset{
		Records:  records,
		Source:   path,
		LoadedAt: time.Now().UTC(),
	}, nil
}

func parseRecord(row []string, idx map[string]int) (model.Record, error) {
	var rec model.Record

	get := func(col string) (string, bool) {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	// Required fields: any absence or conversion failure rejects the row.
	numeric := func(col string, dst *float64) error {
		raw, ok := get(col)
		if !ok || raw == "" {
			return &ParseError{Column: col, Err: errors.New("missing value")}
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return &ParseError{Column: col, Err: err}
		}
		*dst = v
		return nil
	}

	if err := numeric(model.ColLoanAmount, &rec.LoanAmount); err != nil {
		return rec, err
	}
	if rec.LoanAmount <= 0 {
		return rec, &ParseError{Column: model.ColLoanAmount, Err: fmt.Errorf("must be positive, got %v", rec.LoanAmount)}
	}

	rawScore, ok := get(model.ColCreditScore)
	if !ok || rawScore == "" {
		return rec, &ParseError{Column: model.ColCreditScore, Err: errors.New("missing value")}
	}
	score, err := cast.ToIntE(rawScore)
	if err != nil {
		// Down-convert a float-formatted score rather than rejecting it.
		f, ferr := cast.ToFloat64E(rawScore)
		if ferr != nil {
			return rec, &ParseError{Column: model.ColCreditScore, Err: err}
		}
		score = int(f)
	}
	rec.CreditScore = score

	purpose, ok := get(model.ColPurpose)
	if !ok || purpose == "" {
		return rec, &ParseError{Column: model.ColPurpose, Err: errors.New("missing value")}
	}
	rec.Purpose = purpose

	rawStatus, ok := get(model.ColStatus)
	if !ok || rawStatus == "" {
		return rec, &ParseError{Column: model.ColStatus, Err: errors.New("missing value")}
	}
	status, err := cast.ToIntE(rawStatus)
	if err != nil || (status != 0 && status != 1) {
		return rec, &ParseError{Column: model.ColStatus, Err: fmt.Errorf("expected 0 or 1, got %q", rawStatus)}
	}
	rec.Defaulted = status

	// Auxiliary numeric fields: blanks become zero values, but a present
	// malformed value rejects the row. Swallowing it would skew every mean
	// computed over the column.
	if raw, ok := get(model.ColAge); ok && raw != "" {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return rec, &ParseError{Column: model.ColAge, Err: err}
		}
		rec.Age = v
	}
	if raw, ok := get(model.ColIncome); ok && raw != "" {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return rec, &ParseError{Column: model.ColIncome, Err: err}
		}
		if v < 0 {
			return rec, &ParseError{Column: model.ColIncome, Err: fmt.Errorf("must be non-negative, got %v", v)}
		}
		rec.Income = v
	}
	if raw, ok := get(model.ColInterestRate); ok && raw != "" {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return rec, &ParseError{Column: model.ColInterestRate, Err: err}
		}
		rec.InterestRate = v
	}
	if raw, ok := get(model.ColEducation); ok {
		rec.Education = raw
	}

	return rec, nil
}

// readCSV reads a whole CSV file, mapping I/O failures to NotFoundError and
// format failures to ParseError.
func (l *Loader) readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
