package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mam276/loan-default-dashboard/internal/model"
)

const sampleCSV = `person_age,person_education,person_income,loan_amnt,loan_int_rate,loan_intent,credit_score,loan_status
25.0,Bachelor,45000,8000,11.5,EDUCATION,640,1
32.0,Master,72000,15000,9.2,MEDICAL,710,0
41.0,High School,38000,5000,13.1,PERSONAL,590,1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLoadDataset(t *testing.T) {
	path := writeFile(t, t.TempDir(), "loans.csv", sampleCSV)
	loader := NewLoader(nil, quietLogger())

	ds, err := loader.LoadDataset(path)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, path, ds.Source)
	assert.False(t, ds.LoadedAt.IsZero())

	first := ds.At(0)
	assert.Equal(t, 25.0, first.Age)
	assert.Equal(t, "Bachelor", first.Education)
	assert.Equal(t, 45000.0, first.Income)
	assert.Equal(t, 8000.0, first.LoanAmount)
	assert.Equal(t, 11.5, first.InterestRate)
	assert.Equal(t, "EDUCATION", first.Purpose)
	assert.Equal(t, 640, first.CreditScore)
	assert.Equal(t, 1, first.Defaulted)
}

// spyCache counts lookups so tests can observe memoization.
type spyCache struct {
	entries map[string][]byte
	sets    int
	hits    int
}

func newSpyCache() *spyCache { return &spyCache{entries: make(map[string][]byte)} }

func (c *spyCache) Get(key string) ([]byte, bool) {
	data, found := c.entries[key]
	if found {
		c.hits++
	}
	return data, found
}

func (c *spyCache) Set(key string, value []byte, _ time.Duration) error {
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *spyCache) Delete(key string) error {
	delete(c.entries, key)
	return nil
}

func (c *spyCache) Clear() error {
	c.entries = make(map[string][]byte)
	return nil
}

func TestLoader_MemoizesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeFile(t, dir, "loans.csv", sampleCSV)
	summaryPath := writeFile(t, dir, "summary.csv", "Statistic,loan_amnt\nmean,9333.33\n")
	ratesPath := writeFile(t, dir, "rates.csv", "Loan Purpose,Default Rate (%)\nEDUCATION,17.20\n")
	reportPath := writeFile(t, dir, "report.txt", "report body\n")

	spy := newSpyCache()
	loader := NewLoader(spy, quietLogger())

	ds1, err := loader.LoadDataset(dataPath)
	require.NoError(t, err)
	sum1, err := loader.LoadSummary(summaryPath)
	require.NoError(t, err)
	rates1, err := loader.LoadDefaultRates(ratesPath)
	require.NoError(t, err)
	rep1, err := loader.LoadReport(reportPath)
	require.NoError(t, err)

	assert.Equal(t, 4, spy.sets, "first pass parses and stores each artifact")
	assert.Equal(t, 0, spy.hits)

	ds2, err := loader.LoadDataset(dataPath)
	require.NoError(t, err)
	sum2, err := loader.LoadSummary(summaryPath)
	require.NoError(t, err)
	rates2, err := loader.LoadDefaultRates(ratesPath)
	require.NoError(t, err)
	rep2, err := loader.LoadReport(reportPath)
	require.NoError(t, err)

	assert.Equal(t, 4, spy.sets, "second pass stores nothing new")
	assert.Equal(t, 4, spy.hits, "second pass is served from the cache")

	assert.Equal(t, ds1.Records, ds2.Records)
	assert.Equal(t, sum1, sum2)
	assert.Equal(t, rates1, rates2)
	assert.Equal(t, rep1, rep2)
}

func TestLoader_CacheKeyTracksFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rates.csv", "Loan Purpose,Default Rate (%)\nEDUCATION,17.20\n")

	loader := NewLoader(newSpyCache(), quietLogger())

	rates, err := loader.LoadDefaultRates(path)
	require.NoError(t, err)
	require.Len(t, rates, 1)

	// A rewritten file gets a fresh key, so the stale entry is not served.
	writeFile(t, dir, "rates.csv", "Loan Purpose,Default Rate (%)\nEDUCATION,17.20\nMEDICAL,26.55\n")
	rates, err = loader.LoadDefaultRates(path)
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestLoadDataset_Idempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "loans.csv", sampleCSV)
	loader := NewLoader(nil, quietLogger())

	first, err := loader.LoadDataset(path)
	require.NoError(t, err)
	second, err := loader.LoadDataset(path)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
}

func TestLoadDataset_MissingFile(t *testing.T) {
	loader := NewLoader(nil, quietLogger())

	_, err := loader.LoadDataset(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "expected NotFoundError, got %T", err)
	assert.False(t, IsParseFailure(err))
}

func TestLoadDataset_SchemaViolations(t *testing.T) {
	loader := NewLoader(nil, quietLogger())
	dir := t.TempDir()

	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing required column",
			csv:  "person_age,loan_amnt,loan_intent,loan_status\n25,8000,EDUCATION,1\n",
		},
		{
			name: "non-numeric loan amount",
			csv:  "loan_amnt,credit_score,loan_intent,loan_status\nlots,640,EDUCATION,1\n",
		},
		{
			name: "non-positive loan amount",
			csv:  "loan_amnt,credit_score,loan_intent,loan_status\n0,640,EDUCATION,1\n",
		},
		{
			name: "status outside 0/1",
			csv:  "loan_amnt,credit_score,loan_intent,loan_status\n8000,640,EDUCATION,2\n",
		},
		{
			name: "blank purpose",
			csv:  "loan_amnt,credit_score,loan_intent,loan_status\n8000,640,,1\n",
		},
		{
			name: "negative income",
			csv:  "loan_amnt,credit_score,loan_intent,loan_status,person_income\n8000,640,EDUCATION,1,-5\n",
		},
		{
			name: "non-numeric age",
			csv:  "loan_amnt,credit_score,loan_intent,loan_status,person_age\n8000,640,EDUCATION,1,young\n",
		},
		{
			name: "non-numeric interest rate",
			csv:  "loan_amnt,credit_score,loan_intent,loan_status,loan_int_rate\n8000,640,EDUCATION,1,high\n",
		},
		{
			name: "empty file",
			csv:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.csv", tt.csv)
			_, err := loader.LoadDataset(path)
			require.Error(t, err)
			assert.True(t, IsParseFailure(err), "expected ParseError, got %v", err)
		})
	}
}

func TestLoadDataset_BlankAuxiliaryFields(t *testing.T) {
	csv := "loan_amnt,credit_score,loan_intent,loan_status,person_age,loan_int_rate\n8000,640,EDUCATION,1,,\n"
	path := writeFile(t, t.TempDir(), "loans.csv", csv)
	loader := NewLoader(nil, quietLogger())

	ds, err := loader.LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ds.At(0).Age)
	assert.Equal(t, 0.0, ds.At(0).InterestRate)
}

func TestLoadDataset_FloatCreditScore(t *testing.T) {
	csv := "loan_amnt,credit_score,loan_intent,loan_status\n8000,640.0,EDUCATION,1\n"
	path := writeFile(t, t.TempDir(), "loans.csv", csv)
	loader := NewLoader(nil, quietLogger())

	ds, err := loader.LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, 640, ds.At(0).CreditScore)
}

func TestLoadSummary(t *testing.T) {
	csv := "Statistic,loan_amnt,credit_score\nmean,9333.33,646.67\nstd,5131.6,60.3\n"
	path := writeFile(t, t.TempDir(), "summary.csv", csv)
	loader := NewLoader(nil, quietLogger())

	table, err := loader.LoadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Statistic", "loan_amnt", "credit_score"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "mean", table.Rows[0][0])
}

func TestLoadDefaultRates(t *testing.T) {
	csv := "Loan Purpose,Default Rate (%)\nEDUCATION,17.20\nMEDICAL,26.55\n"
	path := writeFile(t, t.TempDir(), "rates.csv", csv)
	loader := NewLoader(nil, quietLogger())

	rates, err := loader.LoadDefaultRates(path)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, model.PurposeRateRow{Purpose: "EDUCATION", RatePercent: 17.2}, rates[0])
	assert.Equal(t, model.PurposeRateRow{Purpose: "MEDICAL", RatePercent: 26.55}, rates[1])
}

func TestLoadDefaultRates_BadHeader(t *testing.T) {
	csv := "purpose,rate\nEDUCATION,17.20\n"
	path := writeFile(t, t.TempDir(), "rates.csv", csv)
	loader := NewLoader(nil, quietLogger())

	_, err := loader.LoadDefaultRates(path)
	require.Error(t, err)
	assert.True(t, IsParseFailure(err))
}

func TestLoadReport(t *testing.T) {
	loader := NewLoader(nil, quietLogger())
	path := writeFile(t, t.TempDir(), "report.txt", "LOAN DEFAULT ANALYSIS\n")

	text, err := loader.LoadReport(path)
	require.NoError(t, err)
	assert.Contains(t, text, "LOAN DEFAULT ANALYSIS")

	_, err = loader.LoadReport(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestNewSession(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "loan_data_cleaned.csv", sampleCSV)
	writeFile(t, dir, "default_rates_by_purpose.csv", "Loan Purpose,Default Rate (%)\nEDUCATION,33.33\n")
	writeFile(t, dir, "loan_analysis_report.txt", "report body\n")

	cfg := model.DataConfig{
		Dir:         dir,
		DatasetFile: "loan_data_cleaned.csv",
		SummaryFile: "loan_summary_statistics.csv", // deliberately absent
		RatesFile:   "default_rates_by_purpose.csv",
		ReportFile:  "loan_analysis_report.txt",
	}

	sess, err := NewSession(NewLoader(nil, quietLogger()), cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, sess.Dataset.Len())

	// Missing auxiliary artifact disables the feature without failing the load.
	artifacts := sess.Artifacts()
	assert.False(t, artifacts.Summary)
	assert.True(t, artifacts.DefaultRates)
	assert.True(t, artifacts.Report)

	criteria := sess.OpenCriteria()
	assert.Equal(t, model.StatusAll, criteria.Status)
	assert.Len(t, criteria.Purposes, 3)
}

func TestNewSession_PrimaryFailureIsFatal(t *testing.T) {
	cfg := model.DataConfig{Dir: t.TempDir(), DatasetFile: "absent.csv"}

	_, err := NewSession(NewLoader(nil, quietLogger()), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
