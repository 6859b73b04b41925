package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mam276/loan-default-dashboard/internal/model"
)

func testDataset() *model.Dataset {
	return &model.Dataset{
		Records: []model.Record{
			{LoanAmount: 5000, CreditScore: 600, Purpose: "EDUCATION", Defaulted: 1},
			{LoanAmount: 12000, CreditScore: 650, Purpose: "MEDICAL", Defaulted: 0},
			{LoanAmount: 20000, CreditScore: 750, Purpose: "VENTURE", Defaulted: 0},
		},
	}
}

func TestFilterFlags_Defaults(t *testing.T) {
	f := &filterFlags{status: "all", amountMin: -1, amountMax: -1, creditMin: -1, creditMax: -1}

	criteria, err := f.criteria(testDataset())
	require.NoError(t, err)

	assert.Equal(t, model.StatusAll, criteria.Status)
	assert.Equal(t, model.Range{Min: 5000, Max: 20000}, criteria.Amount)
	assert.Equal(t, model.Range{Min: 600, Max: 750}, criteria.Credit)
	assert.Equal(t, []string{"EDUCATION", "MEDICAL", "VENTURE"}, criteria.Purposes)
}

func TestFilterFlags_Explicit(t *testing.T) {
	f := &filterFlags{
		status:    "defaults",
		amountMin: 6000,
		amountMax: 15000,
		creditMin: -1,
		creditMax: 700,
		purposes:  []string{"MEDICAL"},
	}

	criteria, err := f.criteria(testDataset())
	require.NoError(t, err)

	assert.Equal(t, model.StatusDefaults, criteria.Status)
	assert.Equal(t, model.Range{Min: 6000, Max: 15000}, criteria.Amount)
	assert.Equal(t, model.Range{Min: 600, Max: 700}, criteria.Credit)
	assert.Equal(t, []string{"MEDICAL"}, criteria.Purposes)
}

func TestFilterFlags_ClampsToDataBounds(t *testing.T) {
	f := &filterFlags{
		status:    "all",
		amountMin: 1,
		amountMax: 999999,
		creditMin: 0,
		creditMax: 9000,
	}

	criteria, err := f.criteria(testDataset())
	require.NoError(t, err)

	assert.Equal(t, model.Range{Min: 5000, Max: 20000}, criteria.Amount)
	assert.Equal(t, model.Range{Min: 600, Max: 750}, criteria.Credit)
}

func TestFilterFlags_BadStatus(t *testing.T) {
	f := &filterFlags{status: "sideways", amountMin: -1, amountMax: -1, creditMin: -1, creditMax: -1}

	_, err := f.criteria(testDataset())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown loan status filter")
}

func TestLoadConfig(t *testing.T) {
	cfg := loadConfig("", false)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.True(t, cfg.Cache.Enabled)

	cfg = loadConfig("/srv/loans", true)
	assert.Equal(t, "/srv/loans", cfg.Data.Dir)
	assert.False(t, cfg.Cache.Enabled)
}
