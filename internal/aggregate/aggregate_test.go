package aggregate

import (
	"math"
	"testing"

	"github.com/mam276/loan-default-dashboard/internal/filter"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

func testDataset() *model.Dataset {
	return &model.Dataset{
		Records: []model.Record{
			{LoanAmount: 5000, CreditScore: 600, Purpose: "EDUCATION", InterestRate: 12.0, Income: 30000, Defaulted: 1},
			{LoanAmount: 12000, CreditScore: 650, Purpose: "MEDICAL", InterestRate: 10.0, Income: 40000, Defaulted: 0},
			{LoanAmount: 8000, CreditScore: 700, Purpose: "EDUCATION", InterestRate: 9.0, Income: 50000, Defaulted: 1},
			{LoanAmount: 20000, CreditScore: 750, Purpose: "VENTURE", InterestRate: 8.0, Income: 60000, Defaulted: 0},
		},
	}
}

func emptyView() filter.View {
	return filter.All(&model.Dataset{})
}

func TestDefaultRate(t *testing.T) {
	view := filter.All(testDataset())
	if got := DefaultRate(view); got != 0.5 {
		t.Errorf("expected rate 0.5, got %v", got)
	}
}

func TestDefaultRate_EmptyViewIsNaN(t *testing.T) {
	if got := DefaultRate(emptyView()); !math.IsNaN(got) {
		t.Errorf("expected NaN for empty view, got %v", got)
	}
}

func TestDefaultRate_CreditScenario(t *testing.T) {
	// Five loans with credit scores 600..800; filtering to scores >= 650
	// keeps four of them, one of which defaulted.
	ds := &model.Dataset{
		Records: []model.Record{
			{CreditScore: 600, LoanAmount: 1000, Purpose: "PERSONAL", Defaulted: 1},
			{CreditScore: 650, LoanAmount: 1000, Purpose: "PERSONAL", Defaulted: 0},
			{CreditScore: 700, LoanAmount: 1000, Purpose: "PERSONAL", Defaulted: 1},
			{CreditScore: 750, LoanAmount: 1000, Purpose: "PERSONAL", Defaulted: 0},
			{CreditScore: 800, LoanAmount: 1000, Purpose: "PERSONAL", Defaulted: 0},
		},
	}
	criteria := model.OpenCriteria(ds)
	criteria.Credit = model.Range{Min: 650, Max: 800}

	view := filter.Apply(ds, criteria)
	if n := Count(view); n != 4 {
		t.Fatalf("expected 4 records, got %d", n)
	}
	if rate := DefaultRate(view); rate != 0.25 {
		t.Errorf("expected rate 0.25, got %v", rate)
	}
}

func TestMean(t *testing.T) {
	view := filter.All(testDataset())

	tests := []struct {
		col      string
		expected float64
	}{
		{model.ColInterestRate, 9.75},
		{model.ColIncome, 45000},
		{model.ColLoanAmount, 11250},
	}
	for _, tt := range tests {
		if got := Mean(view, tt.col); got != tt.expected {
			t.Errorf("Mean(%s) = %v, expected %v", tt.col, got, tt.expected)
		}
	}

	if got := Mean(view, "no_such_column"); !math.IsNaN(got) {
		t.Errorf("expected NaN for unknown column, got %v", got)
	}
	if got := Mean(emptyView(), model.ColIncome); !math.IsNaN(got) {
		t.Errorf("expected NaN for empty view, got %v", got)
	}
}

func TestRateByPurpose(t *testing.T) {
	view := filter.All(testDataset())
	rates := RateByPurpose(view)

	expected := []PurposeRate{
		{Purpose: "EDUCATION", Rate: 1.0, Count: 2},
		{Purpose: "MEDICAL", Rate: 0.0, Count: 1},
		{Purpose: "VENTURE", Rate: 0.0, Count: 1},
	}
	if len(rates) != len(expected) {
		t.Fatalf("expected %d groups, got %d", len(expected), len(rates))
	}
	for i, want := range expected {
		if rates[i] != want {
			t.Errorf("group %d: got %+v, expected %+v", i, rates[i], want)
		}
	}
}

func TestRateByPurpose_OnlyPresentPurposes(t *testing.T) {
	ds := testDataset()
	criteria := model.OpenCriteria(ds)
	criteria.Purposes = []string{"MEDICAL"}

	rates := RateByPurpose(filter.Apply(ds, criteria))
	if len(rates) != 1 {
		t.Fatalf("expected 1 group, got %d", len(rates))
	}
	if rates[0].Purpose != "MEDICAL" {
		t.Errorf("expected MEDICAL, got %s", rates[0].Purpose)
	}
}

func TestGroupedDefaultRate_ByEducation(t *testing.T) {
	ds := &model.Dataset{
		Records: []model.Record{
			{Education: "Bachelor", Defaulted: 1},
			{Education: "Master", Defaulted: 0},
			{Education: "Bachelor", Defaulted: 0},
		},
	}
	groups := GroupedDefaultRate(filter.All(ds), model.ColEducation)

	expected := []GroupRate{
		{Key: "Bachelor", Rate: 0.5, Count: 2},
		{Key: "Master", Rate: 0.0, Count: 1},
	}
	if len(groups) != len(expected) {
		t.Fatalf("expected %d groups, got %d", len(expected), len(groups))
	}
	for i, want := range expected {
		if groups[i] != want {
			t.Errorf("group %d: got %+v, expected %+v", i, groups[i], want)
		}
	}
}

func TestGroupedDefaultRate_NonCategoricalColumn(t *testing.T) {
	if groups := GroupedDefaultRate(filter.All(testDataset()), model.ColIncome); groups != nil {
		t.Errorf("expected nil for a numeric column, got %v", groups)
	}
}

func TestRateByPurpose_EmptyView(t *testing.T) {
	if rates := RateByPurpose(emptyView()); len(rates) != 0 {
		t.Errorf("expected no groups for empty view, got %d", len(rates))
	}
}

func TestComputeKPIs(t *testing.T) {
	kpis := ComputeKPIs(filter.All(testDataset()))

	if kpis.TotalLoans != 4 {
		t.Errorf("TotalLoans = %d, expected 4", kpis.TotalLoans)
	}
	if kpis.DefaultRate != 0.5 {
		t.Errorf("DefaultRate = %v, expected 0.5", kpis.DefaultRate)
	}
	if kpis.AvgInterestRate != 9.75 {
		t.Errorf("AvgInterestRate = %v, expected 9.75", kpis.AvgInterestRate)
	}
	if kpis.AvgIncome != 45000 {
		t.Errorf("AvgIncome = %v, expected 45000", kpis.AvgIncome)
	}
}

func TestComputeKPIs_EmptyView(t *testing.T) {
	kpis := ComputeKPIs(emptyView())
	if kpis.TotalLoans != 0 {
		t.Errorf("TotalLoans = %d, expected 0", kpis.TotalLoans)
	}
	for name, v := range map[string]float64{
		"DefaultRate":     kpis.DefaultRate,
		"AvgInterestRate": kpis.AvgInterestRate,
		"AvgIncome":       kpis.AvgIncome,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, expected NaN", name, v)
		}
	}
}

func TestDescribe(t *testing.T) {
	ds := &model.Dataset{
		Records: []model.Record{
			{CreditScore: 600}, {CreditScore: 650}, {CreditScore: 700}, {CreditScore: 750}, {CreditScore: 800},
		},
	}
	stats, ok := Describe(filter.All(ds), model.ColCreditScore)
	if !ok {
		t.Fatal("expected known column")
	}
	if stats.Count != 5 {
		t.Errorf("Count = %d, expected 5", stats.Count)
	}
	if stats.Mean != 700 {
		t.Errorf("Mean = %v, expected 700", stats.Mean)
	}
	if stats.Min != 600 || stats.Max != 800 {
		t.Errorf("Min/Max = %v/%v, expected 600/800", stats.Min, stats.Max)
	}
	if stats.Median != 700 {
		t.Errorf("Median = %v, expected 700", stats.Median)
	}
	if stats.Q25 != 650 || stats.Q75 != 750 {
		t.Errorf("Q25/Q75 = %v/%v, expected 650/750", stats.Q25, stats.Q75)
	}
	// sample std of 600..800 step 50 is sqrt(12500/... ) ~ 79.06
	if math.Abs(stats.Std-79.0569) > 0.001 {
		t.Errorf("Std = %v, expected ~79.0569", stats.Std)
	}
}

func TestDescribe_Interpolation(t *testing.T) {
	ds := &model.Dataset{
		Records: []model.Record{
			{Income: 10}, {Income: 20}, {Income: 30}, {Income: 40},
		},
	}
	stats, ok := Describe(filter.All(ds), model.ColIncome)
	if !ok {
		t.Fatal("expected known column")
	}
	if stats.Median != 25 {
		t.Errorf("Median = %v, expected 25", stats.Median)
	}
	if stats.Q25 != 17.5 {
		t.Errorf("Q25 = %v, expected 17.5", stats.Q25)
	}
	if stats.Q75 != 32.5 {
		t.Errorf("Q75 = %v, expected 32.5", stats.Q75)
	}
}

func TestDescribe_EmptyAndUnknown(t *testing.T) {
	stats, ok := Describe(emptyView(), model.ColIncome)
	if !ok {
		t.Fatal("known column should be ok even on an empty view")
	}
	if stats.Count != 0 || !math.IsNaN(stats.Mean) {
		t.Errorf("expected zero count and NaN mean, got %+v", stats)
	}

	if _, ok := Describe(emptyView(), "no_such_column"); ok {
		t.Error("unknown column should not be ok")
	}
	if _, ok := Describe(filter.All(testDataset()), model.ColEducation); ok {
		t.Error("string column should not be ok")
	}
}

func TestDescribe_SingleValue(t *testing.T) {
	ds := &model.Dataset{Records: []model.Record{{Income: 42}}}
	stats, ok := Describe(filter.All(ds), model.ColIncome)
	if !ok {
		t.Fatal("expected known column")
	}
	if stats.Mean != 42 || stats.Min != 42 || stats.Max != 42 || stats.Median != 42 {
		t.Errorf("single-value stats wrong: %+v", stats)
	}
	if !math.IsNaN(stats.Std) {
		t.Errorf("Std of one sample should be NaN, got %v", stats.Std)
	}
}
