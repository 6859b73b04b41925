// Package filter implements the predicate engine: a conjunctive set of
// outcome, range, and purpose predicates applied to the loaded dataset.
package filter

import (
	"strings"

	"github.com/mam276/loan-default-dashboard/internal/model"
)

// Apply returns the view of records satisfying every active predicate:
// outcome status AND loan amount within [min,max] AND credit score within
// [min,max] AND purpose membership. Predicates are evaluated in a single
// pass; the view preserves the dataset's row order and copies no data.
//
// Degenerate criteria never error: an empty purpose set matches nothing,
// and so does an inverted range.
func Apply(ds *model.Dataset, c model.Criteria) View {
	if len(c.Purposes) == 0 || c.Amount.Inverted() || c.Credit.Inverted() {
		return View{ds: ds}
	}

	purposes := toLowerSet(c.Purposes)

	indices := make([]int, 0, ds.Len())
	for i, r := range ds.Records {
		if !c.Status.Matches(r.Defaulted) {
			continue
		}
		if !c.Amount.Contains(r.LoanAmount) {
			continue
		}
		if !c.Credit.Contains(float64(r.CreditScore)) {
			continue
		}
		if !purposes[strings.ToLower(r.Purpose)] {
			continue
		}
		indices = append(indices, i)
	}

	return View{ds: ds, indices: indices}
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
