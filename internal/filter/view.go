package filter

import "github.com/mam276/loan-default-dashboard/internal/model"

// View is a read-only filtered subset of a Dataset: an index list into the
// source records, in source order. The zero View is empty.
type View struct {
	ds      *model.Dataset
	indices []int
}

// All returns a view spanning the entire dataset.
func All(ds *model.Dataset) View {
	indices := make([]int, ds.Len())
	for i := range indices {
		indices[i] = i
	}
	return View{ds: ds, indices: indices}
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.indices) }

// At returns the i-th record of the view.
func (v View) At(i int) model.Record { return v.ds.At(v.indices[i]) }

// Records materializes the view into a fresh slice. The underlying dataset
// is never mutated.
func (v View) Records() []model.Record {
	out := make([]model.Record, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.ds.At(idx)
	}
	return out
}
