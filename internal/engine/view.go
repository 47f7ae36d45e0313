// Package engine filters the dataset and derives the summary metrics and chart data
// the dashboard renders. Every function here is pure: views are index lists into the
// shared record slice and nothing mutates the records.
package engine

import "github.com/Veraticus/playdash/internal/model"

// View is a read-only window over a record slice.
// A nil index list means every record, in order.
type View struct {
	records []model.AppRecord
	indices []int
}

// NewView creates a view over every record.
func NewView(records []model.AppRecord) View {
	return View{records: records}
}

// Len returns the number of records in the view.
func (v View) Len() int {
	if v.indices == nil {
		return len(v.records)
	}
	return len(v.indices)
}

// Empty reports whether the view holds no records.
func (v View) Empty() bool {
	return v.Len() == 0
}

// At returns the i-th record of the view.
func (v View) At(i int) *model.AppRecord {
	return &v.records[v.index(i)]
}

// Each calls fn for every record in view order.
func (v View) Each(fn func(r *model.AppRecord)) {
	n := v.Len()
	for i := 0; i < n; i++ {
		fn(v.At(i))
	}
}

// Records copies the view's records into a new slice.
func (v View) Records() []model.AppRecord {
	out := make([]model.AppRecord, 0, v.Len())
	v.Each(func(r *model.AppRecord) {
		out = append(out, *r)
	})
	return out
}

func (v View) index(i int) int {
	if v.indices == nil {
		return i
	}
	return v.indices[i]
}

// subView keeps the records at the given view positions.
func (v View) subView(positions []int) View {
	abs := make([]int, len(positions))
	for i, p := range positions {
		abs[i] = v.index(p)
	}
	return View{records: v.records, indices: abs}
}
