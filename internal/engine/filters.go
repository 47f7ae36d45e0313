package engine

import "github.com/Veraticus/playdash/internal/model"

// Apply returns the records of view that satisfy every active constraint of sel.
// Fields set to model.All (or left empty) are unconstrained. Matching is exact
// equality and constraints combine with AND. The input view is never modified.
func Apply(view View, sel model.FilterSelection) View {
	type constraint struct {
		field model.Field
		value string
	}

	var active []constraint
	for _, f := range model.FilterFields {
		if sel.Active(f) {
			active = append(active, constraint{field: f, value: sel.Get(f)})
		}
	}
	if len(active) == 0 {
		return view
	}

	// Single pass: a record passes when it matches all constraints.
	n := view.Len()
	positions := make([]int, 0, n)
	for i := 0; i < n; i++ {
		rec := view.At(i)
		pass := true
		for _, c := range active {
			if c.field.Value(*rec) != c.value {
				pass = false
				break
			}
		}
		if pass {
			positions = append(positions, i)
		}
	}

	return view.subView(positions)
}
