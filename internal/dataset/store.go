package dataset

import (
	"sort"

	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/model"
)

// Store is the immutable in-memory table of app records.
// It is built once at startup and shared read-only for the process lifetime.
type Store struct {
	records      []model.AppRecord
	vocabularies map[model.Field][]string
}

// NewStore builds a store over records. The slice is owned by the store afterwards
// and must not be modified by the caller.
func NewStore(records []model.AppRecord) *Store {
	s := &Store{
		records:      records,
		vocabularies: make(map[model.Field][]string),
	}
	for _, f := range []model.Field{
		model.FieldCategory, model.FieldType, model.FieldContentRating,
		model.FieldInstallBand, model.FieldPriceCategory, model.FieldPrimaryGenre,
	} {
		s.vocabularies[f] = distinctSorted(records, f)
	}
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a view over every record.
func (s *Store) All() engine.View {
	return engine.NewView(s.records)
}

// Vocabulary returns the sorted distinct non-empty values of a field over the full store.
func (s *Store) Vocabulary(f model.Field) []string {
	vals := s.vocabularies[f]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// FilterOptions returns the selector choices for a field: All followed by the vocabulary.
func (s *Store) FilterOptions(f model.Field) []string {
	vals := s.vocabularies[f]
	out := make([]string, 0, len(vals)+1)
	out = append(out, model.All)
	return append(out, vals...)
}

func distinctSorted(records []model.AppRecord, f model.Field) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := f.Value(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
