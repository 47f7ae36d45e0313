// Package encoding maps the model's categorical inputs to the integer codes it was
// trained on.
package encoding

import (
	"fmt"
	"sort"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/model"
)

// Table sources reported by Source.
const (
	SourceDerived  = "derived"
	SourceFile     = "file"
	SourceArtifact = "artifact"
)

// VocabularySource supplies the distinct values of a field. *dataset.Store satisfies it.
type VocabularySource interface {
	Vocabulary(f model.Field) []string
}

// Table is an immutable value-to-code mapping for each encoded field.
type Table struct {
	codes  map[model.Field]map[string]int
	values map[model.Field][]string // ordered by code
	source string
}

// Build derives a table from the full vocabulary: values are sorted byte-wise and
// numbered from zero, the way a label encoder fitted on the whole column numbers them.
func Build(src VocabularySource) *Table {
	t := &Table{
		codes:  make(map[model.Field]map[string]int, len(model.EncodedFields)),
		values: make(map[model.Field][]string, len(model.EncodedFields)),
		source: SourceDerived,
	}

	for _, f := range model.EncodedFields {
		vals := append([]string(nil), src.Vocabulary(f)...)
		sort.Strings(vals)

		codes := make(map[string]int, len(vals))
		ordered := make([]string, 0, len(vals))
		for _, v := range vals {
			if _, dup := codes[v]; dup {
				continue
			}
			codes[v] = len(ordered)
			ordered = append(ordered, v)
		}
		t.codes[f] = codes
		t.values[f] = ordered
	}

	return t
}

// FromMap builds a table from explicit mappings keyed by column name. Every encoded
// field must be present; codes must be non-negative and unique within a field.
func FromMap(source string, fields map[string]map[string]int) (*Table, error) {
	t := &Table{
		codes:  make(map[model.Field]map[string]int, len(model.EncodedFields)),
		values: make(map[model.Field][]string, len(model.EncodedFields)),
		source: source,
	}

	for name := range fields {
		f, err := model.ParseField(name)
		if err != nil || !isEncoded(f) {
			return nil, fmt.Errorf("%w: %q is not an encoded field", common.ErrInvalidConfig, name)
		}
	}

	for _, f := range model.EncodedFields {
		mapping, ok := fields[string(f)]
		if !ok || len(mapping) == 0 {
			return nil, fmt.Errorf("%w: no codes for %s", common.ErrInvalidConfig, f)
		}

		byCode := make(map[int]string, len(mapping))
		codes := make(map[string]int, len(mapping))
		for value, code := range mapping {
			if code < 0 {
				return nil, fmt.Errorf("%w: %s %q has negative code %d", common.ErrInvalidConfig, f, value, code)
			}
			if other, dup := byCode[code]; dup {
				return nil, fmt.Errorf("%w: %s code %d used by both %q and %q",
					common.ErrInvalidConfig, f, code, other, value)
			}
			byCode[code] = value
			codes[value] = code
		}

		ordered := make([]string, 0, len(codes))
		for v := range codes {
			ordered = append(ordered, v)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return codes[ordered[i]] < codes[ordered[j]]
		})

		t.codes[f] = codes
		t.values[f] = ordered
	}

	return t, nil
}

// Encode returns the code for value. Values outside the vocabulary fail with
// common.ErrEncoding.
func (t *Table) Encode(f model.Field, value string) (int, error) {
	codes, ok := t.codes[f]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not an encoded field", common.ErrEncoding, f)
	}
	code, ok := codes[value]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q was not seen in the training data", common.ErrEncoding, f.Label(), value)
	}
	return code, nil
}

// Decode returns the value carrying code.
func (t *Table) Decode(f model.Field, code int) (string, error) {
	for v, c := range t.codes[f] {
		if c == code {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s has no value with code %d", common.ErrNotFound, f, code)
}

// Values returns the field's values ordered by code.
func (t *Table) Values(f model.Field) []string {
	vals := t.values[f]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Len returns the vocabulary size of a field.
func (t *Table) Len(f model.Field) int {
	return len(t.values[f])
}

// Fields returns the encoded fields in feature order.
func (t *Table) Fields() []model.Field {
	out := make([]model.Field, len(model.EncodedFields))
	copy(out, model.EncodedFields)
	return out
}

// Source reports where the table came from: SourceDerived, SourceFile or SourceArtifact.
func (t *Table) Source() string {
	return t.source
}

func isEncoded(f model.Field) bool {
	for _, e := range model.EncodedFields {
		if e == f {
			return true
		}
	}
	return false
}
