package model

// All is the selector value meaning "no constraint".
const All = "All"

// FilterSelection holds the four dashboard filter constraints.
// Each value is either All (or empty) or a single vocabulary value.
type FilterSelection struct {
	Category      string `json:"category,omitempty"`
	Type          string `json:"type,omitempty"`
	ContentRating string `json:"contentRating,omitempty"`
	InstallBand   string `json:"installBand,omitempty"`
}

// Get returns the selection value for a filter field.
func (s FilterSelection) Get(f Field) string {
	switch f {
	case FieldCategory:
		return s.Category
	case FieldType:
		return s.Type
	case FieldContentRating:
		return s.ContentRating
	case FieldInstallBand:
		return s.InstallBand
	default:
		return ""
	}
}

// With returns a copy of the selection with the field set to value.
func (s FilterSelection) With(f Field, value string) FilterSelection {
	switch f {
	case FieldCategory:
		s.Category = value
	case FieldType:
		s.Type = value
	case FieldContentRating:
		s.ContentRating = value
	case FieldInstallBand:
		s.InstallBand = value
	}
	return s
}

// Active reports whether the field carries a constraint.
func (s FilterSelection) Active(f Field) bool {
	v := s.Get(f)
	return v != "" && v != All
}

// ActiveCount returns the number of constrained fields.
func (s FilterSelection) ActiveCount() int {
	n := 0
	for _, f := range FilterFields {
		if s.Active(f) {
			n++
		}
	}
	return n
}
