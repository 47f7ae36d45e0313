package model

import "fmt"

// Field identifies a categorical column of the dataset.
type Field string

// Categorical fields. The values match the dataset column headers.
const (
	FieldCategory      Field = "Category"
	FieldType          Field = "Type"
	FieldContentRating Field = "Content Rating"
	FieldInstallBand   Field = "Install_Band"
	FieldPriceCategory Field = "Price_Category"
	FieldPrimaryGenre  Field = "Primary_Genre"
)

// FilterFields are the fields the dashboard can filter on, in sidebar order.
var FilterFields = []Field{
	FieldCategory,
	FieldType,
	FieldContentRating,
	FieldInstallBand,
}

// EncodedFields are the categorical model inputs, in the order they are encoded.
var EncodedFields = []Field{
	FieldCategory,
	FieldType,
	FieldContentRating,
	FieldPrimaryGenre,
}

// Value returns the record's value for the field.
func (f Field) Value(a AppRecord) string {
	switch f {
	case FieldCategory:
		return a.Category
	case FieldType:
		return a.Type
	case FieldContentRating:
		return a.ContentRating
	case FieldInstallBand:
		return a.InstallBand
	case FieldPriceCategory:
		return a.PriceCategory
	case FieldPrimaryGenre:
		return a.PrimaryGenre
	default:
		return ""
	}
}

// Label returns a human-readable label for the field.
func (f Field) Label() string {
	switch f {
	case FieldCategory:
		return "Category"
	case FieldType:
		return "Type"
	case FieldContentRating:
		return "Content Rating"
	case FieldInstallBand:
		return "Install Band"
	case FieldPriceCategory:
		return "Price Category"
	case FieldPrimaryGenre:
		return "Primary Genre"
	default:
		return string(f)
	}
}

// ParseField resolves a column name to a Field.
func ParseField(name string) (Field, error) {
	for _, f := range []Field{
		FieldCategory, FieldType, FieldContentRating,
		FieldInstallBand, FieldPriceCategory, FieldPrimaryGenre,
	} {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", name)
}
