// Package model defines the core domain types shared across the application.
package model

// App type values.
const (
	TypeFree = "Free"
	TypePaid = "Paid"
)

// AppRecord is one row of the cleaned Play Store dataset.
type AppRecord struct {
	Rating        *float64 // 0-5, nil when the source row had no rating
	InstallsNum   *int64   // nil when unknown
	SizeKB        *float64 // nil when the size "varies with device"
	App           string
	Category      string
	Type          string
	ContentRating string
	InstallBand   string
	PriceCategory string
	PrimaryGenre  string
	Reviews       int64
	PriceNum      float64
	AppAgeYears   float64
}

// HasRating reports whether the record carries a rating.
func (a AppRecord) HasRating() bool {
	return a.Rating != nil
}

// IsPaid reports whether the app is a paid app.
func (a AppRecord) IsPaid() bool {
	return a.Type == TypePaid
}

// Float returns a pointer to v. Useful for building records with optional values.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int64) *int64 {
	return &v
}
