package model

import "fmt"

// PredictionRequest holds the nine feature values a user enters in the prediction form.
type PredictionRequest struct {
	Category      string
	Type          string
	ContentRating string
	PrimaryGenre  string
	Reviews       int64
	SizeKB        float64
	InstallsNum   int64
	PriceNum      float64
	AppAgeYears   float64
}

// Feature slots of a FeatureVector, in the order the model was trained on.
const (
	FeatureCategory = iota
	FeatureReviews
	FeatureSizeKB
	FeatureInstallsNum
	FeaturePriceNum
	FeatureAppAgeYears
	FeatureType
	FeatureContentRating
	FeaturePrimaryGenre
	FeatureCount
)

// FeatureNames are the training column names for each FeatureVector slot.
var FeatureNames = [FeatureCount]string{
	"Category",
	"Reviews",
	"Size_KB",
	"Installs_Num",
	"Price_Num",
	"App_Age_years",
	"Type",
	"Content Rating",
	"Primary_Genre",
}

// FeatureVector is the single-row model input. Categorical slots hold integer codes.
type FeatureVector [FeatureCount]float64

// Values returns the vector as a positional slice.
func (v FeatureVector) Values() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Named returns the vector keyed by training column name.
func (v FeatureVector) Named() map[string]float64 {
	out := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		out[name] = v[i]
	}
	return out
}

// Prediction is the result of one prediction request.
type Prediction struct {
	Request PredictionRequest
	Vector  FeatureVector
	Model   string
	Raw     float64
	Rating  float64 // Raw rounded to two decimals
}

// Label renders the rating for display.
func (p Prediction) Label() string {
	return fmt.Sprintf("%.2f / 5", p.Rating)
}
