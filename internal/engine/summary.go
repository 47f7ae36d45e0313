package engine

import (
	"fmt"

	"github.com/Veraticus/playdash/internal/model"
)

// NoData is displayed in place of a metric that is undefined for the current view.
const NoData = "no data"

// Summary holds the four headline metrics of a view.
type Summary struct {
	MeanRating     *float64 `json:"meanRating"` // nil when no record in the view has a rating
	Count          int      `json:"count"`
	TotalReviews   int64    `json:"totalReviews"`
	PaidPercentage float64  `json:"paidPercentage"` // 0-100, one decimal
}

// Summarize computes the headline metrics. An empty view yields a zero summary
// with no mean rating.
func Summarize(view View) Summary {
	var (
		s         Summary
		ratingSum float64
		rated     int
		paid      int
	)

	view.Each(func(r *model.AppRecord) {
		s.Count++
		s.TotalReviews += r.Reviews
		if r.Rating != nil {
			ratingSum += *r.Rating
			rated++
		}
		if r.IsPaid() {
			paid++
		}
	})

	if rated > 0 {
		mean := ratingSum / float64(rated)
		s.MeanRating = &mean
	}
	if s.Count > 0 {
		s.PaidPercentage = RoundTo(float64(paid)/float64(s.Count)*100, 1)
	}

	return s
}

// HasMeanRating reports whether the mean rating is defined.
func (s Summary) HasMeanRating() bool {
	return s.MeanRating != nil
}

// MeanRatingLabel renders the mean rating with two decimals, or NoData.
func (s Summary) MeanRatingLabel() string {
	if s.MeanRating == nil {
		return NoData
	}
	return fmt.Sprintf("%.2f", *s.MeanRating)
}

// TotalReviewsLabel renders total reviews with thousands separators.
func (s Summary) TotalReviewsLabel() string {
	return FormatInt(s.TotalReviews)
}

// PaidLabel renders the paid share, e.g. "12.5%".
func (s Summary) PaidLabel() string {
	return fmt.Sprintf("%.1f%%", s.PaidPercentage)
}
