package engine

import (
	"math"
	"sort"

	"github.com/Veraticus/playdash/internal/model"
)

// Chart sizes used by the dashboard.
const (
	HistogramBins    = 30
	TopCategoryLimit = 10
)

// Bin is one rating histogram bucket covering [Lower, Upper).
// The last bin also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Count is the number of records sharing a label.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Slice is a pie slice: a count and its share of the total in percent.
type Slice struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Point is one reviews-vs-rating scatter point.
type Point struct {
	App      string  `json:"app"`
	Category string  `json:"category"`
	Reviews  int64   `json:"reviews"`
	Installs int64   `json:"installs"`
	Rating   float64 `json:"rating"`
}

// Box holds the distribution of ratings within one price category.
type Box struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Charts bundles the six derived views of the visualization panel.
type Charts struct {
	RatingHistogram     []Bin   `json:"ratingHistogram"`
	TopCategories       []Count `json:"topCategories"`
	TypeSplit           []Slice `json:"typeSplit"`
	ReviewsVsRating     []Point `json:"reviewsVsRating"`
	PriceCategoryBoxes  []Box   `json:"priceCategoryBoxes"`
	ContentRatingCounts []Count `json:"contentRatingCounts"`
}

// Visualize derives every chart from the view.
func Visualize(view View) Charts {
	return Charts{
		RatingHistogram:     RatingHistogram(view, HistogramBins),
		TopCategories:       TopCategories(view, TopCategoryLimit),
		TypeSplit:           TypeSplit(view),
		ReviewsVsRating:     ReviewsVsRating(view),
		PriceCategoryBoxes:  PriceCategoryBoxes(view),
		ContentRatingCounts: ContentRatingCounts(view),
	}
}

// RatingHistogram buckets present ratings into bins equal-width buckets spanning the
// observed range. A single distinct rating produces one bucket; no ratings produce none.
func RatingHistogram(view View, bins int) []Bin {
	ratings := presentRatings(view)
	if len(ratings) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := ratings[0], ratings[0]
	for _, r := range ratings[1:] {
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}

	if hi == lo {
		return []Bin{{Lower: lo, Upper: hi, Count: len(ratings)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, r := range ratings {
		idx := int((r - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// TopCategories counts records per category, sorts by count descending and keeps the
// first limit. Ties keep first-encountered order.
func TopCategories(view View, limit int) []Count {
	counts := countBy(view, model.FieldCategory)
	sortCountsDesc(counts)
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// TypeSplit counts records per Type in first-encountered order.
func TypeSplit(view View) []Slice {
	counts := countBy(view, model.FieldType)
	total := view.Len()

	out := make([]Slice, 0, len(counts))
	for _, c := range counts {
		out = append(out, Slice{
			Label: c.Label,
			Count: c.Count,
			Share: RoundTo(float64(c.Count)/float64(total)*100, 1),
		})
	}
	return out
}

// ReviewsVsRating projects one point per record. Records without a rating or an
// install count are skipped.
func ReviewsVsRating(view View) []Point {
	var out []Point
	view.Each(func(r *model.AppRecord) {
		if r.Rating == nil || r.InstallsNum == nil {
			return
		}
		out = append(out, Point{
			App:      r.App,
			Category: r.Category,
			Reviews:  r.Reviews,
			Installs: *r.InstallsNum,
			Rating:   *r.Rating,
		})
	})
	return out
}

// PriceCategoryBoxes groups present ratings by price category in first-encountered
// order and summarizes each group's distribution.
func PriceCategoryBoxes(view View) []Box {
	grouped := make(map[string][]float64)
	var order []string

	view.Each(func(r *model.AppRecord) {
		if r.Rating == nil {
			return
		}
		key := r.PriceCategory
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], *r.Rating)
	})

	out := make([]Box, 0, len(order))
	for _, key := range order {
		vals := grouped[key]
		sort.Float64s(vals)
		out = append(out, Box{
			Label:  key,
			Count:  len(vals),
			Min:    vals[0],
			Q1:     Quantile(vals, 0.25),
			Median: Quantile(vals, 0.5),
			Q3:     Quantile(vals, 0.75),
			Max:    vals[len(vals)-1],
		})
	}
	return out
}

// ContentRatingCounts counts records per content rating, largest first.
func ContentRatingCounts(view View) []Count {
	counts := countBy(view, model.FieldContentRating)
	sortCountsDesc(counts)
	return counts
}

// Quantile returns the q-th quantile of sorted values using linear interpolation.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func presentRatings(view View) []float64 {
	var out []float64
	view.Each(func(r *model.AppRecord) {
		if r.Rating != nil {
			out = append(out, *r.Rating)
		}
	})
	return out
}

// countBy counts records per field value, keeping first-encountered order.
func countBy(view View, f model.Field) []Count {
	index := make(map[string]int)
	var out []Count
	view.Each(func(r *model.AppRecord) {
		key := f.Value(*r)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Count{Label: key})
		}
		out[i].Count++
	})
	return out
}

func sortCountsDesc(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
}
