package engine

import "fmt"

// Chart names accepted by ChartByName.
const (
	ChartRatingHistogram     = "rating-histogram"
	ChartTopCategories       = "top-categories"
	ChartTypeSplit           = "type-split"
	ChartReviewsVsRating     = "reviews-vs-rating"
	ChartPriceCategoryBoxes  = "price-category"
	ChartContentRatingCounts = "content-rating"
)

// ChartNames lists every chart in dashboard order.
var ChartNames = []string{
	ChartRatingHistogram,
	ChartTopCategories,
	ChartTypeSplit,
	ChartReviewsVsRating,
	ChartPriceCategoryBoxes,
	ChartContentRatingCounts,
}

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ChartConfig is a render-ready, tabular form of one chart.
type ChartConfig struct {
	Name      string        `json:"name"`
	ChartType string        `json:"chartType"`
	Title     string        `json:"title"`
	XAxis     string        `json:"xAxis,omitempty"`
	YAxis     string        `json:"yAxis,omitempty"`
	Series    []ChartSeries `json:"series"`
}

// ChartSeries is a named series of points.
type ChartSeries struct {
	Name  string       `json:"name"`
	Color string       `json:"color,omitempty"`
	Data  []ChartPoint `json:"data"`
}

// ChartPoint is one labelled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartByName builds the ChartConfig for one of ChartNames.
func (c Charts) ChartByName(name string) (*ChartConfig, error) {
	switch name {
	case ChartRatingHistogram:
		points := make([]ChartPoint, 0, len(c.RatingHistogram))
		for _, b := range c.RatingHistogram {
			points = append(points, ChartPoint{
				Label: fmt.Sprintf("%.2f-%.2f", b.Lower, b.Upper),
				Value: float64(b.Count),
			})
		}
		return single(name, "histogram", "Distribution of Ratings", "Rating", "Count", points), nil

	case ChartTopCategories:
		return single(name, "bar", "Top 10 Categories", "Category", "Count", countPoints(c.TopCategories)), nil

	case ChartTypeSplit:
		points := make([]ChartPoint, 0, len(c.TypeSplit))
		for _, s := range c.TypeSplit {
			points = append(points, ChartPoint{Label: s.Label, Value: float64(s.Count)})
		}
		return single(name, "pie", "Free vs Paid Apps", "Type", "Count", points), nil

	case ChartReviewsVsRating:
		return reviewsVsRatingConfig(c.ReviewsVsRating), nil

	case ChartPriceCategoryBoxes:
		return boxConfig(c.PriceCategoryBoxes), nil

	case ChartContentRatingCounts:
		return single(name, "bar", "Content Rating Distribution", "Content Rating", "Count",
			countPoints(c.ContentRatingCounts)), nil

	default:
		return nil, fmt.Errorf("unknown chart %q", name)
	}
}

// All returns every chart as a ChartConfig, in dashboard order.
func (c Charts) All() []ChartConfig {
	out := make([]ChartConfig, 0, len(ChartNames))
	for _, name := range ChartNames {
		cfg, err := c.ChartByName(name)
		if err != nil {
			continue
		}
		out = append(out, *cfg)
	}
	return out
}

func single(name, chartType, title, x, y string, points []ChartPoint) *ChartConfig {
	return &ChartConfig{
		Name:      name,
		ChartType: chartType,
		Title:     title,
		XAxis:     x,
		YAxis:     y,
		Series: []ChartSeries{{
			Name:  y,
			Color: defaultColors[0],
			Data:  points,
		}},
	}
}

func countPoints(counts []Count) []ChartPoint {
	points := make([]ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, ChartPoint{Label: c.Label, Value: float64(c.Count)})
	}
	return points
}

// reviewsVsRatingConfig emits one series per category so points keep their color group.
func reviewsVsRatingConfig(points []Point) *ChartConfig {
	index := make(map[string]int)
	var series []ChartSeries
	for _, p := range points {
		i, ok := index[p.Category]
		if !ok {
			i = len(series)
			index[p.Category] = i
			series = append(series, ChartSeries{
				Name:  p.Category,
				Color: defaultColors[i%len(defaultColors)],
			})
		}
		series[i].Data = append(series[i].Data, ChartPoint{
			Label: fmt.Sprintf("%d", p.Reviews),
			Value: p.Rating,
		})
	}

	return &ChartConfig{
		Name:      ChartReviewsVsRating,
		ChartType: "scatter",
		Title:     "Reviews vs Rating by Category",
		XAxis:     "Reviews",
		YAxis:     "Rating",
		Series:    series,
	}
}

// boxConfig emits one series per statistic so the tabular form has a column for each.
func boxConfig(boxes []Box) *ChartConfig {
	stats := []struct {
		name string
		get  func(Box) float64
	}{
		{"min", func(b Box) float64 { return b.Min }},
		{"q1", func(b Box) float64 { return b.Q1 }},
		{"median", func(b Box) float64 { return b.Median }},
		{"q3", func(b Box) float64 { return b.Q3 }},
		{"max", func(b Box) float64 { return b.Max }},
	}

	series := make([]ChartSeries, 0, len(stats))
	for i, st := range stats {
		s := ChartSeries{Name: st.name, Color: defaultColors[i%len(defaultColors)]}
		for _, b := range boxes {
			s.Data = append(s.Data, ChartPoint{Label: b.Label, Value: RoundTo(st.get(b), 2)})
		}
		series = append(series, s)
	}

	return &ChartConfig{
		Name:      ChartPriceCategoryBoxes,
		ChartType: "box",
		Title:     "Price Category vs Rating",
		XAxis:     "Price Category",
		YAxis:     "Rating",
		Series:    series,
	}
}
