package testutil

import (
	"github.com/Veraticus/playdash/internal/model"
)

// AppBuilder provides a fluent interface for constructing test app records.
//
// Example:
//
//	apps := testutil.NewAppBuilder().
//		WithApp("Chess", "GAME").Rated(4.5).Reviews(1200).
//		WithApp("Notes", "TOOLS").Paid(1.99).
//		Build()
type AppBuilder struct {
	apps []model.AppRecord
}

// NewAppBuilder creates an empty builder.
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

// WithApp starts a new free, unrated app in category with neutral defaults.
// The following modifiers apply to it.
func (b *AppBuilder) WithApp(name, category string) *AppBuilder {
	b.apps = append(b.apps, model.AppRecord{
		App:           name,
		Category:      category,
		Type:          model.TypeFree,
		ContentRating: "Everyone",
		InstallBand:   "1K+",
		PriceCategory: "Free",
		PrimaryGenre:  "Tools",
		InstallsNum:   model.Int(1000),
		SizeKB:        model.Float(1024),
		AppAgeYears:   1,
	})
	return b
}

// Rated sets the current app's rating.
func (b *AppBuilder) Rated(r float64) *AppBuilder {
	b.current().Rating = model.Float(r)
	return b
}

// Reviews sets the current app's review count.
func (b *AppBuilder) Reviews(n int64) *AppBuilder {
	b.current().Reviews = n
	return b
}

// Installs sets the current app's install count and band.
func (b *AppBuilder) Installs(n int64, band string) *AppBuilder {
	cur := b.current()
	cur.InstallsNum = model.Int(n)
	cur.InstallBand = band
	return b
}

// Paid marks the current app as paid at price.
func (b *AppBuilder) Paid(price float64) *AppBuilder {
	cur := b.current()
	cur.Type = model.TypePaid
	cur.PriceNum = price
	cur.PriceCategory = "Low"
	return b
}

// Content sets the current app's content rating.
func (b *AppBuilder) Content(rating string) *AppBuilder {
	b.current().ContentRating = rating
	return b
}

// Genre sets the current app's primary genre.
func (b *AppBuilder) Genre(genre string) *AppBuilder {
	b.current().PrimaryGenre = genre
	return b
}

// Build returns a copy of the records built so far.
func (b *AppBuilder) Build() []model.AppRecord {
	out := make([]model.AppRecord, len(b.apps))
	copy(out, b.apps)
	return out
}

func (b *AppBuilder) current() *model.AppRecord {
	if len(b.apps) == 0 {
		panic("testutil: call WithApp before setting fields")
	}
	return &b.apps[len(b.apps)-1]
}

// ScenarioApps is the three-record dataset used for the filter and summary scenarios:
// two apps in category A (one free, one paid) and one free app in category B.
func ScenarioApps() []model.AppRecord {
	return NewAppBuilder().
		WithApp("Alpha", "A").Rated(4.0).Reviews(100).
		WithApp("Alpha Pro", "A").Rated(3.0).Reviews(50).Paid(2.99).
		WithApp("Beta", "B").Rated(5.0).Reviews(200).
		Build()
}

// PlayStoreApps is a small, realistic dataset covering every filter dimension,
// missing ratings and missing install counts.
func PlayStoreApps() []model.AppRecord {
	apps := NewAppBuilder().
		WithApp("Coloring Book", "ART_AND_DESIGN").Rated(4.1).Reviews(159).Installs(10_000, "10K+").Genre("Art & Design").
		WithApp("Sketch Pro", "ART_AND_DESIGN").Rated(4.7).Reviews(87_510).Installs(5_000_000, "1M+").Genre("Art & Design").Paid(4.99).
		WithApp("Chess Master", "GAME").Rated(4.5).Reviews(120_000).Installs(10_000_000, "10M+").Genre("Board").
		WithApp("Zombie Run", "GAME").Rated(3.9).Reviews(45_000).Installs(1_000_000, "1M+").Genre("Action").Content("Teen").
		WithApp("Puzzle Box", "GAME").Reviews(12).Installs(100, "100+").Genre("Puzzle").
		WithApp("Flashlight", "TOOLS").Rated(4.3).Reviews(900_000).Installs(100_000_000, "100M+").Genre("Tools").
		WithApp("Unit Converter", "TOOLS").Rated(2.8).Reviews(30).Installs(1_000, "1K+").Genre("Tools").Paid(0.99).
		WithApp("Dating Now", "DATING").Rated(3.4).Reviews(5_000).Installs(500_000, "100K+").Genre("Dating").Content("Mature 17+").
		Build()

	// Size varies with device.
	apps[5].SizeKB = nil
	// Install count unknown.
	apps[4].InstallsNum = nil
	return apps
}
