package predict

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/encoding"
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/model"
)

// Form input keys, shared by ParseRequest, the CLI flags and the TUI form.
const (
	InputCategory      = "category"
	InputType          = "type"
	InputContentRating = "content-rating"
	InputGenre         = "genre"
	InputReviews       = "reviews"
	InputSizeKB        = "size-kb"
	InputInstalls      = "installs"
	InputPrice         = "price"
	InputAge           = "age"
)

// NumericInputs lists the numeric form keys in form order.
var NumericInputs = []string{InputReviews, InputSizeKB, InputInstalls, InputPrice, InputAge}

// CategoricalInputs maps the categorical form keys to the field they select from.
var CategoricalInputs = []struct {
	Key   string
	Field model.Field
}{
	{InputCategory, model.FieldCategory},
	{InputType, model.FieldType},
	{InputContentRating, model.FieldContentRating},
	{InputGenre, model.FieldPrimaryGenre},
}

// Service runs prediction requests against one model and encoding table.
type Service struct {
	model Model
	table *encoding.Table
	cache *vectorCache
}

// Option configures a Service.
type Option func(*Service)

// WithCache memoizes model outputs per feature vector for ttl.
func WithCache(ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = newVectorCache(ttl)
	}
}

// NewService creates a prediction service.
func NewService(m Model, table *encoding.Table, opts ...Option) *Service {
	s := &Service{model: m, table: table}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the output cache, if any.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.close()
	}
}

// ModelName returns the name of the underlying model.
func (s *Service) ModelName() string {
	return s.model.Name()
}

// Table returns the encoding table used for categorical inputs.
func (s *Service) Table() *encoding.Table {
	return s.table
}

// Options returns the allowed values for each categorical input.
func (s *Service) Options() map[model.Field][]string {
	out := make(map[model.Field][]string, len(model.EncodedFields))
	for _, f := range s.table.Fields() {
		out[f] = s.table.Values(f)
	}
	return out
}

// Predict validates and encodes the request, runs the model and rounds the result
// to two decimals. Invalid requests are rejected before the model is called.
func (s *Service) Predict(ctx context.Context, req model.PredictionRequest) (model.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return model.Prediction{}, err
	}
	if err := Validate(req); err != nil {
		return model.Prediction{}, err
	}

	vec, err := s.Vector(req)
	if err != nil {
		return model.Prediction{}, err
	}

	raw, err := s.run(vec)
	if err != nil {
		return model.Prediction{}, err
	}

	p := model.Prediction{
		Request: req,
		Vector:  vec,
		Model:   s.model.Name(),
		Raw:     raw,
		Rating:  engine.RoundTo(raw, 2),
	}

	slog.Debug("Predicted rating",
		"model", p.Model,
		"category", req.Category,
		"rating", p.Rating)

	return p, nil
}

func (s *Service) run(vec model.FeatureVector) (float64, error) {
	if s.cache != nil {
		if raw, ok := s.cache.get(vec); ok {
			slog.Debug("Prediction cache hit", "model", s.model.Name())
			return raw, nil
		}
	}

	raw, err := s.model.Predict(vec)
	if err != nil {
		return 0, fmt.Errorf("model %s failed: %w", s.model.Name(), err)
	}

	if s.cache != nil {
		s.cache.set(vec, raw)
	}
	return raw, nil
}

// Vector encodes the request into the model's feature order.
func (s *Service) Vector(req model.PredictionRequest) (model.FeatureVector, error) {
	var vec model.FeatureVector

	codes := make(map[model.Field]int, len(model.EncodedFields))
	for _, f := range model.EncodedFields {
		code, err := s.table.Encode(f, categorical(req, f))
		if err != nil {
			return vec, err
		}
		codes[f] = code
	}

	vec[model.FeatureCategory] = float64(codes[model.FieldCategory])
	vec[model.FeatureReviews] = float64(req.Reviews)
	vec[model.FeatureSizeKB] = req.SizeKB
	vec[model.FeatureInstallsNum] = float64(req.InstallsNum)
	vec[model.FeaturePriceNum] = req.PriceNum
	vec[model.FeatureAppAgeYears] = req.AppAgeYears
	vec[model.FeatureType] = float64(codes[model.FieldType])
	vec[model.FeatureContentRating] = float64(codes[model.FieldContentRating])
	vec[model.FeaturePrimaryGenre] = float64(codes[model.FieldPrimaryGenre])

	return vec, nil
}

// Validate checks that every numeric input is finite and non-negative.
func Validate(req model.PredictionRequest) error {
	checks := []struct {
		name  string
		value float64
	}{
		{InputReviews, float64(req.Reviews)},
		{InputSizeKB, req.SizeKB},
		{InputInstalls, float64(req.InstallsNum)},
		{InputPrice, req.PriceNum},
		{InputAge, req.AppAgeYears},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return common.InvalidInput(c.name, "must be a finite number")
		}
		if c.value < 0 {
			return common.InvalidInput(c.name, "must not be negative")
		}
	}
	return nil
}

// ParseRequest builds a request from raw form text keyed by the Input* constants.
// Missing numeric entries count as zero.
func ParseRequest(raw map[string]string) (model.PredictionRequest, error) {
	req := model.PredictionRequest{
		Category:      strings.TrimSpace(raw[InputCategory]),
		Type:          strings.TrimSpace(raw[InputType]),
		ContentRating: strings.TrimSpace(raw[InputContentRating]),
		PrimaryGenre:  strings.TrimSpace(raw[InputGenre]),
	}

	var err error
	if req.Reviews, err = parseInt(raw, InputReviews); err != nil {
		return req, err
	}
	if req.SizeKB, err = parseFloat(raw, InputSizeKB); err != nil {
		return req, err
	}
	if req.InstallsNum, err = parseInt(raw, InputInstalls); err != nil {
		return req, err
	}
	if req.PriceNum, err = parseFloat(raw, InputPrice); err != nil {
		return req, err
	}
	if req.AppAgeYears, err = parseFloat(raw, InputAge); err != nil {
		return req, err
	}

	return req, Validate(req)
}

func categorical(req model.PredictionRequest, f model.Field) string {
	switch f {
	case model.FieldCategory:
		return req.Category
	case model.FieldType:
		return req.Type
	case model.FieldContentRating:
		return req.ContentRating
	case model.FieldPrimaryGenre:
		return req.PrimaryGenre
	default:
		return ""
	}
}

func cleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

func parseFloat(raw map[string]string, key string) (float64, error) {
	s := cleanNumber(raw[key])
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, common.InvalidInput(key, fmt.Sprintf("%q is not a number", raw[key]))
	}
	return v, nil
}

func parseInt(raw map[string]string, key string) (int64, error) {
	s := cleanNumber(raw[key])
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	// Accept whole floats such as "1e6" or "1500.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, common.InvalidInput(key, fmt.Sprintf("%q is not a whole number", raw[key]))
	}
	return int64(f), nil
}
