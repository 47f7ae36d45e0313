// Package dataset loads the cleaned Play Store dataset and holds it in memory.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/playdash/internal/model"
)

// Dataset parsing errors.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidValue  = errors.New("invalid value")
)

// Column headers of the cleaned dataset.
const (
	ColApp           = "App"
	ColCategory      = "Category"
	ColRating        = "Rating"
	ColReviews       = "Reviews"
	ColSizeKB        = "Size_KB"
	ColInstallsNum   = "Installs_Num"
	ColType          = "Type"
	ColPriceNum      = "Price_Num"
	ColContentRating = "Content Rating"
	ColPrimaryGenre  = "Primary_Genre"
	ColAppAgeYears   = "App_Age_years"
	ColInstallBand   = "Install_Band"
	ColPriceCategory = "Price_Category"
)

// RequiredColumns lists every column ReadCSV needs.
var RequiredColumns = []string{
	ColApp, ColCategory, ColRating, ColReviews, ColSizeKB, ColInstallsNum,
	ColType, ColPriceNum, ColContentRating, ColPrimaryGenre, ColAppAgeYears,
	ColInstallBand, ColPriceCategory,
}

// ReadCSV parses the cleaned dataset. Columns are located by header name;
// extra columns are ignored.
func ReadCSV(r io.Reader) ([]model.AppRecord, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var records []model.AppRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, index map[string]int) (model.AppRecord, error) {
	get := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := model.AppRecord{
		App:           get(ColApp),
		Category:      get(ColCategory),
		Type:          get(ColType),
		ContentRating: get(ColContentRating),
		InstallBand:   get(ColInstallBand),
		PriceCategory: get(ColPriceCategory),
		PrimaryGenre:  get(ColPrimaryGenre),
	}

	var err error
	if rec.Rating, err = optionalFloat(ColRating, get(ColRating)); err != nil {
		return rec, err
	}
	if rec.SizeKB, err = optionalFloat(ColSizeKB, get(ColSizeKB)); err != nil {
		return rec, err
	}
	installs, err := optionalFloat(ColInstallsNum, get(ColInstallsNum))
	if err != nil {
		return rec, err
	}
	if installs != nil {
		rec.InstallsNum = model.Int(int64(*installs))
	}

	reviews, err := requiredFloat(ColReviews, get(ColReviews))
	if err != nil {
		return rec, err
	}
	rec.Reviews = int64(reviews)

	if rec.PriceNum, err = requiredFloat(ColPriceNum, get(ColPriceNum)); err != nil {
		return rec, err
	}
	if rec.AppAgeYears, err = requiredFloat(ColAppAgeYears, get(ColAppAgeYears)); err != nil {
		return rec, err
	}

	return rec, nil
}

// isMissing reports whether a cell holds no value. Pandas writes NaN as an empty cell.
func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "na", "null", "none":
		return true
	}
	return false
}

func optionalFloat(col, s string) (*float64, error) {
	if isMissing(s) {
		return nil, nil
	}
	v, err := parseNonNegative(col, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func requiredFloat(col, s string) (float64, error) {
	if isMissing(s) {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidValue, col)
	}
	return parseNonNegative(col, s)
}

func parseNonNegative(col, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, col, s)
	}
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s=%q must be a non-negative number", ErrInvalidValue, col, s)
	}
	return v, nil
}
