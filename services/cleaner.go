package services

import (
	"math"
	"strings"
	"unicode"

	"product-visualizer/models"
	"product-visualizer/utils"
)

// Cleaner applies the last-mile normalisation the charts rely on. The loader
// already delivers cleaned data; this only guards against stray gaps.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean drops rows without a price or rating, fills missing review counts
// with zero and collapses whitespace in the text columns.
func (c *Cleaner) Clean(ds *Dataset) *Dataset {
	if ds.Empty() {
		return ds
	}

	prices := ds.Floats(models.ColPrice)
	ratings := ds.Floats(models.ColRating)
	keep := ds.Indices(func(i int) bool {
		return !math.IsNaN(prices[i]) && !math.IsNaN(ratings[i])
	})

	dropped := ds.Len() - len(keep)
	if dropped > 0 {
		c.logger.Warn("[cleaner] Dropping %d products without price or rating", dropped)
	}
	out := ds
	if dropped > 0 {
		out = ds.Subset(keep)
	}
	if out.Empty() {
		return out
	}

	reviews := out.Floats(models.ColReviewCount)
	filled := 0
	for i, v := range reviews {
		if math.IsNaN(v) {
			reviews[i] = 0
			filled++
		}
	}
	if filled > 0 {
		c.logger.Debug("[cleaner] Filled %d missing review counts with 0", filled)
	}
	out = out.WithFloats(models.ColReviewCount, reviews)

	for _, col := range []string{models.ColProductName, models.ColCategory} {
		values := out.Strings(col)
		for i, v := range values {
			values[i] = normaliseText(v)
		}
		out = out.WithStrings(col, values)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d products (dropped %d)", ds.Len(), out.Len(), dropped)
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
