package services

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset is the in-memory product table shared by the summaries and the
// visualizer. Callers treat it as immutable; derived columns produce a copy.
type Dataset struct {
	df dataframe.DataFrame
}

// NewDataset wraps a loaded dataframe.
func NewDataset(df dataframe.DataFrame) *Dataset {
	return &Dataset{df: df}
}

// Frame returns the underlying dataframe.
func (d *Dataset) Frame() dataframe.DataFrame { return d.df }

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil || d.df.Err != nil {
		return 0
	}
	return d.df.Nrow()
}

func (d *Dataset) Empty() bool { return d.Len() == 0 }

// Has reports whether the column exists.
func (d *Dataset) Has(col string) bool {
	if d == nil {
		return false
	}
	for _, n := range d.df.Names() {
		if n == col {
			return true
		}
	}
	return false
}

// Floats returns a copy of a numeric column. Missing cells are NaN; a missing
// column yields all NaN so optional columns read as "no data".
func (d *Dataset) Floats(col string) []float64 {
	if !d.Has(col) {
		out := make([]float64, d.Len())
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	return d.df.Col(col).Float()
}

// Strings returns a copy of a column as text. Missing cells are "".
func (d *Dataset) Strings(col string) []string {
	out := make([]string, d.Len())
	if !d.Has(col) {
		return out
	}
	s := d.df.Col(col)
	for i := range out {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		out[i] = el.String()
	}
	return out
}

// Subset returns the rows at idx, in that order.
func (d *Dataset) Subset(idx []int) *Dataset {
	if len(idx) == 0 {
		return &Dataset{df: dataframe.DataFrame{}}
	}
	return &Dataset{df: d.df.Subset(idx)}
}

// Indices returns the row numbers for which keep returns true.
func (d *Dataset) Indices(keep func(i int) bool) []int {
	var idx []int
	for i := 0; i < d.Len(); i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return idx
}

// WithStrings returns a copy with a text column added or replaced.
func (d *Dataset) WithStrings(col string, values []string) *Dataset {
	return &Dataset{df: d.df.Mutate(series.New(values, series.String, col))}
}

// WithFloats returns a copy with a numeric column added or replaced.
func (d *Dataset) WithFloats(col string, values []float64) *Dataset {
	return &Dataset{df: d.df.Mutate(series.New(values, series.Float, col))}
}

// Err surfaces an error carried by the underlying dataframe.
func (d *Dataset) Err() error {
	if d == nil {
		return nil
	}
	return d.df.Err
}
