package services

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"product-visualizer/models"
)

func TestDatasetAccessors(t *testing.T) {
	ds := sampleDataset()

	if ds.Len() != 6 || ds.Empty() {
		t.Fatalf("Len: got %d, want 6", ds.Len())
	}
	if !ds.Has(models.ColPrice) || ds.Has(models.ColValueScore) {
		t.Errorf("Has: price should exist, value_score should not")
	}
	if got := ds.Strings(models.ColCategory)[2]; got != "laptops" {
		t.Errorf("Strings: got %q, want laptops", got)
	}
	if got := ds.Floats(models.ColPrice)[5]; got != 10 {
		t.Errorf("Floats: got %v, want 10", got)
	}
}

func TestDatasetMissingColumnReadsAsNaN(t *testing.T) {
	ds := sampleDataset()

	scores := ds.Floats(models.ColValueScore)
	if len(scores) != ds.Len() {
		t.Fatalf("len: got %d, want %d", len(scores), ds.Len())
	}
	for _, v := range scores {
		if !math.IsNaN(v) {
			t.Fatalf("missing column should read as NaN, got %v", scores)
		}
	}
	if names := ds.Strings("nope"); len(names) != ds.Len() || names[0] != "" {
		t.Errorf("missing text column should read as blanks, got %q", names)
	}
}

func TestDatasetSubsetAndIndices(t *testing.T) {
	ds := sampleDataset()
	prices := ds.Floats(models.ColPrice)

	idx := ds.Indices(func(i int) bool { return prices[i] >= 800 })
	if len(idx) != 3 {
		t.Fatalf("Indices: got %v", idx)
	}
	sub := ds.Subset(idx)
	if sub.Len() != 3 {
		t.Fatalf("Subset len: got %d, want 3", sub.Len())
	}
	if got := sub.Strings(models.ColProductName)[2]; got != "Dell XPS 13" {
		t.Errorf("Subset row 2: got %q", got)
	}

	if empty := ds.Subset(nil); !empty.Empty() {
		t.Errorf("Subset(nil) should be empty")
	}
}

func TestDatasetWithColumnsCopies(t *testing.T) {
	ds := sampleDataset()
	tagged := ds.WithStrings("tag", []string{"a", "b", "c", "d", "e", "f"})

	if ds.Has("tag") {
		t.Error("WithStrings must not modify the receiver")
	}
	if got := tagged.Strings("tag")[4]; got != "e" {
		t.Errorf("tag[4]: got %q, want e", got)
	}
}

func TestEmptyDataset(t *testing.T) {
	ds := NewDataset(dataframe.DataFrame{})
	if !ds.Empty() || ds.Len() != 0 {
		t.Errorf("zero dataframe should be empty")
	}
	var nilDS *Dataset
	if !nilDS.Empty() {
		t.Errorf("nil dataset should be empty")
	}
}
