package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
)

func newInsightService(out *bytes.Buffer) *InsightService {
	svc := NewInsightService(newTestLogger(), 10, 8)
	if out != nil {
		svc.out = out
	}
	return svc
}

func TestInsightCounts(t *testing.T) {
	r, err := newInsightService(nil).Generate(sampleDataset())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.TotalProducts != 6 {
		t.Errorf("TotalProducts: got %d, want 6", r.TotalProducts)
	}
	if r.DiscountedProducts != 3 {
		t.Errorf("DiscountedProducts: got %d, want 3", r.DiscountedProducts)
	}
	if r.TotalReviews != 597 {
		t.Errorf("TotalReviews: got %.0f, want 597", r.TotalReviews)
	}
}

func TestInsightPrices(t *testing.T) {
	r, _ := newInsightService(nil).Generate(sampleDataset())
	if r.AveragePrice != 635 {
		t.Errorf("AveragePrice: got %.2f, want 635", r.AveragePrice)
	}
	if r.MinPrice != 10 || r.MaxPrice != 1200 {
		t.Errorf("price range: got %.2f-%.2f, want 10-1200", r.MinPrice, r.MaxPrice)
	}
	if r.AverageRating != 4.35 {
		t.Errorf("AverageRating: got %.2f, want 4.35", r.AverageRating)
	}
}

func TestInsightCategoriesAndTopRated(t *testing.T) {
	r, _ := newInsightService(nil).Generate(sampleDataset())
	if len(r.Categories) != 3 || r.Categories[0].Name != "phones" {
		t.Errorf("Categories: got %+v", r.Categories)
	}
	if len(r.TopRated) != 5 {
		t.Fatalf("TopRated len: got %d, want 5", len(r.TopRated))
	}
	if r.TopRated[0].Name != "Apple iPhone 15" {
		t.Errorf("TopRated[0]: got %q", r.TopRated[0].Name)
	}
}

func TestInsightSingleProduct(t *testing.T) {
	ds := sampleDataset().Subset([]int{3})
	r, err := newInsightService(nil).Generate(ds)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.AveragePrice != 600 || r.MinPrice != 600 || r.MaxPrice != 600 {
		t.Errorf("prices: got avg %.2f range %.2f-%.2f, want 600", r.AveragePrice, r.MinPrice, r.MaxPrice)
	}
	if r.AverageRating != 4 || r.TotalReviews != 12 || r.DiscountedProducts != 0 {
		t.Errorf("got rating %.2f reviews %.0f discounted %d", r.AverageRating, r.TotalReviews, r.DiscountedProducts)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	r, err := newInsightService(nil).Generate(NewDataset(dataframe.DataFrame{}))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.TotalProducts != 0 {
		t.Errorf("expected 0 total products for empty input")
	}
}

func TestInsightPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := newInsightService(&buf)
	r, _ := svc.Generate(sampleDataset())
	svc.Print(r)

	out := buf.String()
	for _, want := range []string{"PRODUCT DATASET SUMMARY", "phones", "Apple iPhone 15", "$635.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q", want)
		}
	}
}
