package models

// Column names of the cleaned product table.
const (
	ColProductName    = "product_name"
	ColCategory       = "category"
	ColCategorySource = "category_source"
	ColPrice          = "price"
	ColRating         = "rating"
	ColReviewCount    = "review_count"
	ColDiscount       = "discount"
	ColValueScore     = "value_score"
	ColBrand          = "brand"
)

// RequiredColumns must be present in every loaded product table.
var RequiredColumns = []string{ColProductName, ColCategory, ColPrice, ColRating, ColReviewCount}

// NumericColumns are parsed as floats; empty cells become NaN.
var NumericColumns = []string{ColPrice, ColRating, ColReviewCount, ColDiscount, ColValueScore}

// GroupSummary holds the per-category or per-brand aggregates used by the
// comparison charts. It is recomputed on every call.
type GroupSummary struct {
	Name         string
	AvgPrice     float64
	AvgRating    float64
	TotalReviews float64
	Count        int
}

// Metric selects one aggregate of a GroupSummary.
type Metric int

const (
	MetricCount Metric = iota
	MetricAvgPrice
	MetricAvgRating
	MetricTotalReviews
)

// Value returns the aggregate selected by m.
func (g GroupSummary) Value(m Metric) float64 {
	switch m {
	case MetricAvgPrice:
		return g.AvgPrice
	case MetricAvgRating:
		return g.AvgRating
	case MetricTotalReviews:
		return g.TotalReviews
	default:
		return float64(g.Count)
	}
}

// RankedProduct is one row of a top-N panel.
type RankedProduct struct {
	Name     string
	Category string
	Price    float64
	Score    float64
}

// InsightReport holds the console summary computed over the cleaned dataset.
type InsightReport struct {
	TotalProducts      int
	AveragePrice       float64
	MinPrice           float64
	MaxPrice           float64
	AverageRating      float64
	TotalReviews       float64
	DiscountedProducts int
	Categories         []GroupSummary
	TopRated           []RankedProduct
}
