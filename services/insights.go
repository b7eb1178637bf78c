package services

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"product-visualizer/models"
	"product-visualizer/utils"
)

type InsightService struct {
	logger     *utils.Logger
	minReviews float64
	topN       int
	out        io.Writer
}

func NewInsightService(logger *utils.Logger, minReviews float64, topN int) *InsightService {
	return &InsightService{logger: logger, minReviews: minReviews, topN: topN, out: os.Stdout}
}

func (s *InsightService) Generate(ds *Dataset) (*models.InsightReport, error) {
	report := &models.InsightReport{}
	if ds.Empty() {
		return report, nil
	}

	report.TotalProducts = ds.Len()

	prices := ds.Floats(models.ColPrice)
	report.AveragePrice = round2(stat.Mean(prices, nil))
	report.MinPrice = round2(floats.Min(prices))
	report.MaxPrice = round2(floats.Max(prices))
	report.AverageRating = round2(stat.Mean(ds.Floats(models.ColRating), nil))

	reviews := ds.Floats(models.ColReviewCount)
	report.TotalReviews = floats.Sum(reviews)
	for _, d := range ds.Floats(models.ColDiscount) {
		if !math.IsNaN(d) {
			report.DiscountedProducts++
		}
	}

	categories, err := CategorySummaries(ds)
	if err != nil {
		return nil, err
	}
	report.Categories = categories

	report.TopRated = TopProducts(ds, models.ColRating, s.topN, func(i int) bool {
		return reviews[i] >= s.minReviews
	})

	s.logger.Debug("[insights] %d products across %d categories", report.TotalProducts, len(report.Categories))
	return report, nil
}

func (s *InsightService) Print(r *models.InsightReport) {
	w := s.out
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 PRODUCT DATASET SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Products            : \033[1m%d\033[0m\n", r.TotalProducts)
	fmt.Fprintf(w, "  Total reviews       : \033[1m%.0f\033[0m\n", r.TotalReviews)
	fmt.Fprintf(w, "  Discounted products : \033[1m%d\033[0m\n", r.DiscountedProducts)
	fmt.Fprintf(w, "  Average rating      : \033[1m%.2f\033[0m\n", r.AverageRating)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.TotalProducts > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Fprintf(w, "  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Fprintf(w, "  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Categories\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Categories) == 0 {
		fmt.Fprintf(w, "  No category data\n")
	}
	for _, c := range r.Categories {
		fmt.Fprintf(w, "  %-22s %4d products  avg $%-9.2f %.2f ★  %8.0f reviews\n",
			truncate(c.Name, 22), c.Count, c.AvgPrice, c.AvgRating, c.TotalReviews)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top Rated Products (min %.0f reviews)\033[0m\n", s.minReviews)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Fprintf(w, "  No products with enough reviews\n")
	}
	for i, p := range r.TopRated {
		fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%.2f ★\033[0m $%.0f\n",
			i+1, truncate(p.Name, 38), p.Score, p.Price)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
