// Package charts renders the fixed set of product report images.
package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"product-visualizer/services"
	"product-visualizer/utils"
)

// Report file names, in the order CreateAll writes them.
const (
	FilePriceDistribution  = "price_distribution.png"
	FileRatingVsPrice      = "rating_vs_price.png"
	FileDiscountAnalysis   = "discount_analysis.png"
	FileCategoryComparison = "category_comparison.png"
	FileTopProducts        = "top_products.png"
	FileBrandAnalysis      = "brand_analysis.png"
)

// ErrEmptyDataset is returned when a Visualizer has no rows to plot.
var ErrEmptyDataset = errors.New("charts: empty dataset")

// Options controls output location, resolution and report parameters.
type Options struct {
	OutputDir    string
	DPI          int
	FontSize     float64
	MinReviews   float64
	TopProducts  int
	TopBrands    int
	DiscountBins int
}

// DefaultOptions reproduces the stock report settings.
func DefaultOptions() Options {
	return Options{
		OutputDir:    "visualizations",
		DPI:          300,
		FontSize:     12,
		MinReviews:   10,
		TopProducts:  8,
		TopBrands:    10,
		DiscountBins: 20,
	}
}

// Visualizer renders reports over a single product dataset.
type Visualizer struct {
	ds     *services.Dataset
	opts   Options
	logger *utils.Logger
}

func NewVisualizer(ds *services.Dataset, opts Options, logger *utils.Logger) *Visualizer {
	return &Visualizer{ds: ds, opts: opts, logger: logger}
}

type report struct {
	file   string
	create func() error
}

func (v *Visualizer) reports() []report {
	return []report{
		{FilePriceDistribution, v.CreatePriceDistribution},
		{FileRatingVsPrice, v.CreateRatingAnalysis},
		{FileDiscountAnalysis, v.CreateDiscountAnalysis},
		{FileCategoryComparison, v.CreateCategoryComparison},
		{FileTopProducts, v.CreateTopProducts},
		{FileBrandAnalysis, v.CreateBrandAnalysis},
	}
}

// ReportFiles lists every file CreateAll produces, in order.
func ReportFiles() []string {
	var files []string
	for _, r := range (&Visualizer{}).reports() {
		files = append(files, r.file)
	}
	return files
}

// CreateAll creates the output directory and renders every report in order.
// It stops at the first failure and returns the paths written so far.
func (v *Visualizer) CreateAll() ([]string, error) {
	if v.ds.Empty() {
		return nil, ErrEmptyDataset
	}
	if err := os.MkdirAll(v.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}

	v.logger.Info("📊 Creating and saving visualizations...")

	var written []string
	for _, r := range v.reports() {
		if err := r.create(); err != nil {
			return written, fmt.Errorf("charts: %s: %w", r.file, err)
		}
		written = append(written, filepath.Join(v.opts.OutputDir, r.file))
	}

	v.logger.Info("🎉 All visualizations saved to %s", v.opts.OutputDir)
	return written, nil
}
