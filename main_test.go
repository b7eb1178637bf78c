package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"product-visualizer/charts"
	"product-visualizer/config"
	"product-visualizer/utils"
)

func testConfig(t *testing.T, csvPath string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		DataSource:     config.SourceCSV,
		CleanedCSVPath: csvPath,
		OutputDir:      filepath.Join(dir, "visualizations"),
		DPI:            20,
		FontSize:       12,
		MinReviews:     10,
		TopProducts:    8,
		TopBrands:      10,
		DiscountBins:   20,
	}
}

func writeFixture(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cleaned_products.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func assertNoOutput(t *testing.T, dir string) {
	t.Helper()
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output dir %s should not exist (stat err: %v)", dir, err)
	}
}

func TestRunWithoutDataProducesNothing(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.csv"))

	if err := run(cfg, utils.NewNopLogger()); err != nil {
		t.Fatalf("missing data should exit cleanly, got %v", err)
	}
	assertNoOutput(t, cfg.OutputDir)
}

func TestRunWithHeaderOnlyProducesNothing(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, "product_name,category,price,rating,review_count"))

	if err := run(cfg, utils.NewNopLogger()); err != nil {
		t.Fatalf("empty data should exit cleanly, got %v", err)
	}
	assertNoOutput(t, cfg.OutputDir)
}

func TestRunWritesEveryReport(t *testing.T) {
	cfg := testConfig(t, writeFixture(t,
		"product_name,category_source,price,rating,review_count,discount,value_score",
		"Samsung Galaxy A54,phones,349.99,4.5,120,15,8.2",
		"Apple iPhone 15,phones,999,4.8,310,,6.5",
		"Dell XPS 13,laptops,1199,4.6,45,10,5.1",
		"HP Pavilion 15,laptops,649,4.1,18,20,7.4",
		"Lenovo Tab M10,tablets,199,4.2,64,,9.0",
		"USB-C Cable 2m,accessories,9.5,3.9,3,50,",
	))
	cfg.PrintSummary = true

	if err := run(cfg, utils.NewNopLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range charts.ReportFiles() {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestRunRejectsMissingColumns(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, "product_name,price", "A,10"))

	if err := run(cfg, utils.NewNopLogger()); err == nil {
		t.Fatal("expected an error for a table without required columns")
	}
	assertNoOutput(t, cfg.OutputDir)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "unused.csv")
	cfg.DataSource = "ftp"

	if err := run(cfg, utils.NewNopLogger()); err == nil {
		t.Fatal("expected a config error")
	}
}
