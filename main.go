package main

import (
	"errors"
	"fmt"
	"os"

	"product-visualizer/charts"
	"product-visualizer/config"
	"product-visualizer/services"
	"product-visualizer/storage"
	"product-visualizer/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// run loads the cleaned products and renders every report. Having no data is
// not an error: it is reported and nothing is written.
func run(cfg *config.Config, logger *utils.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("🚀 STARTING VISUALIZATION PIPELINE...")
	logger.Info("Config: source %s | output %s | dpi %d", cfg.DataSource, cfg.OutputDir, cfg.DPI)

	source, err := openSource(cfg, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	df, err := source.Load()
	if errors.Is(err, storage.ErrNoData) {
		logger.Warn("❌ No cleaned data found! Run the data cleaning step first. (%v)", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cleaned data: %w", err)
	}

	ds := services.NewCleaner(logger).Clean(services.NewDataset(df))
	if ds.Empty() {
		logger.Warn("❌ No cleaned data found! Every loaded row was dropped.")
		return nil
	}

	logger.Info("📊 Loaded %d products for visualization", ds.Len())

	if cfg.PrintSummary {
		insights := services.NewInsightService(logger, cfg.MinReviews, cfg.TopProducts)
		report, err := insights.Generate(ds)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		insights.Print(report)
	}

	viz := charts.NewVisualizer(ds, charts.Options{
		OutputDir:    cfg.OutputDir,
		DPI:          cfg.DPI,
		FontSize:     cfg.FontSize,
		MinReviews:   cfg.MinReviews,
		TopProducts:  cfg.TopProducts,
		TopBrands:    cfg.TopBrands,
		DiscountBins: cfg.DiscountBins,
	}, logger)

	files, err := viz.CreateAll()
	if err != nil {
		return err
	}

	logger.Info("📁 %d PNG images written to %s", len(files), cfg.OutputDir)
	return nil
}

func openSource(cfg *config.Config, logger *utils.Logger) (storage.ProductSource, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		src, err := storage.NewPostgresSource(cfg.DSN(), cfg.ProductsTable, cfg.MaxRetries, logger)
		if err != nil {
			logger.Error("Make sure PostgreSQL is running: docker compose up -d")
			return nil, err
		}
		return src, nil
	default:
		return storage.NewCSVSource(cfg.CleanedCSVPath), nil
	}
}
