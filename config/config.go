package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataSource     string
	CleanedCSVPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	ProductsTable    string
	MaxRetries       int

	OutputDir    string
	DPI          int
	FontSize     float64
	MinReviews   float64
	TopProducts  int
	TopBrands    int
	DiscountBins int
	PrintSummary bool
	LogLevel     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataSource:     strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
		CleanedCSVPath: getEnv("CLEANED_CSV_PATH", "./data/cleaned_products.csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "ecommerce_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		ProductsTable:    getEnv("PRODUCTS_TABLE", "products"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 5),

		OutputDir:    getEnv("OUTPUT_DIR", "visualizations"),
		DPI:          getEnvInt("CHART_DPI", 300),
		FontSize:     getEnvFloat("CHART_FONT_SIZE", 12),
		MinReviews:   getEnvFloat("MIN_REVIEWS_TOP_RATED", 10),
		TopProducts:  getEnvInt("TOP_PRODUCTS", 8),
		TopBrands:    getEnvInt("TOP_BRANDS", 10),
		DiscountBins: getEnvInt("DISCOUNT_BINS", 20),
		PrintSummary: getEnvBool("PRINT_SUMMARY", true),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports settings that would make the pipeline fail halfway through.
func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.CleanedCSVPath == "" {
			return fmt.Errorf("config: CLEANED_CSV_PATH is empty")
		}
	case SourcePostgres:
		if c.ProductsTable == "" {
			return fmt.Errorf("config: PRODUCTS_TABLE is empty")
		}
	default:
		return fmt.Errorf("config: unknown DATA_SOURCE %q (want %q or %q)", c.DataSource, SourceCSV, SourcePostgres)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("config: OUTPUT_DIR is empty")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("config: CHART_DPI must be positive, got %d", c.DPI)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("config: CHART_FONT_SIZE must be positive, got %g", c.FontSize)
	}
	if c.TopProducts <= 0 || c.TopBrands <= 0 {
		return fmt.Errorf("config: TOP_PRODUCTS and TOP_BRANDS must be positive")
	}
	if c.DiscountBins <= 0 {
		return fmt.Errorf("config: DISCOUNT_BINS must be positive, got %d", c.DiscountBins)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
