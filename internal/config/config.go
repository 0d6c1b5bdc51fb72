package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Data source kinds.
const (
	SourcePostgres = "postgres"
	SourceS3       = "s3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataSource string

	// Postgres store.
	DatabaseURL      string
	PricesTable      string
	DBConnectTimeout time.Duration

	// S3-compatible object store holding a CSV export of the price table.
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3Bucket    string
	S3Object    string
	S3UseSSL    bool

	// Query events. Publishing is disabled when no brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Case folding per filter field. Whether month matching should fold case
	// is an open product decision; folding is the default.
	CommodityFoldCase bool
	MonthFoldCase     bool
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	connectTimeout, err := parseDuration("DB_CONNECT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	s3UseSSL, err := parseBool("S3_USE_SSL", false)
	if err != nil {
		return nil, err
	}
	commodityFold, err := parseBool("FILTER_COMMODITY_FOLD_CASE", false)
	if err != nil {
		return nil, err
	}
	monthFold, err := parseBool("FILTER_MONTH_FOLD_CASE", true)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		DataSource:       strings.ToLower(sharedcfg.EnvOrDefault("DATA_SOURCE", SourcePostgres)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PricesTable:      sharedcfg.EnvOrDefault("PRICES_TABLE", "public.data"),
		DBConnectTimeout: connectTimeout,

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Region:    sharedcfg.EnvOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Object:    sharedcfg.EnvOrDefault("S3_OBJECT", "prices.csv"),
		S3UseSSL:    s3UseSSL,

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "market-price-queries"),
		KafkaEnabled: len(brokers) > 0,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CommodityFoldCase: commodityFold,
		MonthFoldCase:     monthFold,
	}

	switch cfg.DataSource {
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when DATA_SOURCE is postgres")
		}
		if cfg.PricesTable == "" {
			return nil, errors.New("PRICES_TABLE is required")
		}
	case SourceS3:
		if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" || cfg.S3Bucket == "" {
			return nil, errors.New("S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET are required when DATA_SOURCE is s3")
		}
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: want %s or %s", cfg.DataSource, SourcePostgres, SourceS3)
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
