package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"production/internal/core/domain/model/metrics"
	"production/internal/jobs"

	"github.com/robfig/cron/v3"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	StorageDriver       string
	ReferenceRate       float64
	LiveMetricsSchedule string
	LogLevel            string
}

// LoadConfig reads the configuration through getenv, applying defaults for
// every optional key.
func LoadConfig(getenv func(string) string) (Config, error) {
	configs := Config{
		HTTPPort:            valueOr(getenv("HTTP_PORT"), "8080"),
		DBHost:              getenv("DB_HOST"),
		DBPort:              valueOr(getenv("DB_PORT"), "5432"),
		DBUser:              getenv("DB_USER"),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME"),
		DBSslMode:           valueOr(getenv("DB_SSLMODE"), "disable"),
		StorageDriver:       strings.ToLower(valueOr(getenv("STORAGE_DRIVER"), StorageDriverPostgres)),
		ReferenceRate:       metrics.DefaultReferenceRate,
		LiveMetricsSchedule: valueOr(getenv("LIVE_METRICS_SCHEDULE"), jobs.DefaultLiveMetricsSchedule),
		LogLevel:            valueOr(getenv("LOG_LEVEL"), "info"),
	}

	var rateErr error
	if raw := strings.TrimSpace(getenv("REFERENCE_RATE")); raw != "" {
		configs.ReferenceRate, rateErr = strconv.ParseFloat(raw, 64)
		if rateErr != nil {
			rateErr = fmt.Errorf("REFERENCE_RATE: %w", rateErr)
		}
	}

	if err := errors.Join(rateErr, configs.Validate()); err != nil {
		return Config{}, err
	}
	return configs, nil
}

func (c Config) Validate() error {
	var errList []error

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			errList = append(errList, errors.New("DB_HOST, DB_USER and DB_NAME are required for the postgres storage driver"))
		}
	default:
		errList = append(errList, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", c.StorageDriver))
	}

	if _, err := metrics.NewReferenceRate(c.ReferenceRate); err != nil {
		errList = append(errList, fmt.Errorf("REFERENCE_RATE: %w", err))
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).
		Parse(c.LiveMetricsSchedule); err != nil {
		errList = append(errList, fmt.Errorf("LIVE_METRICS_SCHEDULE: %w", err))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// DSN is the connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func (c Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
