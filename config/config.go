// Package config provides configuration management and environment variable handling for the application
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DashboardConfig holds all configuration for one dashboard process
type DashboardConfig struct {
	Input     InputConfig    `json:"input"`
	Pipeline  PipelineConfig `json:"pipeline"`
	Export    ExportConfig   `json:"export"`
	Server    ServerConfig   `json:"server"`
	Dashboard DashboardPage  `json:"dashboard"`
	Logging   LoggingConfig  `json:"logging"`
	Metrics   MetricsConfig  `json:"metrics"`
}

type InputConfig struct {
	ProductsPath   string `json:"products_path" env:"PRODUCTS_PATH" validate:"required"`
	CategoriesPath string `json:"categories_path" env:"CATEGORIES_PATH" validate:"required"`
}

type PipelineConfig struct {
	BoolCastMode       string `json:"bool_cast_mode" env:"BOOL_CAST_MODE" validate:"oneof=literal truthy"`
	TopRankedLimit     int    `json:"top_ranked_limit" env:"TOP_RANKED_LIMIT" validate:"min=1"`
	TopCategoryLimit   int    `json:"top_category_limit" env:"TOP_CATEGORY_LIMIT" validate:"min=1"`
	TopRatedMinReviews int    `json:"top_rated_min_reviews" env:"TOP_RATED_MIN_REVIEWS" validate:"min=0"`
	LabelMaxLen        int    `json:"label_max_len" env:"LABEL_MAX_LEN" validate:"min=1"`
}

type ExportConfig struct {
	Dir string `json:"dir" env:"EXPORT_DIR" validate:"required"`
}

type ServerConfig struct {
	Host              string        `json:"host" env:"SERVER_HOST" validate:"required"`
	Port              int           `json:"port" env:"SERVER_PORT" validate:"min=1,max=65535"`
	Debug             bool          `json:"debug" env:"SERVER_DEBUG"`
	ReadTimeout       time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout      time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout       time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" validate:"gt=0"`
	EnableCompression bool          `json:"enable_compression" env:"SERVER_ENABLE_COMPRESSION"`
}

type DashboardPage struct {
	Title   string `json:"title" env:"DASHBOARD_TITLE" validate:"required"`
	Heading string `json:"heading" env:"DASHBOARD_HEADING" validate:"required"`
}

type LoggingConfig struct {
	Level      string `json:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Output     string `json:"output" env:"LOG_OUTPUT" validate:"oneof=stdout file both"`
	FilePath   string `json:"file_path" env:"LOG_FILE_PATH" validate:"required_unless=Output stdout"`
	MaxSize    int    `json:"max_size" env:"LOG_MAX_SIZE" validate:"min=1"` // MB
	MaxBackups int    `json:"max_backups" env:"LOG_MAX_BACKUPS" validate:"min=0"`
	MaxAge     int    `json:"max_age" env:"LOG_MAX_AGE" validate:"min=0"` // days
	Compress   bool   `json:"compress" env:"LOG_COMPRESS"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"METRICS_ENABLED"`
	Port    int    `json:"port" env:"METRICS_PORT" validate:"min=1,max=65535"`
	Path    string `json:"path" env:"METRICS_PATH" validate:"startswith=/"`
}

// Address returns host:port for the dashboard listener
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadDashboardConfig loads and validates configuration from environment variables
func LoadDashboardConfig() (*DashboardConfig, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &DashboardConfig{
		Input: InputConfig{
			ProductsPath:   getEnvString("PRODUCTS_PATH", "amazon_products.csv"),
			CategoriesPath: getEnvString("CATEGORIES_PATH", "amazon_categories.csv"),
		},
		Pipeline: PipelineConfig{
			BoolCastMode:       strings.ToLower(getEnvString("BOOL_CAST_MODE", "literal")),
			TopRankedLimit:     getEnvInt("TOP_RANKED_LIMIT", 10),
			TopCategoryLimit:   getEnvInt("TOP_CATEGORY_LIMIT", 20),
			TopRatedMinReviews: getEnvInt("TOP_RATED_MIN_REVIEWS", 50),
			LabelMaxLen:        getEnvInt("LABEL_MAX_LEN", 25),
		},
		Export: ExportConfig{
			Dir: getEnvString("EXPORT_DIR", "."),
		},
		Server: ServerConfig{
			Host:              getEnvString("SERVER_HOST", "127.0.0.1"),
			Port:              getEnvInt("SERVER_PORT", 8050),
			Debug:             getEnvBool("SERVER_DEBUG", true),
			ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:       getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout:   getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			EnableCompression: getEnvBool("SERVER_ENABLE_COMPRESSION", true),
		},
		Dashboard: DashboardPage{
			Title:   getEnvString("DASHBOARD_TITLE", "Amazon Product Dashboard"),
			Heading: getEnvString("DASHBOARD_HEADING", "Amazon Product Analytics Dashboard"),
		},
		Logging: LoggingConfig{
			Level:      strings.ToLower(getEnvString("LOG_LEVEL", "info")),
			Output:     strings.ToLower(getEnvString("LOG_OUTPUT", "stdout")),
			FilePath:   getEnvString("LOG_FILE_PATH", "logs/dashboard.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 28),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", false),
			Port:    getEnvInt("METRICS_PORT", 9090),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
	}

	if err := ValidateDashboardConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs from path if it exists. Variables already
// set in the environment win.
func loadEnvFile(path string) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// ValidateDashboardConfig validates the configuration. Messages name the
// environment variable that carries the offending value.
func ValidateDashboardConfig(cfg *DashboardConfig) error {
	var problems []string

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})

	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, getValidationErrorMessage(fe))
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Port == cfg.Server.Port {
		problems = append(problems, "METRICS_PORT must differ from SERVER_PORT")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt":
		return fe.Field() + " must be positive"
	case "startswith":
		return fe.Field() + " must start with " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
