// Package config loads the suite settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultBaseURL        = "https://petstore.swagger.io/v2"
	DefaultAPIKey         = "special-key"
	DefaultRequestTimeout = 15 * time.Second
	DefaultLogDir         = "Test_Results"
	DefaultLogFile        = "test_logs.log"
	DefaultLogLevel       = "INFO"
	DefaultLogName        = "api_tests"
)

// Config carries environment-driven settings for the test suite and CLI.
type Config struct {
	BaseURL        string        `envconfig:"BASE_URL" default:"https://petstore.swagger.io/v2"`
	APIKey         string        `envconfig:"API_KEY" default:"special-key"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`

	// Live points the suite at BaseURL instead of the in-process fake petstore.
	Live bool `envconfig:"PETSTORE_LIVE" default:"false"`

	LogDir   string `envconfig:"LOG_DIR" default:"Test_Results"`
	LogFile  string `envconfig:"LOG_FILE" default:"test_logs.log"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogName  string `envconfig:"LOG_NAME" default:"api_tests"`

	// TracesExporter is one of none, stdout or otlp.
	TracesExporter string `envconfig:"OTEL_TRACES_EXPORTER" default:"none"`
	OTLPEndpoint   string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig reads an optional .env file, then environment variables, applies
// defaults and validates basic constraints. Variables already present in the
// environment win over the .env file.
func LoadConfig(envPath string) (Config, error) {
	if err := loadDotEnv(envPath); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", envPath, err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return Config{}, fmt.Errorf("BASE_URL must be an http(s) URL, got %q", c.BaseURL)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		c.APIKey = DefaultAPIKey
	}
	if c.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR")
	}
	c.TracesExporter = strings.ToLower(strings.TrimSpace(c.TracesExporter))
	switch c.TracesExporter {
	case "", "none":
		c.TracesExporter = "none"
	case "stdout", "otlp":
	default:
		return Config{}, fmt.Errorf("OTEL_TRACES_EXPORTER must be none, stdout or otlp")
	}
	return c, nil
}

// loadDotEnv loads path (".env" when empty) and silently skips a missing file.
func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
