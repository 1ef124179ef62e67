package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"shiftlog/internal/log"
)

type Config struct {
	// Storage
	DataBackend  string `env:"DATA_BACKEND" env-default:"memory" env-description:"memory, file or sqlite"`
	DataDir      string `env:"DATA_DIR" env-default:"./data" env-description:"directory of the file backend"`
	SQLiteDBPath string `env:"SQLITE_DB_PATH" env-default:"./data/shiftlog.db"`

	// AMQP, optional
	AMQPURL        string `env:"AMQP_URL"`
	AMQPExchange   string `env:"AMQP_EXCHANGE" env-default:"shiftlog"`
	AMQPRoutingKey string `env:"AMQP_ROUTING_KEY" env-default:"shift_events"`

	// Weekly summary cache
	SummaryCacheSize int           `env:"SUMMARY_CACHE_SIZE" env-default:"16"`
	SummaryCacheTTL  time.Duration `env:"SUMMARY_CACHE_TTL" env-default:"5m"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

var validBackends = []string{"memory", "file", "sqlite"}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Load reads the configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	LoadEnvFile()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with every default applied and no
// environment consulted.
func Default() *Config {
	return &Config{
		DataBackend:      "memory",
		DataDir:          "./data",
		SQLiteDBPath:     "./data/shiftlog.db",
		AMQPExchange:     "shiftlog",
		AMQPRoutingKey:   "shift_events",
		SummaryCacheSize: 16,
		SummaryCacheTTL:  5 * time.Minute,
		LogLevel:         "info",
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "file" && c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty when using file backend")
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if c.SummaryCacheSize < 0 || c.SummaryCacheSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid summary cache size %d: must be between 0 and 1000", c.SummaryCacheSize))
	}
	if c.SummaryCacheSize > 0 && c.SummaryCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid summary cache TTL %v: must be at least 1 second", c.SummaryCacheTTL))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
