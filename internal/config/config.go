package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Session time context
	CurrentYear  int
	CurrentMonth int

	// Building
	BuildingUnits int

	// Logging
	LogLevel string

	// Workbook export, disabled when empty
	ExportDir string

	// AMQP, disabled when URL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return LoadAt(time.Now())
}

// LoadAt reads the environment using now for the default year and month.
func LoadAt(now time.Time) *Config {
	return &Config{
		CurrentYear:  getEnvInt("CURRENT_YEAR", now.Year()),
		CurrentMonth: getEnvInt("CURRENT_MONTH", int(now.Month())),

		BuildingUnits: getEnvInt("BUILDING_UNITS", 16),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		ExportDir: getEnv("EXPORT_DIR", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "rentas"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "rent_events"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.CurrentYear < 1 {
		errors = append(errors, fmt.Sprintf("invalid current year %d: must be positive", c.CurrentYear))
	}
	if c.CurrentMonth < 1 || c.CurrentMonth > 12 {
		errors = append(errors, fmt.Sprintf("invalid current month %d: must be between 1 and 12", c.CurrentMonth))
	}

	if c.BuildingUnits < 1 {
		errors = append(errors, fmt.Sprintf("invalid building units %d: must be at least 1", c.BuildingUnits))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if strings.EqualFold(c.LogLevel, level) {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ExportDir != "" {
		if info, err := os.Stat(c.ExportDir); err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("export path '%s' is not a directory", c.ExportDir))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
