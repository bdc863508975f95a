// Package config has the configuration file for the app
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Env      string
	LogLevel string

	// Intake parser
	DefaultPackSize  int // Quantity assumed when a message names none
	MaxMessageLength int // Messages longer than this are truncated before parsing

	// Depletion forecaster
	MinOrders               int     // Minimum order count before predicting
	HighConfidenceThreshold float64 // Score at or above which confidence is high
	ReorderLeadDays         int     // Days before depletion to suggest reordering
	NotifyWindowDays        int     // Reminder window before the depletion date

	// Refill sweep
	SweepHours            int // Hours between scheduled refill sweeps
	ReminderCooldownHours int // Minimum hours between reminders for one medicine
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:                     getEnvWithDefault("ENV", "dev"),
		LogLevel:                getEnvWithDefault("LOG_LEVEL", "info"),
		DefaultPackSize:         getIntEnvWithDefault("DEFAULT_PACK_SIZE", 30),
		MaxMessageLength:        getIntEnvWithDefault("MAX_MESSAGE_LENGTH", 1000),
		MinOrders:               getIntEnvWithDefault("MIN_ORDERS", 3),
		HighConfidenceThreshold: getFloatEnvWithDefault("HIGH_CONFIDENCE_THRESHOLD", 0.7),
		ReorderLeadDays:         getIntEnvWithDefault("REORDER_LEAD_DAYS", 7),
		NotifyWindowDays:        getIntEnvWithDefault("NOTIFY_WINDOW_DAYS", 7),
		SweepHours:              getIntEnvWithDefault("SWEEP_HOURS", 6),
		ReminderCooldownHours:   getIntEnvWithDefault("REMINDER_COOLDOWN_HOURS", 24),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateRange(cfg.DefaultPackSize, 1, 1000, "DEFAULT_PACK_SIZE"); err != nil {
		return err
	}

	if err := validateRange(cfg.MaxMessageLength, 10, 100000, "MAX_MESSAGE_LENGTH"); err != nil {
		return err
	}

	if err := validateRange(cfg.MinOrders, 2, 100, "MIN_ORDERS"); err != nil {
		return err
	}

	if err := validateThreshold(cfg.HighConfidenceThreshold); err != nil {
		return err
	}

	if err := validateRange(cfg.ReorderLeadDays, 0, 90, "REORDER_LEAD_DAYS"); err != nil {
		return err
	}

	if err := validateRange(cfg.NotifyWindowDays, 0, 90, "NOTIFY_WINDOW_DAYS"); err != nil {
		return err
	}

	if err := validateRange(cfg.SweepHours, 1, 168, "SWEEP_HOURS"); err != nil {
		return err
	}

	if err := validateRange(cfg.ReminderCooldownHours, 1, 720, "REMINDER_COOLDOWN_HOURS"); err != nil {
		return err
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env string) error {
	if env == "" {
		return fmt.Errorf("ENV cannot be empty")
	}

	validEnvs := []string{"dev", "staging", "prod", "test"}
	env = strings.ToLower(env)

	for _, validEnv := range validEnvs {
		if env == validEnv {
			return nil
		}
	}

	return fmt.Errorf("ENV must be one of: %v, got: %s", validEnvs, env)
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateThreshold validates the HIGH_CONFIDENCE_THRESHOLD environment variable
func validateThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("invalid HIGH_CONFIDENCE_THRESHOLD: must be in (0, 1], got: %v", threshold)
	}
	return nil
}

// validateRange validates an integer configuration value against its bounds
func validateRange(value, min, max int, configName string) error {
	if value < min || value > max {
		return fmt.Errorf("invalid %s: must be between %d and %d, got: %d", configName, min, max, value)
	}
	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFloatEnvWithDefault gets an environment variable as float64 with a default value
func getFloatEnvWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"ENV",
		"LOG_LEVEL",
		"DEFAULT_PACK_SIZE",
		"MAX_MESSAGE_LENGTH",
		"MIN_ORDERS",
		"HIGH_CONFIDENCE_THRESHOLD",
		"REORDER_LEAD_DAYS",
		"NOTIFY_WINDOW_DAYS",
		"SWEEP_HOURS",
		"REMINDER_COOLDOWN_HOURS",
	}
}
