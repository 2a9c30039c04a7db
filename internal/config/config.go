// Package config provides configuration management for the dashboard
// pipeline worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/EnriqueColon/Collector-dashboard/internal/normalizer"
)

// Configuration validation errors.
var (
	ErrMissingInputPath   = errors.New("input.path is required")
	ErrInvalidInputFormat = errors.New("input.format must be 'json' or 'jsonl'")
	ErrMissingOutputPath  = errors.New("output.base_path is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidUPBCeiling  = errors.New("quality.upb_warn_ceiling must be positive")
	ErrInvalidStaleYears  = errors.New("quality.stale_years must be at least 1")
	ErrNoAllowedYears     = errors.New("analytics.allowed_years must name at least one year")
	ErrRuleMissingPattern = errors.New("normalization rule pattern is required")
	ErrRuleMissingCanon   = errors.New("normalization rule canonical is required")
)

// Config is the complete worker configuration.
type Config struct {
	Input         InputConfig         `yaml:"input"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
	Quality       QualityConfig       `yaml:"quality"`
	Analytics     AnalyticsConfig     `yaml:"analytics"`
	Normalization NormalizationConfig `yaml:"normalization"`
}

// InputConfig locates the exported rows.
type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// OutputConfig defines where results land.
type OutputConfig struct {
	BasePath    string `yaml:"base_path"`
	ReportFile  string `yaml:"report_file"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// QualityConfig tunes the suspicious-value thresholds of the field
// validator.
type QualityConfig struct {
	UPBWarnCeiling float64 `yaml:"upb_warn_ceiling"`
	StaleYears     int     `yaml:"stale_years"`
}

// AnalyticsConfig tunes the aggregate calculators.
type AnalyticsConfig struct {
	AllowedYears []int `yaml:"allowed_years"`
}

// NormalizationConfig carries deployment-specific consolidation rules
// appended after the base normalizer.
type NormalizationConfig struct {
	CountyRules []RuleConfig `yaml:"county_rules"`
	LenderRules []RuleConfig `yaml:"lender_rules"`
}

// RuleConfig is one configured consolidation rule.
type RuleConfig struct {
	Name      string `yaml:"name"`
	Pattern   string `yaml:"pattern"`
	Canonical string `yaml:"canonical"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:   "data/complaints.json",
			Format: "json",
		},
		Output: OutputConfig{
			BasePath:    "out",
			ReportFile:  "quality-report.md",
			PrettyPrint: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Quality: QualityConfig{
			UPBWarnCeiling: 1_000_000_000,
			StaleYears:     10,
		},
		Analytics: AnalyticsConfig{
			AllowedYears: []int{2023, 2024, 2025, 2026},
		},
	}
}

// Load reads configuration from a YAML file, fills defaults, applies
// environment overrides, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Environment overrides, applied after the file is read.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("COLLECTOR_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if path := os.Getenv("COLLECTOR_INPUT_PATH"); path != "" {
		c.Input.Path = path
	}

	if path := os.Getenv("COLLECTOR_OUTPUT_PATH"); path != "" {
		c.Output.BasePath = path
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return ErrMissingInputPath
	}

	if c.Input.Format != "json" && c.Input.Format != "jsonl" {
		return ErrInvalidInputFormat
	}

	if c.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if c.Quality.UPBWarnCeiling <= 0 {
		return ErrInvalidUPBCeiling
	}

	if c.Quality.StaleYears < 1 {
		return ErrInvalidStaleYears
	}

	if len(c.Analytics.AllowedYears) == 0 {
		return ErrNoAllowedYears
	}

	for _, rule := range append(c.Normalization.CountyRules, c.Normalization.LenderRules...) {
		if rule.Pattern == "" {
			return fmt.Errorf("%w: rule %q", ErrRuleMissingPattern, rule.Name)
		}

		if rule.Canonical == "" {
			return fmt.Errorf("%w: rule %q", ErrRuleMissingCanon, rule.Name)
		}

		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("rule %q has invalid pattern: %w", rule.Name, err)
		}
	}

	return nil
}

// BuildRegistry compiles the configured consolidation rules into a
// normalization registry for the pipeline.
func (c *Config) BuildRegistry() (*normalizer.Registry, error) {
	registry := normalizer.NewRegistry()

	for _, rc := range c.Normalization.CountyRules {
		rule, err := normalizer.NewRule(rc.Name, rc.Pattern, rc.Canonical)
		if err != nil {
			return nil, err
		}

		registry.AddCountyRule(rule)
	}

	for _, rc := range c.Normalization.LenderRules {
		rule, err := normalizer.NewRule(rc.Name, rc.Pattern, rc.Canonical)
		if err != nil {
			return nil, err
		}

		registry.AddLenderRule(rule)
	}

	return registry, nil
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Input: %s, Output: %s, Level: %s}",
		c.Input.Path, c.Output.BasePath, c.Logging.Level)
}
