package types

import (
	"fmt"
	"strings"
)

// Config represents the application configuration that can be loaded from a file.
// MaxItems é ponteiro porque 0 é um valor válido (só o item agregado).
type Config struct {
	Input           string          `json:"input" yaml:"input" toml:"input"`
	Dir             string          `json:"dir" yaml:"dir" toml:"dir"`
	MaxItems        *int            `json:"max_items" yaml:"max_items" toml:"max_items"`
	Headroom        float64         `json:"headroom" yaml:"headroom" toml:"headroom"`
	Workers         int             `json:"workers" yaml:"workers" toml:"workers"`
	ReportType      []string        `json:"report_type" yaml:"report_type" toml:"report_type"`
	Summary         bool            `json:"summary" yaml:"summary" toml:"summary"`
	Trend           bool            `json:"trend" yaml:"trend" toml:"trend"`
	SuggestionsFile string          `json:"suggestions_file" yaml:"suggestions_file" toml:"suggestions_file"`
	LogLevel        string          `json:"log_level" yaml:"log_level" toml:"log_level"`
	Thresholds      TrendThresholds `json:"thresholds" yaml:"thresholds" toml:"thresholds"`
	S3Bucket        string          `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix        string          `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	Profile         string          `json:"profile" yaml:"profile" toml:"profile"`
	Region          string          `json:"region" yaml:"region" toml:"region"`
}

// TrendThresholds maps growth ratio and variability to qualitative labels.
//
// Growth labels are checked in order: RapidGrowth, Growth, Decline, stable.
// A series is volatile when its coefficient of variation is at least
// HighVariability.
type TrendThresholds struct {
	RapidGrowth     float64 `json:"rapid_growth" yaml:"rapid_growth" toml:"rapid_growth"`
	Growth          float64 `json:"growth" yaml:"growth" toml:"growth"`
	Decline         float64 `json:"decline" yaml:"decline" toml:"decline"`
	HighVariability float64 `json:"high_variability" yaml:"high_variability" toml:"high_variability"`
}

// DefaultTrendThresholds retorna a política padrão: +20% rápido, +5% crescente,
// -10% decrescente e CV de 25% como volátil.
func DefaultTrendThresholds() TrendThresholds {
	return TrendThresholds{
		RapidGrowth:     1.20,
		Growth:          1.05,
		Decline:         0.90,
		HighVariability: 0.25,
	}
}

// Validate checks that the thresholds are ordered.
func (t TrendThresholds) Validate() error {
	if t.Decline <= 0 || t.Decline >= 1 {
		return fmt.Errorf("%w: decline threshold must be in (0, 1), got %v", ErrInvalidConfig, t.Decline)
	}
	if t.Growth <= 1 || t.RapidGrowth < t.Growth {
		return fmt.Errorf("%w: growth thresholds must satisfy 1 < growth <= rapid_growth, got %v and %v", ErrInvalidConfig, t.Growth, t.RapidGrowth)
	}
	if t.HighVariability <= 0 {
		return fmt.Errorf("%w: high_variability must be positive, got %v", ErrInvalidConfig, t.HighVariability)
	}
	return nil
}

// Formatos de relatório suportados.
const (
	FormatMarkdown = "md"
	FormatPDF      = "pdf"
)

const (
	DefaultMaxItems = 3
	DefaultHeadroom = 1.1
	DefaultWorkers  = 1
)

// ReportConfig is the explicit configuration of one pipeline run.
type ReportConfig struct {
	InputPath    string
	OutputDir    string
	MaxItems     int
	Headroom     float64
	Workers      int
	Formats      []string
	WriteSummary bool
	ShowTrends   bool
	Thresholds   TrendThresholds
}

// DefaultReportConfig retorna uma configuração com os valores padrão.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		MaxItems:   DefaultMaxItems,
		Headroom:   DefaultHeadroom,
		Workers:    DefaultWorkers,
		Formats:    []string{FormatMarkdown},
		Thresholds: DefaultTrendThresholds(),
	}
}

// Validate checks the configuration before a run starts.
func (c ReportConfig) Validate() error {
	if c.InputPath == "" {
		return ErrNoInputFile
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidConfig)
	}
	if c.MaxItems < 0 {
		return fmt.Errorf("%w: max items must not be negative, got %d", ErrInvalidConfig, c.MaxItems)
	}
	if c.Headroom <= 1 {
		return fmt.Errorf("%w: chart headroom must be greater than 1, got %v", ErrInvalidConfig, c.Headroom)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	for _, f := range c.Formats {
		switch strings.ToLower(f) {
		case FormatMarkdown, FormatPDF:
		default:
			return fmt.Errorf("%w: unsupported report type %q", ErrInvalidConfig, f)
		}
	}
	return c.Thresholds.Validate()
}

// WantsFormat reports whether format was requested.
func (c ReportConfig) WantsFormat(format string) bool {
	for _, f := range c.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}
