package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile      string
	Input           string
	Dir             string
	MaxItems        int
	Headroom        float64
	Workers         int
	ReportType      []string
	Summary         bool
	Trend           bool
	SuggestionsFile string
	LogLevel        string
	S3Bucket        string
	S3Prefix        string
	Profile         string
	Region          string
	Thresholds      TrendThresholds
}

// ReportConfig converte os argumentos na configuração explícita do pipeline.
func (a *CLIArgs) ReportConfig() ReportConfig {
	cfg := DefaultReportConfig()
	cfg.InputPath = a.Input
	cfg.OutputDir = a.Dir
	cfg.MaxItems = a.MaxItems
	cfg.Headroom = a.Headroom
	cfg.Workers = a.Workers
	if len(a.ReportType) > 0 {
		cfg.Formats = a.ReportType
	}
	cfg.WriteSummary = a.Summary
	cfg.ShowTrends = a.Trend
	if a.Thresholds != (TrendThresholds{}) {
		cfg.Thresholds = a.Thresholds
	}
	return cfg
}
