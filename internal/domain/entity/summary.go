package entity

// Report is the rendered document of one service.
type Report struct {
	Service     string           `json:"service"`
	FileName    string           `json:"file_name"`
	Title       string           `json:"title"`
	Periods     []Period         `json:"periods"`
	Narrative   string           `json:"narrative"`
	Trend       TrendLabel       `json:"trend"`
	Variability VariabilityLabel `json:"variability"`
	Selection   Selection        `json:"selection"`
	Suggestions []string         `json:"suggestions"`
	Chart       ChartDescription `json:"chart"`
	Markdown    string           `json:"-"`
}

// ServiceResult lists the files produced for a service.
type ServiceResult struct {
	Service   string   `json:"service"`
	Files     []string `json:"files"`
	Published []string `json:"published,omitempty"`
}

// ServiceFailure records why a service produced no (or an incomplete) report.
type ServiceFailure struct {
	Service string `json:"service"`
	Stage   string `json:"stage"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}

// RunSummary is the outcome of one pipeline run.
type RunSummary struct {
	Input     string                 `json:"input"`
	OutputDir string                 `json:"output_dir"`
	Periods   []string               `json:"periods"`
	Services  int                    `json:"services"`
	Succeeded []ServiceResult        `json:"succeeded"`
	Failed    []ServiceFailure       `json:"failed"`
	Warnings  []InvalidAmountWarning `json:"warnings,omitempty"`
}

// HasFailures reports whether at least one service failed.
func (s *RunSummary) HasFailures() bool {
	return len(s.Failed) > 0
}
