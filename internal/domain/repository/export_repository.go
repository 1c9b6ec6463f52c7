package repository

import (
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// ExportRepository persists rendered reports. Every method returns the
// absolute path of the written file.
type ExportRepository interface {
	ExportToMarkdown(report *entity.Report, outputDir string) (string, error)
	ExportToPDF(report *entity.Report, outputDir string) (string, error)
	ExportSummaryToJSON(summary *entity.RunSummary, outputDir string) (string, error)
}
