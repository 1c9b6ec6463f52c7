package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

func sampleReport() *entity.Report {
	periods := []entity.Period{entity.NewPeriod(2025, 3), entity.NewPeriod(2025, 4)}
	agg := entity.CostItem{Service: "Amazon S3", Label: "All", IsAggregate: true, Amounts: []float64{10, 20}}
	item := entity.CostItem{Service: "Amazon S3", Label: "Standard Storage", Amounts: []float64{5, 8}}
	return &entity.Report{
		Service:   "Amazon S3",
		FileName:  "s3",
		Title:     "Amazon S3 Cost Analysis Report",
		Periods:   periods,
		Narrative: "Costs for Amazon S3 are rapidly increasing.",
		Selection: entity.Selection{Service: "Amazon S3", Items: []entity.ItemTrend{
			{Item: agg, Stats: entity.TrendStats{Average: 15, GrowthRatio: 2, GrowthDefined: true}},
			{Item: item, Stats: entity.TrendStats{Average: 6.5, GrowthRatio: 1.6, GrowthDefined: true}},
		}},
		Suggestions: []string{"Review lifecycle rules"},
		Chart: entity.ChartDescription{
			Title:   "Amazon S3 monthly cost trend",
			Periods: []string{"2025-03", "2025-04"},
			YMax:    22,
			Series: []entity.ChartSeries{
				{Label: "All", DisplayLabel: "All", Color: "#1f77b4", Points: []entity.ChartPoint{{Period: "2025-03", Amount: 10}, {Period: "2025-04", Amount: 20}}},
				{Label: "Standard Storage", DisplayLabel: "Standard Storage", Color: "#ff7f0e", Points: []entity.ChartPoint{{Period: "2025-03", Amount: 5}, {Period: "2025-04", Amount: 8}}},
			},
			Legend: []entity.LegendEntry{{Label: "All", Color: "#1f77b4", Average: 15}, {Label: "Standard Storage", Color: "#ff7f0e", Average: 6.5}},
		},
		Markdown: "# Amazon S3 Cost Analysis Report\n",
	}
}

func TestExportToMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "docs")
	repo := NewExportRepository()

	path, err := repo.ExportToMarkdown(sampleReport(), dir)
	require.NoError(t, err)
	assert.Equal(t, "s3.md", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Amazon S3 Cost Analysis Report\n", string(data))

	// Segunda execução sobrescreve o mesmo arquivo.
	report := sampleReport()
	report.Markdown = "# updated\n"
	again, err := repo.ExportToMarkdown(report, dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	data, err = os.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, "# updated\n", string(data))
}

func TestExportToMarkdownRejectsEmptyName(t *testing.T) {
	report := sampleReport()
	report.FileName = ""
	_, err := NewExportRepository().ExportToMarkdown(report, t.TempDir())
	assert.Error(t, err)
}

func TestExportToMarkdownUnwritableDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewExportRepository().ExportToMarkdown(sampleReport(), filepath.Join(blocker, "docs"))
	assert.Error(t, err)
}

// closeFailWriter aceita a escrita mas falha no Close, como um flush que não chega ao disco.
type closeFailWriter struct {
	bytes.Buffer
	err error
}

func (w *closeFailWriter) Close() error { return w.err }

func TestExportReportsCloseError(t *testing.T) {
	flushErr := errors.New("no space left on device")
	original := createFile
	createFile = func(string) (io.WriteCloser, error) {
		return &closeFailWriter{err: flushErr}, nil
	}
	t.Cleanup(func() { createFile = original })

	repo := NewExportRepository()
	dir := t.TempDir()

	_, err := repo.ExportToMarkdown(sampleReport(), dir)
	assert.ErrorIs(t, err, flushErr)

	_, err = repo.ExportSummaryToJSON(&entity.RunSummary{Input: "costs.csv"}, dir)
	assert.ErrorIs(t, err, flushErr)
}

func TestExportToPDF(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	first, err := repo.ExportToPDF(sampleReport(), dir)
	require.NoError(t, err)
	assert.Equal(t, "s3.pdf", filepath.Base(first))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.True(t, len(a) > 4 && string(a[:4]) == "%PDF")

	second, err := repo.ExportToPDF(sampleReport(), dir)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExportSummaryToJSON(t *testing.T) {
	summary := &entity.RunSummary{
		Input:     "costs.csv",
		OutputDir: "docs",
		Periods:   []string{"2025-03"},
		Services:  2,
		Succeeded: []entity.ServiceResult{{Service: "Amazon S3", Files: []string{"docs/s3.md"}}},
		Failed:    []entity.ServiceFailure{{Service: "Amazon EC2", Stage: "write", Reason: "disk full"}},
	}

	path, err := NewExportRepository().ExportSummaryToJSON(summary, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, SummaryFileName, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded entity.RunSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Services)
	require.Len(t, decoded.Failed, 1)
	assert.Equal(t, "write", decoded.Failed[0].Stage)
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#1f77b4")
	assert.Equal(t, []int{0x1f, 0x77, 0xb4}, []int{r, g, b})

	r, g, b = hexRGB("nope")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}
