package export

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

var fixedDocumentDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	pageWidth   = 190.0
	chartHeight = 80.0
)

// ExportToPDF grava o relatório em PDF, desenhando o gráfico a partir do ChartDescription.
func (r *ExportRepositoryImpl) ExportToPDF(report *entity.Report, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report.FileName, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Data fixa: o mesmo relatório deve gerar o mesmo arquivo.
	pdf.SetCreationDate(fixedDocumentDate)
	pdf.SetModificationDate(fixedDocumentDate)
	pdf.SetCatalogSort(true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr("Generated by AWS Cost Report (Go)"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	drawTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pageWidth, pdf.GetY())
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+report.Title), "", 1, "L", true, 0, "")
	if len(report.Periods) > 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		period := fmt.Sprintf("  Period: %s to %s", report.Periods[0].Label, report.Periods[len(report.Periods)-1].Label)
		pdf.CellFormat(0, 8, tr(period), "", 1, "L", true, 0, "")
	}
	pdf.Ln(8)

	drawTitle("Overview")
	pdf.MultiCell(pageWidth, 5, tr(strings.Join(strings.Fields(report.Narrative), " ")), "", "L", false)
	pdf.Ln(6)

	drawTitle("Cost Trend Statistics")
	statHeaders := []string{"Cost item", "Average", "Growth ratio", "Growth", "Variability", "Spread"}
	statWidths := []float64{60, 26, 26, 26, 26, 26}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range statHeaders {
		pdf.CellFormat(statWidths[i], 7, tr(h), "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, it := range report.Selection.Items {
		cells := []string{
			truncate(it.Item.Label, 34),
			money(it.Stats.Average),
			it.Stats.GrowthText(),
			it.Stats.GrowthPercentText(),
			it.Stats.VariabilityText(),
			money(it.Stats.Spread),
		}
		for i, c := range cells {
			pdf.CellFormat(statWidths[i], 6, tr(c), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	drawTitle("Optimization Suggestions")
	for _, s := range report.Suggestions {
		pdf.MultiCell(pageWidth, 5, tr("- "+s), "", "L", false)
	}
	pdf.Ln(6)

	drawTitle("Monthly Cost Details")
	drawDataTable(pdf, tr, report)
	pdf.Ln(6)

	if pdf.GetY()+chartHeight+30 > 280 {
		pdf.AddPage()
	}
	drawTitle("Cost Trend Chart")
	drawChart(pdf, tr, report.Chart)

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func drawDataTable(pdf *gofpdf.Fpdf, tr func(string) string, report *entity.Report) {
	labelWidth := 40.0
	colWidth := (pageWidth - labelWidth) / float64(max(len(report.Periods), 1))

	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(labelWidth, 7, tr("Cost item"), "B", 0, "L", false, 0, "")
	for _, p := range report.Periods {
		pdf.CellFormat(colWidth, 7, tr(p.Label), "B", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, it := range report.Selection.Items {
		pdf.CellFormat(labelWidth, 6, tr(truncate(it.Item.Label, 24)), "", 0, "L", false, 0, "")
		for _, a := range it.Item.Amounts {
			pdf.CellFormat(colWidth, 6, tr(money(a)), "", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// drawChart desenha as séries como linhas, com o eixo vertical começando em zero.
func drawChart(pdf *gofpdf.Fpdf, tr func(string) string, chart entity.ChartDescription) {
	left := pdf.GetX() + 18
	top := pdf.GetY() + 2
	width := pageWidth - 20
	height := chartHeight
	bottom := top + height
	span := chart.YMax - chart.YMin
	if span <= 0 {
		span = 1
	}

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		value := chart.YMin + span*float64(i)/ticks
		y := bottom - height*float64(i)/ticks
		pdf.Line(left, y, left+width, y)
		pdf.Text(left-17, y+1, tr(money(value)))
	}

	n := len(chart.Periods)
	xAt := func(i int) float64 {
		if n <= 1 {
			return left + width/2
		}
		return left + width*float64(i)/float64(n-1)
	}
	for i, label := range chart.Periods {
		pdf.Text(xAt(i)-5, bottom+5, tr(label))
	}

	pdf.SetLineWidth(0.6)
	for _, s := range chart.Series {
		r, g, b := hexRGB(s.Color)
		pdf.SetDrawColor(r, g, b)
		pdf.SetFillColor(r, g, b)
		for i, p := range s.Points {
			x := xAt(i)
			y := bottom - height*(p.Amount-chart.YMin)/span
			if i > 0 {
				prev := s.Points[i-1]
				pdf.Line(xAt(i-1), bottom-height*(prev.Amount-chart.YMin)/span, x, y)
			}
			pdf.Circle(x, y, 0.8, "F")
		}
	}
	pdf.SetLineWidth(0.2)

	pdf.SetY(bottom + 10)
	pdf.SetFont("Arial", "", 8)
	for _, l := range chart.Legend {
		r, g, b := hexRGB(l.Color)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(pdf.GetX(), pdf.GetY()+1.5, 3, 3, "F")
		pdf.SetX(pdf.GetX() + 5)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s (avg: %s)", l.Label, money(l.Average))), "", 1, "L", false, 0, "")
	}
}

func hexRGB(color string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(color, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(color, "#")) != 6 {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
