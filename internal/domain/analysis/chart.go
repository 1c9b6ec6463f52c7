package analysis

import (
	"fmt"
	"math"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// Palette is the series color order, matching Mermaid's xychart defaults.
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

const maxDisplayLabel = 20

// ChartOptions configures BuildChart.
type ChartOptions struct {
	Title    string
	Headroom float64
}

// BuildChart describes the line chart of a selection over periods.
func BuildChart(sel entity.Selection, periods []entity.Period, opts ChartOptions) (entity.ChartDescription, error) {
	if opts.Headroom <= 1 {
		return entity.ChartDescription{}, fmt.Errorf("chart headroom must be greater than 1, got %v", opts.Headroom)
	}
	if len(sel.Items) == 0 {
		return entity.ChartDescription{}, fmt.Errorf("empty selection for service %q", sel.Service)
	}

	chart := entity.ChartDescription{
		Title:      opts.Title,
		XAxisLabel: "Month",
		YAxisLabel: "Cost (USD)",
		Periods:    make([]string, len(periods)),
		YMin:       0,
		Series:     make([]entity.ChartSeries, 0, len(sel.Items)),
		Legend:     make([]entity.LegendEntry, 0, len(sel.Items)),
	}
	for i, p := range periods {
		chart.Periods[i] = p.Label
	}

	maxAmount := 0.0
	for i, it := range sel.Items {
		if len(it.Item.Amounts) != len(periods) {
			return entity.ChartDescription{}, fmt.Errorf("item %q has %d amounts for %d periods", it.Item.Label, len(it.Item.Amounts), len(periods))
		}
		color := Palette[i%len(Palette)]
		series := entity.ChartSeries{
			Label:        it.Item.Label,
			DisplayLabel: shortLabel(it.Item.Label),
			Color:        color,
			Points:       make([]entity.ChartPoint, len(periods)),
		}
		for j, p := range periods {
			amount := it.Item.Amounts[j]
			series.Points[j] = entity.ChartPoint{Period: p.Label, Amount: amount}
			maxAmount = math.Max(maxAmount, amount)
		}
		chart.Series = append(chart.Series, series)
		chart.Legend = append(chart.Legend, entity.LegendEntry{
			Label:   it.Item.Label,
			Color:   color,
			Average: it.Stats.Average,
		})
	}

	chart.YMax = niceCeil(maxAmount * opts.Headroom)
	if chart.YMax < maxAmount {
		chart.YMax = maxAmount
	}
	return chart, nil
}

// niceCeil rounds v up to a multiple of max(1, 10^(floor(log10 v)-1)).
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	step := math.Max(1, math.Pow(10, math.Floor(math.Log10(v))-1))
	return math.Ceil(v/step) * step
}

func shortLabel(label string) string {
	r := []rune(label)
	if len(r) <= maxDisplayLabel {
		return label
	}
	return string(r[:maxDisplayLabel-3]) + "..."
}
