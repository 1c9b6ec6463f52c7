package entity

// ChartPoint is one (period, amount) sample of a series.
type ChartPoint struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// ChartSeries is one line of the chart.
type ChartSeries struct {
	Label        string       `json:"label"`
	DisplayLabel string       `json:"display_label"`
	Color        string       `json:"color"`
	Points       []ChartPoint `json:"points"`
}

// LegendEntry pairs a series color with the series average.
type LegendEntry struct {
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Average float64 `json:"average"`
}

// ChartDescription is a declarative line chart, independent of any renderer.
type ChartDescription struct {
	Title      string        `json:"title"`
	XAxisLabel string        `json:"x_axis_label"`
	YAxisLabel string        `json:"y_axis_label"`
	Periods    []string      `json:"periods"`
	YMin       float64       `json:"y_min"`
	YMax       float64       `json:"y_max"`
	Series     []ChartSeries `json:"series"`
	Legend     []LegendEntry `json:"legend"`
}
