package entity

import "fmt"

// GrowthSentinel is rendered in place of a growth ratio that has no baseline.
const GrowthSentinel = "N/A"

// TrendStats holds the derived statistics of one cost item.
type TrendStats struct {
	Average       float64 `json:"average"`
	GrowthRatio   float64 `json:"growth_ratio"`
	GrowthDefined bool    `json:"growth_defined"`
	Variability   float64 `json:"variability"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Spread        float64 `json:"spread"`
	First         float64 `json:"first"`
	Last          float64 `json:"last"`
}

// GrowthText formata a razão de crescimento (last/first) ou o sentinel.
func (s TrendStats) GrowthText() string {
	if !s.GrowthDefined {
		return GrowthSentinel
	}
	return fmt.Sprintf("%.3f", s.GrowthRatio)
}

// GrowthPercentText formata a variação percentual entre o primeiro e o último período.
func (s TrendStats) GrowthPercentText() string {
	if !s.GrowthDefined {
		return GrowthSentinel
	}
	return fmt.Sprintf("%+.1f%%", (s.GrowthRatio-1)*100)
}

// VariabilityText formata o coeficiente de variação como porcentagem.
func (s TrendStats) VariabilityText() string {
	return fmt.Sprintf("%.1f%%", s.Variability*100)
}

// TrendLabel is the qualitative direction of a cost series.
type TrendLabel string

const (
	TrendUndetermined      TrendLabel = "undetermined"
	TrendRapidlyIncreasing TrendLabel = "rapidly increasing"
	TrendIncreasing        TrendLabel = "increasing"
	TrendDecreasing        TrendLabel = "decreasing"
	TrendStable            TrendLabel = "stable"
)

// VariabilityLabel is the qualitative spread of a cost series.
type VariabilityLabel string

const (
	VariabilityVolatile VariabilityLabel = "volatile"
	VariabilitySteady   VariabilityLabel = "steady"
)

// ItemTrend pairs a cost item with its statistics.
type ItemTrend struct {
	Item  CostItem   `json:"item"`
	Stats TrendStats `json:"stats"`
}

// Selection is the ordered display set of one service: the aggregate item
// first, then the highest-average items.
type Selection struct {
	Service string      `json:"service"`
	Items   []ItemTrend `json:"items"`
}

// Aggregate returns the first entry of the selection.
func (s Selection) Aggregate() ItemTrend {
	return s.Items[0]
}

// Others returns the non-aggregate entries.
func (s Selection) Others() []ItemTrend {
	if len(s.Items) < 2 {
		return nil
	}
	return s.Items[1:]
}
