// Package analysis computes per-item cost statistics, picks the items shown
// in a report and describes the report chart. Everything here is a pure
// function of its input.
package analysis

import (
	"math"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// Analyze computes the trend statistics of one ordered amount series.
func Analyze(amounts []float64) entity.TrendStats {
	var stats entity.TrendStats
	if len(amounts) == 0 {
		return stats
	}

	sum := 0.0
	stats.Min = amounts[0]
	stats.Max = amounts[0]
	for _, a := range amounts {
		sum += a
		stats.Min = math.Min(stats.Min, a)
		stats.Max = math.Max(stats.Max, a)
	}
	stats.Average = sum / float64(len(amounts))
	stats.Spread = stats.Max - stats.Min
	stats.First = amounts[0]
	stats.Last = amounts[len(amounts)-1]

	// Sem base no primeiro período não há razão de crescimento.
	if stats.First != 0 {
		stats.GrowthRatio = stats.Last / stats.First
		stats.GrowthDefined = true
	}

	if stats.Average != 0 {
		variance := 0.0
		for _, a := range amounts {
			d := a - stats.Average
			variance += d * d
		}
		variance /= float64(len(amounts))
		stats.Variability = math.Sqrt(variance) / stats.Average
	}

	return stats
}

// AnalyzeService computes the statistics of every item of svc, aggregate first.
func AnalyzeService(svc entity.Service) []entity.ItemTrend {
	items := svc.AllItems()
	trends := make([]entity.ItemTrend, len(items))
	for i, item := range items {
		trends[i] = entity.ItemTrend{Item: item, Stats: Analyze(item.Amounts)}
	}
	return trends
}

// Classify maps aggregate statistics to qualitative labels.
func Classify(stats entity.TrendStats, t types.TrendThresholds) (entity.TrendLabel, entity.VariabilityLabel) {
	variability := entity.VariabilitySteady
	if stats.Variability >= t.HighVariability {
		variability = entity.VariabilityVolatile
	}

	if !stats.GrowthDefined {
		return entity.TrendUndetermined, variability
	}

	switch {
	case stats.GrowthRatio >= t.RapidGrowth:
		return entity.TrendRapidlyIncreasing, variability
	case stats.GrowthRatio >= t.Growth:
		return entity.TrendIncreasing, variability
	case stats.GrowthRatio <= t.Decline:
		return entity.TrendDecreasing, variability
	default:
		return entity.TrendStable, variability
	}
}
