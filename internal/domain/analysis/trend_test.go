package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

func TestAnalyze(t *testing.T) {
	tests := map[string]struct {
		amounts       []float64
		average       float64
		growthDefined bool
		growth        float64
		variability   float64
		spread        float64
	}{
		"standard storage grows": {
			amounts:       []float64{32.45, 38.67, 45.67},
			average:       38.93,
			growthDefined: true,
			growth:        45.67 / 32.45,
			variability:   0.138,
			spread:        13.22,
		},
		"constant series is steady": {
			amounts:       []float64{10, 10, 10, 10},
			average:       10,
			growthDefined: true,
			growth:        1,
		},
		"zero first period has no growth ratio": {
			amounts:     []float64{0, 5, 10},
			average:     5,
			variability: 0.816,
			spread:      10,
		},
		"all zero": {
			amounts: []float64{0, 0, 0},
		},
		"single period": {
			amounts:       []float64{7},
			average:       7,
			growthDefined: true,
			growth:        1,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			stats := Analyze(tc.amounts)
			assert.InDelta(t, tc.average, stats.Average, 0.01)
			assert.Equal(t, tc.growthDefined, stats.GrowthDefined)
			if tc.growthDefined {
				assert.InDelta(t, tc.growth, stats.GrowthRatio, 0.0001)
			}
			assert.InDelta(t, tc.variability, stats.Variability, 0.001)
			assert.InDelta(t, tc.spread, stats.Spread, 0.0001)
		})
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	stats := Analyze(nil)
	assert.Equal(t, entity.TrendStats{}, stats)
	assert.Equal(t, entity.GrowthSentinel, stats.GrowthText())
}

func TestGrowthText(t *testing.T) {
	stats := Analyze([]float64{32.45, 38.67, 45.67})
	assert.Equal(t, "1.407", stats.GrowthText())
	assert.Equal(t, "+40.7%", stats.GrowthPercentText())

	undefined := Analyze([]float64{0, 12})
	assert.Equal(t, "N/A", undefined.GrowthText())
	assert.Equal(t, "N/A", undefined.GrowthPercentText())
}

func TestClassify(t *testing.T) {
	thresholds := types.DefaultTrendThresholds()

	tests := map[string]struct {
		stats       entity.TrendStats
		trend       entity.TrendLabel
		variability entity.VariabilityLabel
	}{
		"rapid growth": {
			stats: entity.TrendStats{GrowthDefined: true, GrowthRatio: 1.42, Variability: 0.14},
			trend: entity.TrendRapidlyIncreasing, variability: entity.VariabilitySteady,
		},
		"rapid growth boundary": {
			stats: entity.TrendStats{GrowthDefined: true, GrowthRatio: 1.20},
			trend: entity.TrendRapidlyIncreasing, variability: entity.VariabilitySteady,
		},
		"moderate growth": {
			stats: entity.TrendStats{GrowthDefined: true, GrowthRatio: 1.10},
			trend: entity.TrendIncreasing, variability: entity.VariabilitySteady,
		},
		"stable": {
			stats: entity.TrendStats{GrowthDefined: true, GrowthRatio: 1.0, Variability: 0.02},
			trend: entity.TrendStable, variability: entity.VariabilitySteady,
		},
		"decline": {
			stats: entity.TrendStats{GrowthDefined: true, GrowthRatio: 0.5, Variability: 0.3},
			trend: entity.TrendDecreasing, variability: entity.VariabilityVolatile,
		},
		"undefined growth": {
			stats: entity.TrendStats{Variability: 0.25},
			trend: entity.TrendUndetermined, variability: entity.VariabilityVolatile,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			trend, variability := Classify(tc.stats, thresholds)
			assert.Equal(t, tc.trend, trend)
			assert.Equal(t, tc.variability, variability)
		})
	}
}

func TestAnalyzeServiceAggregateFirst(t *testing.T) {
	svc := entity.Service{
		Name:      "Amazon S3",
		Aggregate: entity.CostItem{Service: "Amazon S3", Label: "All", IsAggregate: true, Amounts: []float64{1, 2}},
		Items: []entity.CostItem{
			{Service: "Amazon S3", Label: "Requests", Amounts: []float64{0.5, 0.5}},
		},
	}
	trends := AnalyzeService(svc)
	assert.Len(t, trends, 2)
	assert.True(t, trends[0].Item.IsAggregate)
	assert.InDelta(t, 1.5, trends[0].Stats.Average, 1e-9)
	assert.InDelta(t, 0.5, trends[1].Stats.Average, 1e-9)
}
