package analysis

import (
	"sort"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// Select builds the display set of a service: the aggregate item followed by
// at most maxItems other items, highest average first. Ties keep input order.
func Select(trends []entity.ItemTrend, maxItems int) entity.Selection {
	var sel entity.Selection
	if len(trends) == 0 {
		return sel
	}
	sel.Service = trends[0].Item.Service

	aggIdx := 0
	for i, t := range trends {
		if t.Item.IsAggregate {
			aggIdx = i
			break
		}
	}

	others := make([]entity.ItemTrend, 0, len(trends)-1)
	for i, t := range trends {
		if i != aggIdx {
			others = append(others, t)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Stats.Average > others[j].Stats.Average
	})

	if maxItems < 0 {
		maxItems = 0
	}
	if len(others) > maxItems {
		others = others[:maxItems]
	}

	sel.Items = append([]entity.ItemTrend{trends[aggIdx]}, others...)
	return sel
}
