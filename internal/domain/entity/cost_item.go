package entity

import "fmt"

// AggregateLabel is the reserved item label for "all costs of this service".
const AggregateLabel = "All"

// Period represents one labeled month of the dataset, e.g. "2025-03".
type Period struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

// NewPeriod cria um Period com o rótulo normalizado YYYY-MM.
func NewPeriod(year, month int) Period {
	return Period{
		Year:  year,
		Month: month,
		Label: fmt.Sprintf("%04d-%02d", year, month),
	}
}

// Before reports whether p is strictly earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// CostItem represents one cost line of a service tracked across all periods.
type CostItem struct {
	Service     string    `json:"service"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	IsAggregate bool      `json:"is_aggregate"`
	Amounts     []float64 `json:"amounts"` // alinhado com Dataset.Periods
	Line        int       `json:"line"`
}

// Service groups the cost items of one named service.
type Service struct {
	Name      string     `json:"name"`
	Aggregate CostItem   `json:"aggregate"`
	Items     []CostItem `json:"items"`
}

// AllItems retorna o item agregado seguido dos demais, na ordem de entrada.
func (s Service) AllItems() []CostItem {
	items := make([]CostItem, 0, len(s.Items)+1)
	items = append(items, s.Aggregate)
	items = append(items, s.Items...)
	return items
}

// Dataset is the parsed form of one input file.
type Dataset struct {
	Source   string                 `json:"source"`
	Periods  []Period               `json:"periods"`
	Services []Service              `json:"services"`
	Warnings []InvalidAmountWarning `json:"warnings,omitempty"`
}

// InvalidAmountWarning records a cell that could not be read as an amount
// and was replaced by zero.
type InvalidAmountWarning struct {
	Line    int    `json:"line"`
	Column  string `json:"column"`
	Service string `json:"service"`
	Item    string `json:"item"`
	Value   string `json:"value"`
	Reason  string `json:"reason"`
}

func (w InvalidAmountWarning) Error() string {
	return fmt.Sprintf("line %d, column %q (%s / %s): %s %q, using 0", w.Line, w.Column, w.Service, w.Item, w.Reason, w.Value)
}
