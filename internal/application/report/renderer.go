// Package report renders the Markdown document of one service.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/kr/text"

	"github.com/diillson/aws-cost-report-go/internal/domain/analysis"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// MaxSuggestions bounds the optimization suggestion list of a report.
const MaxSuggestions = 4

const narrativeWidth = 100

const urgentSuggestion = "Costs are rising sharply: review usage and resource placement urgently"

// Renderer turns a service selection into a report document.
type Renderer struct {
	catalog    repository.SuggestionCatalog
	thresholds types.TrendThresholds
	tmpl       *template.Template
}

// NewRenderer cria um Renderer com o catálogo de sugestões e a política de tendência.
func NewRenderer(catalog repository.SuggestionCatalog, thresholds types.TrendThresholds) *Renderer {
	return &Renderer{
		catalog:    catalog,
		thresholds: thresholds,
		tmpl:       template.Must(newMarkdownTemplate()),
	}
}

func newMarkdownTemplate() (*template.Template, error) {
	funcs := template.FuncMap{
		"money":        money,
		"cell":         tableCell,
		"number":       number,
		"points":       points,
		"mermaidLabel": mermaidLabel,
		"fence":        func() string { return "```" },
	}
	return template.New("service-report").Funcs(sprig.TxtFuncMap()).Funcs(funcs).Parse(markdownTemplate)
}

// Render builds the report of svc. sel must start with the aggregate item.
func (r *Renderer) Render(svc entity.Service, periods []entity.Period, sel entity.Selection, chart entity.ChartDescription) (*entity.Report, error) {
	if len(sel.Items) == 0 {
		return nil, fmt.Errorf("empty selection for service %q", svc.Name)
	}

	agg := sel.Aggregate()
	trend, variability := analysis.Classify(agg.Stats, r.thresholds)

	report := &entity.Report{
		Service:     svc.Name,
		Title:       fmt.Sprintf("%s Cost Analysis Report", svc.Name),
		Periods:     periods,
		Trend:       trend,
		Variability: variability,
		Selection:   sel,
		Chart:       chart,
	}
	report.Narrative = text.Wrap(narrative(svc, periods, sel, trend, variability), narrativeWidth)
	report.Suggestions = r.suggestions(svc.Name, trend)

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("error executing report template: %w", err)
	}
	report.Markdown = buf.String()

	return report, nil
}

// suggestions monta a lista: alerta de crescimento rápido primeiro, depois o catálogo.
func (r *Renderer) suggestions(service string, trend entity.TrendLabel) []string {
	var list []string
	if trend == entity.TrendRapidlyIncreasing {
		list = append(list, urgentSuggestion)
	}
	list = append(list, r.catalog.Suggestions(service)...)
	if len(list) > MaxSuggestions {
		list = list[:MaxSuggestions]
	}
	return list
}

func narrative(svc entity.Service, periods []entity.Period, sel entity.Selection, trend entity.TrendLabel, variability entity.VariabilityLabel) string {
	stats := sel.Aggregate().Stats
	var b strings.Builder

	first, last := periods[0].Label, periods[len(periods)-1].Label
	if len(periods) == 1 {
		fmt.Fprintf(&b, "Cost analysis of %s for 1 month (%s). ", svc.Name, first)
	} else {
		fmt.Fprintf(&b, "Cost analysis of %s over %d months (%s to %s). ", svc.Name, len(periods), first, last)
	}

	if stats.GrowthDefined {
		fmt.Fprintf(&b, "Total cost moved from %s to %s, a growth ratio of %s (%s), so the overall trend is %s. ",
			money(stats.First), money(stats.Last), stats.GrowthText(), stats.GrowthPercentText(), trend)
	} else {
		fmt.Fprintf(&b, "Total cost was %s in %s, so no growth ratio can be computed (%s); it reached %s in %s. ",
			money(stats.First), first, entity.GrowthSentinel, money(stats.Last), last)
	}

	fmt.Fprintf(&b, "Variability is %s of the average monthly cost of %s, which is %s.",
		stats.VariabilityText(), money(stats.Average), variability)

	others := len(sel.Others())
	switch {
	case len(svc.Items) == 0:
		b.WriteString(" No other cost items are recorded for this service.")
	case others < len(svc.Items):
		fmt.Fprintf(&b, " The tables show the top %d of %d cost items by average cost.", others, len(svc.Items))
	}

	return b.String()
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func points(ps []entity.ChartPoint) string {
	values := make([]string, len(ps))
	for i, p := range ps {
		values[i] = fmt.Sprintf("%.2f", p.Amount)
	}
	return "[" + strings.Join(values, ", ") + "]"
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func tableCell(s string) string {
	return cellReplacer.Replace(s)
}

func mermaidLabel(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}
