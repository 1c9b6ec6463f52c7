package report

const markdownTemplate = `# {{ .Title }}

## Overview

{{ .Narrative }}

## Cost Trend Statistics

| Cost item | Description | Average | Growth ratio | Growth | Variability | Spread |
|---|---|---:|---:|---:|---:|---:|
{{ range .Selection.Items -}}
| {{ cell .Item.Label }} | {{ cell .Item.Description }} | {{ money .Stats.Average }} | {{ .Stats.GrowthText }} | {{ .Stats.GrowthPercentText }} | {{ .Stats.VariabilityText }} | {{ money .Stats.Spread }} |
{{ end -}}
{{ if not .Selection.Others }}
_No other cost items are recorded for this service._
{{ end }}
## Optimization Suggestions

{{ range .Suggestions -}}
- {{ . }}
{{ end }}
## Monthly Cost Details

| Cost item |{{ range .Periods }} {{ .Label }} |{{ end }}
|---|{{ repeat (len .Periods) "---:|" }}
{{ range .Selection.Items -}}
| {{ cell .Item.Label }} |{{ range .Item.Amounts }} {{ money . }} |{{ end }}
{{ end }}
## Cost Trend Chart

{{ fence }}mermaid
xychart-beta
    title {{ mermaidLabel .Chart.Title }}
    x-axis [{{ range $i, $p := .Chart.Periods }}{{ if $i }}, {{ end }}{{ quote $p }}{{ end }}]
    y-axis {{ mermaidLabel .Chart.YAxisLabel }} {{ number .Chart.YMin }} --> {{ number .Chart.YMax }}
{{- range .Chart.Series }}
    line {{ mermaidLabel .DisplayLabel }} {{ points .Points }}
{{- end }}
{{ fence }}

**Legend:**
{{ range .Chart.Legend }}
- <span style="color:{{ .Color }}">●</span> **{{ .Label }}** (avg: {{ money .Average }})
{{- end }}

---
*This report was generated automatically. Regenerate it whenever the cost data is updated.*
`
