package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// Rótulos aceitos para as três colunas fixas (inglês e o formato original em japonês).
var fixedColumns = [3][]string{
	{"service", "サービス"},
	{"item", "費用項目"},
	{"description", "説明"},
}

// periodColumnRegex aceita "cost (2025 year 3 month)" e "費用（2025年3月）".
var periodColumnRegex = regexp.MustCompile(`^(?i:cost\s*\(\s*(\d{4})\s*year\s*(\d{1,2})\s*month\s*\))$|^費用（(\d{4})年(\d{1,2})月）$`)

// CSVRepositoryImpl implementa o DatasetRepository sobre arquivos CSV.
type CSVRepositoryImpl struct {
	log logrus.FieldLogger
}

// NewCSVRepository cria uma nova implementação do DatasetRepository.
func NewCSVRepository(log logrus.FieldLogger) repository.DatasetRepository {
	return &CSVRepositoryImpl{log: log}
}

// LoadDataset abre o arquivo e delega para Parse.
func (r *CSVRepositoryImpl) LoadDataset(path string) (*entity.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &types.MalformedInputError{Source: path, Reason: "cannot open input", Err: err}
	}
	defer file.Close()

	return r.Parse(file, path)
}

// columnRef liga uma coluna de período do arquivo ao índice do período no dataset.
type columnRef struct {
	index  int
	header string
}

// Parse reads a cost table from rd. Only header problems and read failures
// of the underlying reader are fatal; bad cells (stray quotes included)
// become zero and are reported in Dataset.Warnings.
func (r *CSVRepositoryImpl) Parse(rd io.Reader, source string) (*entity.Dataset, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	// Aspas soltas ficam no texto da célula, que vira 0 com aviso em parseAmount.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &types.MalformedInputError{Source: source, Line: 1, Reason: "missing header row"}
		}
		return nil, &types.MalformedInputError{Source: source, Line: 1, Reason: "cannot read header row", Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	periods, columns, err := r.parseHeader(header, source)
	if err != nil {
		return nil, err
	}

	ds := &entity.Dataset{Source: source, Periods: periods}
	byName := make(map[string]int)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return nil, &types.MalformedInputError{Source: source, Line: line, Reason: "cannot read row", Err: err}
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		name := cell(record, 0)
		if name == "" {
			r.log.WithField("line", line).Warn("skipping row without service name")
			ds.Warnings = append(ds.Warnings, entity.InvalidAmountWarning{
				Line: line, Column: header[0], Reason: "row without service name skipped",
			})
			continue
		}

		item := entity.CostItem{
			Service:     name,
			Label:       cell(record, 1),
			Description: cell(record, 2),
			Amounts:     make([]float64, len(periods)),
			Line:        line,
		}
		for j, col := range columns {
			amount, reason := parseAmount(record, col.index)
			if reason != "" {
				w := entity.InvalidAmountWarning{
					Line:    line,
					Column:  col.header,
					Service: name,
					Item:    item.Label,
					Value:   cell(record, col.index),
					Reason:  reason,
				}
				r.log.WithFields(logrus.Fields{"line": line, "column": col.header, "service": name}).Warn(w.Error())
				ds.Warnings = append(ds.Warnings, w)
			}
			item.Amounts[j] = amount
		}

		idx, seen := byName[name]
		if !seen {
			// A primeira linha de cada serviço é o item agregado.
			item.IsAggregate = true
			if item.Label != entity.AggregateLabel {
				r.log.WithFields(logrus.Fields{"service": name, "item": item.Label}).
					Warnf("first row of service is not labeled %q, using it as the aggregate", entity.AggregateLabel)
			}
			byName[name] = len(ds.Services)
			ds.Services = append(ds.Services, entity.Service{Name: name, Aggregate: item})
			continue
		}
		ds.Services[idx].Items = append(ds.Services[idx].Items, item)
	}

	r.log.WithFields(logrus.Fields{
		"source":   source,
		"periods":  len(periods),
		"services": len(ds.Services),
		"warnings": len(ds.Warnings),
	}).Debug("dataset loaded")

	return ds, nil
}

// parseHeader valida as colunas fixas e extrai os períodos, em ordem estritamente crescente.
func (r *CSVRepositoryImpl) parseHeader(header []string, source string) ([]entity.Period, []columnRef, error) {
	if len(header) < len(fixedColumns) {
		return nil, nil, &types.MalformedInputError{
			Source: source, Line: 1,
			Reason: fmt.Sprintf("expected at least %d columns (service, item, description), got %d", len(fixedColumns), len(header)),
		}
	}
	for i, accepted := range fixedColumns {
		if !matchesAny(header[i], accepted) {
			return nil, nil, &types.MalformedInputError{
				Source: source, Line: 1,
				Reason: fmt.Sprintf("column %d must be %q, got %q", i+1, accepted[0], header[i]),
			}
		}
	}

	var periods []entity.Period
	var columns []columnRef
	for i := len(fixedColumns); i < len(header); i++ {
		label := strings.TrimSpace(header[i])
		period, ok := parsePeriod(label)
		if !ok {
			r.log.WithField("column", label).Debug("ignoring non-period column")
			continue
		}
		if len(periods) > 0 && !periods[len(periods)-1].Before(period) {
			r.log.WithFields(logrus.Fields{"column": label, "previous": periods[len(periods)-1].Label}).
				Warn("ignoring period column that does not follow the previous one")
			continue
		}
		periods = append(periods, period)
		columns = append(columns, columnRef{index: i, header: label})
	}

	if len(periods) == 0 {
		return nil, nil, &types.MalformedInputError{Source: source, Line: 1, Reason: "no period columns found"}
	}
	return periods, columns, nil
}

func parsePeriod(label string) (entity.Period, bool) {
	m := periodColumnRegex.FindStringSubmatch(label)
	if m == nil {
		return entity.Period{}, false
	}
	yearStr, monthStr := m[1], m[2]
	if yearStr == "" {
		yearStr, monthStr = m[3], m[4]
	}
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	if month < 1 || month > 12 {
		return entity.Period{}, false
	}
	return entity.NewPeriod(year, month), true
}

// parseAmount devolve o valor da célula ou zero com o motivo da rejeição.
func parseAmount(record []string, index int) (float64, string) {
	if index >= len(record) {
		return 0, "missing"
	}
	raw := strings.TrimSpace(record[index])
	if raw == "" {
		return 0, "empty"
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "not a number"
	}
	if v < 0 {
		return 0, "negative"
	}
	return v, ""
}

func cell(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func matchesAny(value string, accepted []string) bool {
	value = strings.TrimSpace(value)
	for _, a := range accepted {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}
