package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
)

// SummaryFileName is the name of the run summary written next to the reports.
const SummaryFileName = "run-summary.json"

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToMarkdown grava o documento Markdown do relatório.
func (r *ExportRepositoryImpl) ExportToMarkdown(report *entity.Report, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report.FileName, outputDir, "md")
	if err != nil {
		return "", err
	}

	err = writeFile(outputFilename, func(w io.Writer) error {
		_, err := io.WriteString(w, report.Markdown)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("error writing Markdown file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportSummaryToJSON grava o resumo da execução.
func (r *ExportRepositoryImpl) ExportSummaryToJSON(summary *entity.RunSummary, outputDir string) (string, error) {
	outputFilename, err := generateFilename(strings.TrimSuffix(SummaryFileName, ".json"), outputDir, "json")
	if err != nil {
		return "", err
	}

	err = writeFile(outputFilename, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	})
	if err != nil {
		return "", fmt.Errorf("error writing JSON file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// createFile abre o arquivo de saída; substituído nos testes.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeFile só reporta sucesso se a escrita e o Close funcionarem.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", filepath.Base(path), cerr)
		}
	}()
	return write(file)
}

// generateFilename monta o caminho do arquivo e garante que o diretório exista.
// O nome não leva timestamp para que execuções repetidas sobrescrevam o mesmo arquivo.
func generateFilename(base, dir, ext string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("empty file name")
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)), nil
}
