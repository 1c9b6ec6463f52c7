package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/diillson/aws-cost-report-go/internal/application/report"
	"github.com/diillson/aws-cost-report-go/internal/domain/analysis"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// ReportUseCase drives one report run: load, analyze and write every service.
type ReportUseCase struct {
	datasetRepo repository.DatasetRepository
	exportRepo  repository.ExportRepository
	catalog     repository.SuggestionCatalog
	publisher   repository.ReportPublisher
	console     types.ConsoleInterface
	log         logrus.FieldLogger
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	datasetRepo repository.DatasetRepository,
	exportRepo repository.ExportRepository,
	catalog repository.SuggestionCatalog,
	console types.ConsoleInterface,
	log logrus.FieldLogger,
) *ReportUseCase {
	return &ReportUseCase{
		datasetRepo: datasetRepo,
		exportRepo:  exportRepo,
		catalog:     catalog,
		console:     console,
		log:         log,
	}
}

// SetCatalog troca o catálogo de sugestões (ex.: arquivo informado via flag).
func (uc *ReportUseCase) SetCatalog(c repository.SuggestionCatalog) {
	uc.catalog = c
}

// SetPublisher habilita o envio dos arquivos gerados (ex.: S3).
func (uc *ReportUseCase) SetPublisher(p repository.ReportPublisher) {
	uc.publisher = p
}

// serviceOutcome é o resultado de um serviço; exatamente um dos campos é preenchido.
type serviceOutcome struct {
	result  *entity.ServiceResult
	failure *entity.ServiceFailure
}

// Run executa o pipeline completo. Só retorna erro para falhas que impedem a
// execução inteira (configuração, entrada ilegível, resumo não gravado);
// falhas de um serviço ficam em RunSummary.Failed.
func (uc *ReportUseCase) Run(ctx context.Context, cfg types.ReportConfig) (*entity.RunSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	status := uc.console.Status(fmt.Sprintf("Loading cost data from %s...", cfg.InputPath))
	ds, err := uc.datasetRepo.LoadDataset(cfg.InputPath)
	status.Stop()
	if err != nil {
		return nil, err
	}

	uc.reportWarnings(ds)
	if len(ds.Services) == 0 {
		uc.console.LogWarning("No services found in %s", cfg.InputPath)
	}

	summary := uc.generate(ctx, cfg, ds)

	uc.displaySummary(summary)
	if cfg.ShowTrends {
		uc.displayTrends(ds)
	}

	if cfg.WriteSummary {
		path, err := uc.exportRepo.ExportSummaryToJSON(summary, cfg.OutputDir)
		if err != nil {
			return summary, &types.WriteError{Service: "run summary", Path: cfg.OutputDir, Err: err}
		}
		uc.console.LogSuccess("Run summary written to %s", path)
		if uc.publisher != nil {
			if _, err := uc.publisher.Publish(ctx, path); err != nil {
				uc.console.LogError("Failed to publish run summary: %s", err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// generate processa os serviços com no máximo cfg.Workers em paralelo.
// A ordem do resumo é sempre a ordem de entrada.
func (uc *ReportUseCase) generate(ctx context.Context, cfg types.ReportConfig, ds *entity.Dataset) *entity.RunSummary {
	summary := &entity.RunSummary{
		Input:     cfg.InputPath,
		OutputDir: cfg.OutputDir,
		Periods:   make([]string, len(ds.Periods)),
		Services:  len(ds.Services),
		Succeeded: []entity.ServiceResult{},
		Failed:    []entity.ServiceFailure{},
		Warnings:  ds.Warnings,
	}
	for i, p := range ds.Periods {
		summary.Periods[i] = p.Label
	}
	if len(ds.Services) == 0 {
		return summary
	}

	names := make([]string, len(ds.Services))
	for i, svc := range ds.Services {
		names[i] = svc.Name
	}
	fileNames := ReportFileNames(names)

	renderer := report.NewRenderer(uc.catalog, cfg.Thresholds)
	outcomes := make([]serviceOutcome, len(ds.Services))
	progress := uc.console.ProgressWithTotal(len(ds.Services), "Generating reports")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range ds.Services {
		i := i
		g.Go(func() error {
			defer progress.Increment()
			outcomes[i] = uc.processService(gctx, cfg, renderer, ds.Periods, ds.Services[i], fileNames[i])
			return nil
		})
	}
	// Os workers nunca retornam erro: falhas são registradas por serviço.
	_ = g.Wait()
	progress.Stop()

	for _, o := range outcomes {
		if o.failure != nil {
			summary.Failed = append(summary.Failed, *o.failure)
			continue
		}
		summary.Succeeded = append(summary.Succeeded, *o.result)
	}
	return summary
}

// processService gera, grava e (opcionalmente) publica o relatório de um serviço.
// Panics são convertidos em falha do estágio corrente.
func (uc *ReportUseCase) processService(
	ctx context.Context,
	cfg types.ReportConfig,
	renderer *report.Renderer,
	periods []entity.Period,
	svc entity.Service,
	fileName string,
) (outcome serviceOutcome) {
	log := uc.log.WithField("service", svc.Name)
	stage := types.StageAnalyze

	fail := func(err error) serviceOutcome {
		procErr := &types.ServiceProcessingError{Service: svc.Name, Stage: stage, Err: err}
		log.WithField("stage", stage).WithError(err).Error("service failed")
		return serviceOutcome{failure: &entity.ServiceFailure{
			Service: svc.Name,
			Stage:   stage,
			Reason:  err.Error(),
			Err:     procErr,
		}}
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = fail(fmt.Errorf("panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	trends := analysis.AnalyzeService(svc)

	stage = types.StageSelect
	sel := analysis.Select(trends, cfg.MaxItems)

	stage = types.StageChart
	chart, err := analysis.BuildChart(sel, periods, analysis.ChartOptions{
		Title:    fmt.Sprintf("%s monthly cost trend", svc.Name),
		Headroom: cfg.Headroom,
	})
	if err != nil {
		return fail(err)
	}

	stage = types.StageRender
	rep, err := renderer.Render(svc, periods, sel, chart)
	if err != nil {
		return fail(err)
	}
	rep.FileName = fileName

	stage = types.StageWrite
	result := &entity.ServiceResult{Service: svc.Name, Files: []string{}}

	mdPath, err := uc.exportRepo.ExportToMarkdown(rep, cfg.OutputDir)
	if err != nil {
		return fail(&types.WriteError{Service: svc.Name, Path: filepath.Join(cfg.OutputDir, fileName+".md"), Err: err})
	}
	result.Files = append(result.Files, mdPath)

	if cfg.WantsFormat(types.FormatPDF) {
		pdfPath, err := uc.exportRepo.ExportToPDF(rep, cfg.OutputDir)
		if err != nil {
			return fail(&types.WriteError{Service: svc.Name, Path: filepath.Join(cfg.OutputDir, fileName+".pdf"), Err: err})
		}
		result.Files = append(result.Files, pdfPath)
	}

	if uc.publisher != nil {
		stage = types.StagePublish
		for _, path := range result.Files {
			uri, err := uc.publisher.Publish(ctx, path)
			if err != nil {
				return fail(&types.WriteError{Service: svc.Name, Path: path, Err: err})
			}
			result.Published = append(result.Published, uri)
		}
	}

	log.WithFields(logrus.Fields{"files": len(result.Files), "trend": rep.Trend}).Debug("report generated")
	return serviceOutcome{result: result}
}

func (uc *ReportUseCase) reportWarnings(ds *entity.Dataset) {
	if len(ds.Warnings) == 0 {
		return
	}
	for _, w := range ds.Warnings {
		uc.log.WithFields(logrus.Fields{
			"line":    w.Line,
			"column":  w.Column,
			"service": w.Service,
			"item":    w.Item,
			"value":   w.Value,
		}).Warn(w.Reason)
	}
	uc.console.LogWarning("%d cell(s) in %s could not be read as amounts and were counted as 0", len(ds.Warnings), ds.Source)
}

// displaySummary mostra a tabela final com o status de cada serviço.
func (uc *ReportUseCase) displaySummary(summary *entity.RunSummary) {
	if summary.Services == 0 {
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Status")
	table.AddColumn("Details")

	for _, s := range summary.Succeeded {
		details := make([]string, 0, len(s.Files))
		for _, f := range s.Files {
			details = append(details, filepath.Base(f))
		}
		table.AddRow(s.Service, pterm.FgGreen.Sprint("ok"), strings.Join(details, ", "))
	}
	for _, f := range summary.Failed {
		table.AddRow(f.Service, pterm.FgRed.Sprintf("failed (%s)", f.Stage), f.Reason)
	}

	uc.console.Println(table.Render())

	if summary.HasFailures() {
		uc.console.LogError("%d of %d service report(s) failed", len(summary.Failed), summary.Services)
		return
	}
	uc.console.LogSuccess("Generated %d service report(s) in %s", len(summary.Succeeded), summary.OutputDir)
}

// displayTrends mostra as barras de tendência do item agregado de cada serviço.
func (uc *ReportUseCase) displayTrends(ds *entity.Dataset) {
	for _, svc := range ds.Services {
		monthlyCosts := make([]types.MonthlyCost, len(ds.Periods))
		for i, p := range ds.Periods {
			monthlyCosts[i] = types.MonthlyCost{Month: p.Label, Cost: svc.Aggregate.Amounts[i]}
		}
		uc.console.DisplayTrendBars(svc.Name, monthlyCosts)
	}
}

// FailureErrors returns the underlying errors of the failed services, in input order.
func FailureErrors(summary *entity.RunSummary) error {
	errs := make([]error, 0, len(summary.Failed))
	for _, f := range summary.Failed {
		if f.Err != nil {
			errs = append(errs, f.Err)
			continue
		}
		errs = append(errs, fmt.Errorf("service %q failed at %s: %s", f.Service, f.Stage, f.Reason))
	}
	return errors.Join(errs...)
}
