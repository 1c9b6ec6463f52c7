package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/catalog"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/dataset"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/pkg/console"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Logger compartilhado; o nível é ajustado pela flag --log-level
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	// Inicializa os repositórios
	datasetRepo := dataset.NewCSVRepository(logger)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		datasetRepo,
		exportRepo,
		catalog.NewStaticCatalog(),
		consoleImpl,
		logger,
	)

	app.SetReportUseCase(reportUseCase)
	app.SetConfigRepository(configRepo)
	app.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Executa o aplicativo
	if err := app.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
