package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/catalog"
	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

// envFlags mapeia variáveis de ambiente para flags. Valores vindos do
// ambiente não marcam a flag como alterada, então o arquivo de configuração
// ainda tem precedência sobre eles.
var envFlags = map[string]string{
	"INPUT_CSV_PATH":   "input",
	"OUTPUT_DOCS_PATH": "dir",
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	configRepo    repository.ConfigRepository
	logger        *logrus.Logger
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		logger:  logrus.New(),
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "aws-cost-report",
		Short:         "Generate per-service AWS cost trend reports from a cost CSV",
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Report version: %s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("env-file", ".env", "Path to a .env file with INPUT_CSV_PATH / OUTPUT_DOCS_PATH")
	flags.StringP("input", "i", "", "Cost CSV to analyze (env: INPUT_CSV_PATH)")
	flags.StringP("dir", "d", "docs", "Directory to save the reports (env: OUTPUT_DOCS_PATH)")
	flags.IntP("max-items", "m", types.DefaultMaxItems, "Maximum number of cost items shown besides the service total")
	flags.Float64("headroom", types.DefaultHeadroom, "Chart y-axis headroom factor over the largest amount (> 1)")
	flags.IntP("workers", "w", types.DefaultWorkers, "Number of services processed in parallel")
	flags.StringSliceP("report-type", "y", []string{types.FormatMarkdown}, "Report types: md, pdf (Markdown is always written)")
	flags.Bool("summary", false, "Write run-summary.json next to the reports")
	flags.Bool("trend", false, "Display the monthly trend of every service as bars")
	flags.StringP("suggestions-file", "s", "", "YAML, TOML or JSON file overriding the optimization suggestions")
	flags.String("log-level", "warning", "Log level for diagnostic output (debug, info, warning, error)")
	flags.String("s3-bucket", "", "Publish generated files to this S3 bucket")
	flags.String("s3-prefix", "", "Key prefix used when publishing to S3")
	flags.StringP("profile", "p", "", "AWS profile used to publish to S3")
	flags.StringP("region", "r", "", "AWS region used to publish to S3")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application. ctx é cancelado em SIGINT/SIGTERM.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs monta os argumentos com a precedência flag > arquivo de configuração > env > padrão.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
	}
	if err := mapEnvVarsToFlags(envFlags, flags); err != nil {
		return nil, err
	}

	configFile, _ := flags.GetString("config-file")
	input, _ := flags.GetString("input")
	dir, _ := flags.GetString("dir")
	maxItems, _ := flags.GetInt("max-items")
	headroom, _ := flags.GetFloat64("headroom")
	workers, _ := flags.GetInt("workers")
	reportType, _ := flags.GetStringSlice("report-type")
	summary, _ := flags.GetBool("summary")
	trend, _ := flags.GetBool("trend")
	suggestionsFile, _ := flags.GetString("suggestions-file")
	logLevel, _ := flags.GetString("log-level")
	s3Bucket, _ := flags.GetString("s3-bucket")
	s3Prefix, _ := flags.GetString("s3-prefix")
	profile, _ := flags.GetString("profile")
	region, _ := flags.GetString("region")

	args := &types.CLIArgs{
		ConfigFile:      configFile,
		Input:           input,
		Dir:             dir,
		MaxItems:        maxItems,
		Headroom:        headroom,
		Workers:         workers,
		ReportType:      reportType,
		Summary:         summary,
		Trend:           trend,
		SuggestionsFile: suggestionsFile,
		LogLevel:        logLevel,
		S3Bucket:        s3Bucket,
		S3Prefix:        s3Prefix,
		Profile:         profile,
		Region:          region,
	}

	if configFile != "" {
		if app.configRepo == nil {
			return nil, fmt.Errorf("%w: no config repository available", types.ErrInvalidConfig)
		}
		cfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(args, cfg, flags)
	}

	if args.Dir != "" {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// mapEnvVarsToFlags aplica as variáveis de ambiente às flags não informadas.
func mapEnvVarsToFlags(vars map[string]string, flags *pflag.FlagSet) error {
	for env, name := range vars {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("the %s flag doesn't exist", name)
		}
		if flag.Changed {
			continue
		}
		if val := os.Getenv(env); val != "" {
			if err := flag.Value.Set(val); err != nil {
				return fmt.Errorf("failed to set the %s flag from %s: %w", name, env, err)
			}
		}
	}
	return nil
}

// mergeConfig copia do arquivo apenas os valores cujas flags não foram informadas.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, flags *pflag.FlagSet) {
	unset := func(name string) bool { return !flags.Changed(name) }

	if unset("input") && cfg.Input != "" {
		args.Input = cfg.Input
	}
	if unset("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
	if unset("max-items") && cfg.MaxItems != nil {
		args.MaxItems = *cfg.MaxItems
	}
	if unset("headroom") && cfg.Headroom != 0 {
		args.Headroom = cfg.Headroom
	}
	if unset("workers") && cfg.Workers != 0 {
		args.Workers = cfg.Workers
	}
	if unset("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if unset("summary") && cfg.Summary {
		args.Summary = true
	}
	if unset("trend") && cfg.Trend {
		args.Trend = true
	}
	if unset("suggestions-file") && cfg.SuggestionsFile != "" {
		args.SuggestionsFile = cfg.SuggestionsFile
	}
	if unset("log-level") && cfg.LogLevel != "" {
		args.LogLevel = cfg.LogLevel
	}
	if unset("s3-bucket") && cfg.S3Bucket != "" {
		args.S3Bucket = cfg.S3Bucket
	}
	if unset("s3-prefix") && cfg.S3Prefix != "" {
		args.S3Prefix = cfg.S3Prefix
	}
	if unset("profile") && cfg.Profile != "" {
		args.Profile = cfg.Profile
	}
	if unset("region") && cfg.Region != "" {
		args.Region = cfg.Region
	}
	args.Thresholds = cfg.Thresholds
}

// setupLogger ajusta nível e formato do logger compartilhado pelos adapters.
func (app *CLIApp) setupLogger(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%w: invalid log level %q", types.ErrInvalidConfig, level)
	}
	app.logger.SetLevel(logLevel)
	app.logger.SetOutput(os.Stderr)
	app.logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "01-02-2006 15:04:05",
	})
	return nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	if app.reportUseCase == nil {
		return fmt.Errorf("report use case not configured")
	}

	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}
	if err := app.setupLogger(cliArgs.LogLevel); err != nil {
		return err
	}

	ctx := cmd.Context()

	if cliArgs.SuggestionsFile != "" {
		c, err := catalog.NewCatalog(cliArgs.SuggestionsFile)
		if err != nil {
			return err
		}
		app.reportUseCase.SetCatalog(c)
	}

	if cliArgs.S3Bucket != "" {
		if cliArgs.Profile != "" && !slices.Contains(aws.ListProfiles(), cliArgs.Profile) {
			app.logger.Warnf("Profile '%s' not found in AWS configuration", cliArgs.Profile)
		}
		publisher, err := aws.NewS3Publisher(ctx, cliArgs.Profile, cliArgs.Region, cliArgs.S3Bucket, cliArgs.S3Prefix, app.logger)
		if err != nil {
			return err
		}
		app.reportUseCase.SetPublisher(publisher)
	}

	summary, err := app.reportUseCase.Run(ctx, cliArgs.ReportConfig())
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d service report(s) failed: %w", len(summary.Failed), summary.Services, usecase.FailureErrors(summary))
	}
	return nil
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

// SetConfigRepository define o repositório usado para --config-file.
func (app *CLIApp) SetConfigRepository(repo repository.ConfigRepository) {
	app.configRepo = repo
}

// SetLogger compartilha o logger dos adapters com a CLI, que ajusta seu nível.
func (app *CLIApp) SetLogger(logger *logrus.Logger) {
	app.logger = logger
}
