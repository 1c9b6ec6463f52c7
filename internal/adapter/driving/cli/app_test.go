package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

func newTestApp(t *testing.T, argv ...string) *CLIApp {
	t.Helper()
	app := NewCLIApp("test")
	app.SetConfigRepository(config.NewConfigRepository())
	require.NoError(t, app.rootCmd.ParseFlags(argv))
	return app
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("INPUT_CSV_PATH", "")
	t.Setenv("OUTPUT_DOCS_PATH", "")
}

func TestParseArgsDefaults(t *testing.T) {
	clearEnv(t)
	app := newTestApp(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"))

	args, err := app.parseArgs(app.rootCmd)
	require.NoError(t, err)

	abs, _ := filepath.Abs("docs")
	assert.Equal(t, abs, args.Dir)
	assert.Empty(t, args.Input)
	assert.Equal(t, types.DefaultMaxItems, args.MaxItems)
	assert.Equal(t, types.DefaultWorkers, args.Workers)
	assert.Equal(t, []string{"md"}, args.ReportType)

	cfg := args.ReportConfig()
	assert.Equal(t, types.DefaultTrendThresholds(), cfg.Thresholds)
	assert.ErrorIs(t, cfg.Validate(), types.ErrNoInputFile)
}

func TestParseArgsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_CSV_PATH", "from-env.csv")
	t.Setenv("OUTPUT_DOCS_PATH", filepath.Join(t.TempDir(), "env-docs"))
	app := newTestApp(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"))

	args, err := app.parseArgs(app.rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", args.Input)
	assert.Equal(t, "env-docs", filepath.Base(args.Dir))
}

func TestParseArgsDotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("INPUT_CSV_PATH")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("INPUT_CSV_PATH=dotenv.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("INPUT_CSV_PATH") })

	app := newTestApp(t, "--env-file", envFile)
	args, err := app.parseArgs(app.rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "dotenv.csv", args.Input)
}

func TestParseArgsPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_CSV_PATH", "from-env.csv")
	t.Setenv("OUTPUT_DOCS_PATH", "env-docs")

	cfgFile := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
input: from-config.csv
dir: config-docs
max_items: 7
workers: 4
report_type: [md, pdf]
thresholds:
  rapid_growth: 1.5
  growth: 1.1
  decline: 0.8
  high_variability: 0.3
`), 0o644))

	app := newTestApp(t,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--config-file", cfgFile,
		"--max-items", "2",
		"--dir", "flag-docs",
	)

	args, err := app.parseArgs(app.rootCmd)
	require.NoError(t, err)

	// flag > config
	assert.Equal(t, 2, args.MaxItems)
	assert.Equal(t, "flag-docs", filepath.Base(args.Dir))
	// config > env
	assert.Equal(t, "from-config.csv", args.Input)
	// config > default
	assert.Equal(t, 4, args.Workers)
	assert.Equal(t, []string{"md", "pdf"}, args.ReportType)

	cfg := args.ReportConfig()
	assert.True(t, cfg.WantsFormat(types.FormatPDF))
	assert.InDelta(t, 1.5, cfg.Thresholds.RapidGrowth, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func TestParseArgsConfigMaxItemsZero(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	files := map[string]string{
		"zero.yaml": "max_items: 0\n",
		"zero.toml": "max_items = 0\n",
		"zero.json": `{"max_items": 0}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfgFile := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o644))

			app := newTestApp(t,
				"--env-file", filepath.Join(dir, "missing.env"),
				"--config-file", cfgFile,
				"--input", "costs.csv",
			)
			args, err := app.parseArgs(app.rootCmd)
			require.NoError(t, err)
			assert.Equal(t, 0, args.MaxItems)
			assert.NoError(t, args.ReportConfig().Validate())
		})
	}

	// Sem a chave, vale o padrão da flag.
	cfgFile := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("workers: 2\n"), 0o644))
	app := newTestApp(t, "--env-file", filepath.Join(dir, "missing.env"), "--config-file", cfgFile)
	args, err := app.parseArgs(app.rootCmd)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultMaxItems, args.MaxItems)
}

func TestParseArgsBadConfigFile(t *testing.T) {
	clearEnv(t)
	app := newTestApp(t,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--config-file", filepath.Join(t.TempDir(), "missing.toml"),
	)

	_, err := app.parseArgs(app.rootCmd)
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	app := NewCLIApp("test")
	assert.NoError(t, app.setupLogger("debug"))
	assert.Equal(t, "debug", app.logger.GetLevel().String())
	assert.ErrorIs(t, app.setupLogger("loud"), types.ErrInvalidConfig)
}

func TestRunCommandRequiresUseCase(t *testing.T) {
	app := NewCLIApp("test")
	assert.Error(t, app.runCommand(app.rootCmd, nil))
}
