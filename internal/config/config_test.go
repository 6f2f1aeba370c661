package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcochurn/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "CHURN_ROOT_DIR", "CHURN_INPUT_FILE", "CHURN_PROCESSED_DIR", "CHURN_FIGURES_DIR", "CHURN_HEAD_ROWS", "LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PathConfig{
		RootDir:      "telco_churn_analysis",
		InputFile:    "data/raw/Telco-customer-Churn.csv",
		ProcessedDir: "data/processed",
		FiguresDir:   "figures",
	}, cfg.Paths)
	assert.Equal(t, 5, cfg.Report.HeadRows)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, filepath.Join("telco_churn_analysis", "data", "raw", "Telco-customer-Churn.csv"), cfg.InputPath())
	assert.Equal(t, filepath.Join("telco_churn_analysis", "data", "processed", "kpis.csv"), cfg.ProcessedPath("kpis.csv"))
	assert.Equal(t, filepath.Join("telco_churn_analysis", "figures", "correlation_heatmap.png"), filepath.Join(cfg.FiguresDir(), "correlation_heatmap.png"))
}

func TestLoadOverrides(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "churn.xlsx")
	t.Setenv("CHURN_ROOT_DIR", "out")
	t.Setenv("CHURN_INPUT_FILE", abs)
	t.Setenv("CHURN_HEAD_ROWS", "10")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, abs, cfg.InputPath())
	assert.Equal(t, filepath.Join("out", "figures", "x.png"), filepath.Join(cfg.FiguresDir(), "x.png"))
	assert.Equal(t, 10, cfg.Report.HeadRows)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CHURN_HEAD_ROWS", "-3")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsUnparsableValues(t *testing.T) {
	t.Setenv("CHURN_HEAD_ROWS", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	var parseErr *envconfig.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "LOUD")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

// unsetEnv clears keys for the duration of the test; t.Setenv registers the restore.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
