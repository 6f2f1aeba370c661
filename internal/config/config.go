package config

import (
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"telcochurn/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathConfig   `validate:"required"`
	Report  ReportConfig `validate:"required"`
	Logging LoggingConfig
}

// PathConfig holds file system paths. Input and output paths are relative to RootDir
// unless absolute.
type PathConfig struct {
	RootDir      string `envconfig:"ROOT_DIR" default:"telco_churn_analysis" validate:"required"`
	InputFile    string `envconfig:"INPUT_FILE" default:"data/raw/Telco-customer-Churn.csv" validate:"required"`
	ProcessedDir string `envconfig:"PROCESSED_DIR" default:"data/processed" validate:"required"`
	FiguresDir   string `envconfig:"FIGURES_DIR" default:"figures" validate:"required"`
}

// ReportConfig holds console report settings
type ReportConfig struct {
	HeadRows int `envconfig:"HEAD_ROWS" default:"5" validate:"gte=0,lte=100"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"INFO" validate:"oneof=ERROR WARN INFO DEBUG TRACE error warn info debug trace"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	if err := envconfig.Process("CHURN", &config.Paths); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to load path configuration")
	}
	if err := envconfig.Process("CHURN", &config.Report); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to load report configuration")
	}
	// LOG_LEVEL is shared with the logger and carries no prefix
	if err := envconfig.Process("", &config.Logging); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to load logging configuration")
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

var validate = validator.New()

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

// InputPath resolves the raw input file
func (c *Config) InputPath() string {
	return c.resolve(c.Paths.InputFile)
}

// ProcessedPath resolves a file name inside the processed data directory
func (c *Config) ProcessedPath(name string) string {
	return filepath.Join(c.resolve(c.Paths.ProcessedDir), name)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.RootDir, p)
}

// FiguresDir resolves the figures directory
func (c *Config) FiguresDir() string {
	return c.resolve(c.Paths.FiguresDir)
}
