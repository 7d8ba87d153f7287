package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration
type Config struct {
	Inputs   InputsConfig   `yaml:"inputs" envconfig:"INPUTS"`
	Outputs  OutputsConfig  `yaml:"outputs" envconfig:"OUTPUTS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// InputsConfig locates the source tables consumed by the pipeline
type InputsConfig struct {
	DeveloperPanel  string `yaml:"developer_panel" envconfig:"DEVELOPER_PANEL" default:"data/developer_genre_shares.csv" validate:"required"`
	PublisherPanel  string `yaml:"publisher_panel" envconfig:"PUBLISHER_PANEL" default:"data/publisher_genre_shares.csv" validate:"required"`
	CatalogDB       string `yaml:"catalog_db" envconfig:"CATALOG_DB" default:"data/moby_games.db" validate:"required"`
	Acquisitions    string `yaml:"acquisitions" envconfig:"ACQUISITIONS" default:"data/acquisitions.csv" validate:"required"`
	GameCountsCSV   string `yaml:"game_counts" envconfig:"GAME_COUNTS" default:"data/game_counts.csv"`
}

// OutputsConfig locates the datasets the pipeline writes
type OutputsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
}

// AnalysisConfig holds the analysis window and stratification settings
type AnalysisConfig struct {
	YearMin    int   `yaml:"year_min" envconfig:"YEAR_MIN" default:"1990" validate:"gte=1900,lte=2100"`
	YearMax    int   `yaml:"year_max" envconfig:"YEAR_MAX" default:"2023" validate:"gte=1900,lte=2100,gtefield=YearMin"`
	AgeMax     int   `yaml:"age_max" envconfig:"AGE_MAX" default:"30" validate:"gte=0"`
	Thresholds []int `yaml:"thresholds" envconfig:"THRESHOLDS" default:"1,2,5,10" validate:"min=1,dive,gte=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/pipeline.log"`
}

// Load loads configuration from environment variables and an optional config file.
// File values fill in anything the environment left at its default.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("VGP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration invariants
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for i := 1; i < len(c.Analysis.Thresholds); i++ {
		if c.Analysis.Thresholds[i] <= c.Analysis.Thresholds[i-1] {
			return fmt.Errorf("thresholds must be strictly increasing, got %v", c.Analysis.Thresholds)
		}
	}
	return nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Inputs.DeveloperPanel == "" {
		envConfig.Inputs.DeveloperPanel = fileConfig.Inputs.DeveloperPanel
	}
	if envConfig.Inputs.PublisherPanel == "" {
		envConfig.Inputs.PublisherPanel = fileConfig.Inputs.PublisherPanel
	}
	if envConfig.Inputs.CatalogDB == "" {
		envConfig.Inputs.CatalogDB = fileConfig.Inputs.CatalogDB
	}
	if envConfig.Inputs.Acquisitions == "" {
		envConfig.Inputs.Acquisitions = fileConfig.Inputs.Acquisitions
	}
	if envConfig.Inputs.GameCountsCSV == "" {
		envConfig.Inputs.GameCountsCSV = fileConfig.Inputs.GameCountsCSV
	}
	if envConfig.Outputs.DataDir == "" {
		envConfig.Outputs.DataDir = fileConfig.Outputs.DataDir
	}
	if envConfig.Outputs.ReportsDir == "" {
		envConfig.Outputs.ReportsDir = fileConfig.Outputs.ReportsDir
	}
	if envConfig.Outputs.LogsDir == "" {
		envConfig.Outputs.LogsDir = fileConfig.Outputs.LogsDir
	}
	if envConfig.Analysis.YearMin == 0 {
		envConfig.Analysis.YearMin = fileConfig.Analysis.YearMin
	}
	if envConfig.Analysis.YearMax == 0 {
		envConfig.Analysis.YearMax = fileConfig.Analysis.YearMax
	}
	if envConfig.Analysis.AgeMax == 0 {
		envConfig.Analysis.AgeMax = fileConfig.Analysis.AgeMax
	}
	if len(envConfig.Analysis.Thresholds) == 0 {
		envConfig.Analysis.Thresholds = fileConfig.Analysis.Thresholds
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}

// getConfigFilePath returns the config file path, checking env override first
func getConfigFilePath() string {
	if path := os.Getenv("VGP_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}
