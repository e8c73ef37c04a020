package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "finclusion.yaml"

// Config represents the top-level finclusion.yaml configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Validation ValidationConfig `yaml:"validation"`
	Target     TargetConfig     `yaml:"target"`
	Log        LogConfig        `yaml:"log"`
	Changelog  ChangelogConfig  `yaml:"changelog"`
	Git        GitConfig        `yaml:"git"`
}

// DataConfig locates the dataset files. Relative paths resolve against the
// directory holding finclusion.yaml.
type DataConfig struct {
	RawPath       string `yaml:"raw_path"`
	RefCodesPath  string `yaml:"reference_codes_path"`
	ProcessedPath string `yaml:"processed_path"`
	ForecastPath  string `yaml:"forecast_path"`
}

// ValidationConfig controls how strictly new records are checked.
type ValidationConfig struct {
	RequireParentEvent bool `yaml:"require_parent_event"`
}

// TargetConfig is the national financial-inclusion target the forecasts are
// measured against.
type TargetConfig struct {
	Indicator string  `yaml:"indicator"`
	Value     float64 `yaml:"value"`
	Year      int     `yaml:"year"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ChangelogConfig controls the audit log of dataset changes.
type ChangelogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a finclusion.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard project layout.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			RawPath:       filepath.Join("data", "raw", "ethiopia_fi_unified_data.csv"),
			RefCodesPath:  filepath.Join("data", "raw", "reference_codes.csv"),
			ProcessedPath: filepath.Join("data", "processed", "ethiopia_fi_enriched.csv"),
			ForecastPath:  filepath.Join("forecasts", "account_ownership_forecasts.csv"),
		},
		Validation: ValidationConfig{
			RequireParentEvent: true,
		},
		Target: TargetConfig{
			Indicator: "ACC_OWNERSHIP",
			Value:     70,
			Year:      2025,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Changelog: ChangelogConfig{
			Enabled: true,
			Path:    filepath.Join("logs", "changes.csv"),
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Finclusion Data",
			AuthorEmail: "data@finclusion.dev",
		},
	}
}

// Resolve returns path joined to root unless it is already absolute.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
