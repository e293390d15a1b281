// Package config provides CLI configuration management for the scribe
// command-line tool. It supports loading configuration from a YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scribelabs/scribe-cli/client"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultOutputFormat = OutputFormatText
	DefaultConfigDir    = ".scribe"
	DefaultConfigFile   = "config.yaml"
)

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// BaseURL is the Scribe API endpoint.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-attempt request timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Retries is the number of retry attempts after the first request.
	Retries int `yaml:"retries"`

	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// WorkspaceID is the default workspace for document commands.
	WorkspaceID string `yaml:"workspace_id,omitempty"`

	// OrganizationsFile points at an organization-detector config file.
	// Empty uses the built-in defaults.
	OrganizationsFile string `yaml:"organizations_file,omitempty"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		BaseURL:      client.DefaultBaseURL,
		Timeout:      client.DefaultTimeout,
		Retries:      client.DefaultRetries,
		OutputFormat: DefaultOutputFormat,
	}
}

// ConfigDir returns the configuration directory path.
// Uses $SCRIBE_CONFIG_DIR if set, otherwise ~/.scribe.
func ConfigDir() (string, error) {
	if dir := os.Getenv("SCRIBE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration. Sources are applied in order, later
// overriding earlier:
//  1. Default values
//  2. Config file (~/.scribe/config.yaml or $SCRIBE_CONFIG_DIR/config.yaml)
//  3. Environment variables (SCRIBE_BASE_URL, SCRIBE_TIMEOUT, SCRIBE_RETRIES,
//     SCRIBE_OUTPUT_FORMAT, SCRIBE_WORKSPACE_ID, SCRIBE_DEBUG)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// configFile is the on-disk shape, with the duration held as a string.
type configFile struct {
	BaseURL           string       `yaml:"base_url,omitempty"`
	Timeout           string       `yaml:"timeout,omitempty"`
	Retries           *int         `yaml:"retries,omitempty"`
	OutputFormat      OutputFormat `yaml:"output_format,omitempty"`
	WorkspaceID       string       `yaml:"workspace_id,omitempty"`
	OrganizationsFile string       `yaml:"organizations_file,omitempty"`
	Debug             bool         `yaml:"debug,omitempty"`
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.BaseURL != "" {
		cfg.BaseURL = fileCfg.BaseURL
	}
	if fileCfg.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	if fileCfg.Retries != nil {
		cfg.Retries = *fileCfg.Retries
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.WorkspaceID != "" {
		cfg.WorkspaceID = fileCfg.WorkspaceID
	}
	if fileCfg.OrganizationsFile != "" {
		cfg.OrganizationsFile = fileCfg.OrganizationsFile
	}
	cfg.Debug = cfg.Debug || fileCfg.Debug

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("SCRIBE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	if v := os.Getenv("SCRIBE_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = timeout
		}
	}

	if v := os.Getenv("SCRIBE_RETRIES"); v != "" {
		if retries, err := strconv.Atoi(v); err == nil && retries >= 0 {
			cfg.Retries = retries
		}
	}

	if v := os.Getenv("SCRIBE_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("SCRIBE_WORKSPACE_ID"); v != "" {
		cfg.WorkspaceID = v
	}

	if v := os.Getenv("SCRIBE_ORGANIZATIONS_FILE"); v != "" {
		cfg.OrganizationsFile = v
	}

	if v := os.Getenv("SCRIBE_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}

	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	return nil
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	retries := cfg.Retries
	fileCfg := configFile{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout.String(),
		Retries:           &retries,
		OutputFormat:      cfg.OutputFormat,
		WorkspaceID:       cfg.WorkspaceID,
		OrganizationsFile: cfg.OrganizationsFile,
		Debug:             cfg.Debug,
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
