// Package cmd provides CLI commands for the scribe tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/scribelabs/scribe-cli/client"
	"github.com/scribelabs/scribe-cli/config"
	"github.com/scribelabs/scribe-cli/credentials"
	"github.com/scribelabs/scribe-cli/pkg/logging"
)

// OutputOverride, when non-empty, overrides the configured output format.
// Set by the root command from the --output flag.
var OutputOverride string

// loadCLIConfig loads the CLI configuration.
func loadCLIConfig() (*config.CLIConfig, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds a logger honoring the debug setting.
func newLogger(cfg *config.CLIConfig) logging.Logger {
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	return logging.NewLogger(&logging.Config{
		Level:     level,
		Component: "scribe-cli",
		Output:    os.Stderr,
	})
}

// apiClient constructs the API client from configuration. Token resolution is
// lazy: nothing is read from the keyring or the desktop app until the first
// authenticated call.
func apiClient(cfg *config.CLIConfig) *client.Client {
	opts := client.DefaultOptions()
	opts.Timeout = cfg.Timeout
	opts.Retries = cfg.Retries
	opts.Logger = newLogger(cfg)
	opts.TokenSource = tokenSource()
	return client.New(cfg.BaseURL, "", opts)
}

// tokenSource chains the SCRIBE_TOKEN environment variable, the credential
// store, and the desktop app extraction.
func tokenSource() client.TokenSource {
	return credentials.NewProvider(func(ctx context.Context) (string, error) {
		if token := os.Getenv("SCRIBE_TOKEN"); token != "" {
			return token, nil
		}
		if store, err := credentials.NewStore(); err == nil {
			if token, err := store.ActiveToken(); err == nil && token != "" {
				return token, nil
			}
		}
		tokens, err := credentials.ExtractDesktopTokens()
		if err != nil {
			return "", err
		}
		return tokens.AccessToken, nil
	})
}

// outputFormat resolves the effective output format.
func outputFormat(cfg *config.CLIConfig) config.OutputFormat {
	if OutputOverride != "" {
		return config.OutputFormat(OutputOverride)
	}
	return cfg.OutputFormat
}

// output renders v in the effective format, calling human for text mode.
func output(w io.Writer, cfg *config.CLIConfig, v any, human func(io.Writer) error) error {
	switch outputFormat(cfg) {
	case config.OutputFormatJSON:
		return outputJSON(w, v)
	case config.OutputFormatYAML:
		return outputYAML(w, v)
	default:
		return human(w)
	}
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes v as YAML.
func outputYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

// promptHidden reads a secret from the terminal without echoing it.
func promptHidden(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	value, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(value), nil
}
