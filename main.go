// Package main provides the scribe CLI entry point.
// scribe is the command-line interface for the Scribe meeting-notes platform.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribelabs/scribe-cli/cmd"
	"github.com/scribelabs/scribe-cli/config"
	"github.com/scribelabs/scribe-cli/pkg/buildinfo"
)

// Global flags.
var (
	baseURL      string
	timeout      time.Duration
	outputFormat string
	debug        bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe CLI - meeting-notes platform interface",
	Long: `scribe is the command-line interface for the Scribe meeting-notes
platform. It talks to the same API the desktop app uses.

COMMON WORKFLOWS:
  Authenticate:       scribe auth login
  Browse meetings:    scribe workspace list  ->  scribe document list
  Export a meeting:   scribe transcript export <document-id> --out meeting.md
  Classify a meeting: scribe organization detect <document-id>

Commands support --output json for machine-readable output. Run
'scribe <command> --help' for subcommands, flags, and examples.`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		if outputFormat != "" {
			if !config.OutputFormat(outputFormat).IsValid() {
				return fmt.Errorf("invalid output format: %q (must be text, json, or yaml)", outputFormat)
			}
			cmd.OutputOverride = outputFormat
		}
		if baseURL != "" {
			os.Setenv("SCRIBE_BASE_URL", baseURL)
		}
		if timeout != 0 {
			os.Setenv("SCRIBE_TIMEOUT", timeout.String())
		}
		if debug {
			os.Setenv("SCRIBE_DEBUG", "1")
		}
		return nil
	},
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(c *cobra.Command, args []string) error {
		info := buildinfo.Get()
		out := c.OutOrStdout()
		fmt.Fprintf(out, "scribe version %s\n", info.Version)
		fmt.Fprintf(out, "  commit:  %s\n", info.Commit)
		fmt.Fprintf(out, "  built:   %s\n", info.BuildTime)
		return nil
	},
}

// configCmd manages CLI configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `View and modify the scribe CLI configuration settings.`,
}

// configShowCmd displays current configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		configPath, _ := config.ConfigPath()
		out := c.OutOrStdout()
		fmt.Fprintln(out, "Current configuration:")
		fmt.Fprintf(out, "  Config file:   %s\n", configPath)
		fmt.Fprintf(out, "  Base URL:      %s\n", cfg.BaseURL)
		fmt.Fprintf(out, "  Timeout:       %s\n", cfg.Timeout)
		fmt.Fprintf(out, "  Retries:       %d\n", cfg.Retries)
		fmt.Fprintf(out, "  Output format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "  Workspace ID:  %s\n", valueOrDefault(cfg.WorkspaceID, "(not set)"))
		fmt.Fprintf(out, "  Debug:         %t\n", cfg.Debug)
		return nil
	},
}

// configInitCmd initializes the configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with default values if one doesn't exist.`,
	RunE: func(c *cobra.Command, args []string) error {
		configPath, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("getting config path: %w", err)
		}

		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(c.OutOrStdout(), "Configuration file already exists: %s\n", configPath)
			fmt.Fprintln(c.OutOrStdout(), "Use 'scribe config show' to view current settings.")
			return nil
		}

		defaultCfg := config.DefaultConfig()
		if err := config.SaveConfig(defaultCfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Fprintf(c.OutOrStdout(), "Created configuration file: %s\n", configPath)
		return nil
	},
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Available keys:
  base_url           - Scribe API endpoint
  timeout            - Per-attempt request timeout (e.g., 5s, 30s)
  retries            - Retry attempts after the first request
  output_format      - Default output format (text, json, yaml)
  workspace_id       - Default workspace for document commands
  organizations_file - Organization detector config file path
  debug              - Enable debug logging (true/false)

Examples:
  scribe config set timeout 10s
  scribe config set output_format json
  scribe config set workspace_id ws-123`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfg, err := config.LoadConfig()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		switch key {
		case "base_url":
			cfg.BaseURL = value
		case "timeout":
			duration, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid timeout value: %w", err)
			}
			cfg.Timeout = duration
		case "retries":
			var retries int
			if _, err := fmt.Sscanf(value, "%d", &retries); err != nil || retries < 0 {
				return fmt.Errorf("invalid retries value: %s", value)
			}
			cfg.Retries = retries
		case "output_format":
			format := config.OutputFormat(value)
			if !format.IsValid() {
				return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", value)
			}
			cfg.OutputFormat = format
		case "workspace_id":
			cfg.WorkspaceID = value
		case "organizations_file":
			cfg.OrganizationsFile = value
		case "debug":
			switch value {
			case "true", "1":
				cfg.Debug = true
			case "false", "0":
				cfg.Debug = false
			default:
				return fmt.Errorf("invalid debug value: %s (must be true or false)", value)
			}
		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Fprintf(c.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

// valueOrDefault returns the value if non-empty, otherwise the default.
func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Scribe API endpoint")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-attempt request timeout (e.g., 5s)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "", "output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: "meetings", Title: "Meetings:"},
		&cobra.Group{ID: "setup", Title: "Setup:"},
	)

	workspaceCmd := cmd.NewWorkspaceCommand()
	workspaceCmd.GroupID = "meetings"
	rootCmd.AddCommand(workspaceCmd)

	documentCmd := cmd.NewDocumentCommand()
	documentCmd.GroupID = "meetings"
	rootCmd.AddCommand(documentCmd)

	transcriptCmd := cmd.NewTranscriptCommand()
	transcriptCmd.GroupID = "meetings"
	rootCmd.AddCommand(transcriptCmd)

	organizationCmd := cmd.NewOrganizationCommand()
	organizationCmd.GroupID = "meetings"
	rootCmd.AddCommand(organizationCmd)

	authCmd := cmd.NewAuthCommand()
	authCmd.GroupID = "setup"
	rootCmd.AddCommand(authCmd)

	updateCmd := cmd.NewUpdateCommand(buildinfo.Version)
	updateCmd.GroupID = "setup"
	rootCmd.AddCommand(updateCmd)

	configCmd.GroupID = "setup"
	configCmd.AddCommand(configShowCmd, configInitCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)

	versionCmd.GroupID = "setup"
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
