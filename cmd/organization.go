package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scribelabs/scribe-cli/config"
	"github.com/scribelabs/scribe-cli/orgdetect"
)

// Organization command flags.
var orgConfigFile string

// NewOrganizationCommand creates the organization command group.
func NewOrganizationCommand() *cobra.Command {
	organizationCmd := &cobra.Command{
		Use:     "organization",
		Aliases: []string{"org"},
		Short:   "Classify meetings by organization",
	}

	detectCmd := &cobra.Command{
		Use:   "detect <document-id>",
		Short: "Detect which organization a meeting belongs to",
		Long: `Detect the organization a meeting document belongs to using calendar
data, title keywords, and people enrichment, in that priority order.

Detection rules come from the organizations file (--config, the
organizations_file config key, or built-in defaults).

Examples:
  scribe organization detect doc-123
  scribe organization detect doc-123 --config ~/.scribe/organizations.json`,
		Args: cobra.ExactArgs(1),
		RunE: runOrganizationDetect,
	}
	detectCmd.Flags().StringVar(&orgConfigFile, "config", "", "Organizations config file (JSON)")

	organizationCmd.AddCommand(detectCmd)
	return organizationCmd
}

func runOrganizationDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	configFile := orgConfigFile
	if configFile == "" {
		configFile = cfg.OrganizationsFile
	}
	detectorCfg := orgdetect.DefaultDetectorConfig()
	if configFile != "" {
		expanded, err := config.ExpandPath(configFile)
		if err != nil {
			return err
		}
		detectorCfg = orgdetect.LoadDetectorConfig(expanded, log)
	}

	c := apiClient(cfg)
	doc, err := c.GetDocumentMetadata(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching document metadata: %w", err)
	}

	detector := orgdetect.NewDetector(detectorCfg, log)
	org := detector.Detect(doc.Meeting())

	result := struct {
		DocumentID   string `json:"document_id" yaml:"document_id"`
		Title        string `json:"title" yaml:"title"`
		Organization string `json:"organization" yaml:"organization"`
	}{doc.ID, doc.Title, org}

	return output(cmd.OutOrStdout(), cfg, result, func(w io.Writer) error {
		fmt.Fprintf(w, "%s: %s\n", doc.Title, org)
		return nil
	})
}
