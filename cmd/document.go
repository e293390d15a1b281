package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/scribelabs/scribe-cli/client"
)

// Document command flags.
var (
	docWorkspaceID string
	docLimit       int
	docAll         bool
)

// NewDocumentCommand creates the document command group.
func NewDocumentCommand() *cobra.Command {
	documentCmd := &cobra.Command{
		Use:     "document",
		Aliases: []string{"doc"},
		Short:   "Inspect Scribe meeting documents",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List meeting documents",
		Long: `List meeting documents, most recent first.

By default one page is fetched; --all follows pagination cursors until the
listing is exhausted.

Examples:
  scribe document list
  scribe document list --workspace ws-123 --limit 20
  scribe document list --all --output json`,
		RunE: runDocumentList,
	}
	listCmd.Flags().StringVar(&docWorkspaceID, "workspace", "", "Workspace ID (default: configured workspace)")
	listCmd.Flags().IntVar(&docLimit, "limit", 0, "Page size")
	listCmd.Flags().BoolVar(&docAll, "all", false, "Fetch every page")

	metadataCmd := &cobra.Command{
		Use:   "metadata <document-id>",
		Short: "Show full metadata for a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runDocumentMetadata,
	}

	documentCmd.AddCommand(listCmd, metadataCmd)
	return documentCmd
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	workspaceID := docWorkspaceID
	if workspaceID == "" {
		workspaceID = cfg.WorkspaceID
	}

	c := apiClient(cfg)
	req := client.GetDocumentsRequest{WorkspaceID: workspaceID, Limit: docLimit}

	var docs []client.Document
	if docAll {
		docs, err = client.CollectPages(c.ListDocuments(cmd.Context(), req))
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
	} else {
		page, err := c.GetDocuments(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		docs = page.Items
		if page.NextCursor != nil {
			defer fmt.Fprintln(cmd.ErrOrStderr(), "More documents available; use --all to fetch every page.")
		}
	}

	return output(cmd.OutOrStdout(), cfg, docs, func(w io.Writer) error {
		if len(docs) == 0 {
			fmt.Fprintln(w, "No documents.")
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"ID", "Title", "Created"})
		for _, d := range docs {
			t.AppendRow(table.Row{d.ID, d.Title, d.CreatedAt})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	})
}

func runDocumentMetadata(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	c := apiClient(cfg)
	doc, err := c.GetDocumentMetadata(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching document metadata: %w", err)
	}

	return output(cmd.OutOrStdout(), cfg, doc, func(w io.Writer) error {
		fmt.Fprintf(w, "ID:        %s\n", doc.ID)
		fmt.Fprintf(w, "Title:     %s\n", doc.Title)
		fmt.Fprintf(w, "Workspace: %s\n", doc.WorkspaceID)
		fmt.Fprintf(w, "Created:   %s\n", doc.CreatedAt)
		fmt.Fprintf(w, "Updated:   %s\n", doc.UpdatedAt)
		if doc.GoogleCalendarEvent != nil {
			fmt.Fprintf(w, "Attendees: %d\n", len(doc.GoogleCalendarEvent.Attendees))
		}
		return nil
	})
}
