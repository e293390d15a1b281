package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewWorkspaceCommand creates the workspace command group.
func NewWorkspaceCommand() *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Inspect Scribe workspaces",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces you belong to",
		Long: `List the workspaces the authenticated user belongs to, with role and
plan type.

Examples:
  scribe workspace list
  scribe workspace list --output json`,
		RunE: runWorkspaceList,
	}

	workspaceCmd.AddCommand(listCmd)
	return workspaceCmd
}

func runWorkspaceList(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	c := apiClient(cfg)
	entries, err := c.GetWorkspaces(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing workspaces: %w", err)
	}

	return output(cmd.OutOrStdout(), cfg, entries, func(w io.Writer) error {
		if len(entries) == 0 {
			fmt.Fprintln(w, "No workspaces.")
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"ID", "Name", "Role", "Plan"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Workspace.ID, e.Workspace.DisplayName, e.Role, e.PlanType})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	})
}
