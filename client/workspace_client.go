package client

import "context"

// Workspace is one Scribe workspace.
type Workspace struct {
	ID          string `json:"workspace_id"`
	DisplayName string `json:"display_name"`
	Domain      string `json:"domain,omitempty"`
}

// WorkspaceEntry pairs a workspace with the caller's membership details.
type WorkspaceEntry struct {
	Workspace Workspace `json:"workspace"`
	Role      string    `json:"role"`
	PlanType  string    `json:"plan_type"`
}

type getWorkspacesResponse struct {
	Workspaces []WorkspaceEntry `json:"workspaces"`
}

// GetWorkspaces lists the workspaces the authenticated user belongs to.
func (c *Client) GetWorkspaces(ctx context.Context) ([]WorkspaceEntry, error) {
	var resp getWorkspacesResponse
	if err := c.Post(ctx, "/v1/get-workspaces", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Workspaces, nil
}
