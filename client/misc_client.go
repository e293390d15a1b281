package client

import (
	"context"
	"encoding/json"
)

// The endpoints below return vendor-shaped payloads this client does not
// interpret; they pass through as raw JSON for callers to inspect.

// GetPanelTemplates lists the panel templates available to the user.
func (c *Client) GetPanelTemplates(ctx context.Context) (json.RawMessage, error) {
	return c.rawPost(ctx, "/v1/get-panel-templates", nil)
}

// GetPeople fetches the user's enriched people records.
func (c *Client) GetPeople(ctx context.Context) (json.RawMessage, error) {
	return c.rawPost(ctx, "/v1/get-people", nil)
}

// GetFeatureFlags fetches the feature flags active for the user.
func (c *Client) GetFeatureFlags(ctx context.Context) (json.RawMessage, error) {
	return c.rawPost(ctx, "/v1/get-feature-flags", nil)
}

// GetNotionIntegration fetches the user's Notion integration settings.
func (c *Client) GetNotionIntegration(ctx context.Context) (json.RawMessage, error) {
	return c.rawPost(ctx, "/v1/get-notion-integration", nil)
}

// GetSubscriptions fetches the user's subscription and plan information.
func (c *Client) GetSubscriptions(ctx context.Context) (json.RawMessage, error) {
	return c.rawPost(ctx, "/v1/get-subscriptions", nil)
}

// RefreshGoogleEvents asks the backend to re-sync Google Calendar events.
func (c *Client) RefreshGoogleEvents(ctx context.Context) (json.RawMessage, error) {
	return c.rawPost(ctx, "/v1/refresh-google-events", nil)
}

func (c *Client) rawPost(ctx context.Context, path string, body any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Post(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
