package client

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UpdateInfo is the desktop app's update feed entry, published as YAML in the
// electron-updater format.
type UpdateInfo struct {
	Version     string `yaml:"version"`
	Path        string `yaml:"path"`
	SHA512      string `yaml:"sha512"`
	ReleaseDate string `yaml:"releaseDate"`
}

// CheckForUpdate fetches and parses the desktop app's update feed. The feed
// is public; no authentication is needed.
func (c *Client) CheckForUpdate(ctx context.Context) (*UpdateInfo, error) {
	text, err := c.GetText(ctx, "/v1/check-for-update/latest-mac.yml")
	if err != nil {
		return nil, err
	}
	var info UpdateInfo
	if err := yaml.Unmarshal([]byte(text), &info); err != nil {
		return nil, fmt.Errorf("parsing update feed: %w", err)
	}
	if info.Version == "" {
		return nil, fmt.Errorf("update feed has no version")
	}
	return &info, nil
}
