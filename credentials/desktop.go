package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
)

// desktopStorageFile is the auth file the Scribe desktop app writes inside
// its application-support directory.
const desktopStorageFile = "auth.json"

// DesktopTokens are the tokens extracted from the desktop app's local
// storage.
type DesktopTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// desktopStorage mirrors the desktop app's auth file. The token payloads are
// JSON documents stored as strings, a quirk of the app's settings layer.
// session_tokens is the current format; auth_tokens is the pre-6.x format,
// kept readable for users who have not relaunched the app since upgrading.
type desktopStorage struct {
	SessionTokens string `json:"session_tokens"`
	AuthTokens    string `json:"auth_tokens"`
}

// DesktopStoragePath returns the platform path of the desktop app's auth
// file.
func DesktopStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Scribe", desktopStorageFile), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Scribe", desktopStorageFile), nil
	default:
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(home, ".config")
		}
		return filepath.Join(configDir, "Scribe", desktopStorageFile), nil
	}
}

// ExtractDesktopTokens reads the desktop app's auth file and returns its
// tokens, preferring the current storage format over the legacy one. A
// missing file means the desktop app is not installed or never signed in,
// reported as ErrNoCredentials.
func ExtractDesktopTokens() (*DesktopTokens, error) {
	path, err := DesktopStoragePath()
	if err != nil {
		return nil, err
	}
	return ExtractDesktopTokensFromFile(path)
}

// ExtractDesktopTokensFromFile extracts tokens from a specific auth file.
func ExtractDesktopTokensFromFile(path string) (*DesktopTokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: desktop app storage not found at %s", scerrors.ErrNoCredentials, path)
		}
		return nil, fmt.Errorf("reading desktop storage: %w", err)
	}

	var storage desktopStorage
	if err := json.Unmarshal(data, &storage); err != nil {
		return nil, fmt.Errorf("parsing desktop storage: %w", err)
	}

	for _, payload := range []string{storage.SessionTokens, storage.AuthTokens} {
		if payload == "" {
			continue
		}
		var tokens DesktopTokens
		if err := json.Unmarshal([]byte(payload), &tokens); err != nil {
			return nil, fmt.Errorf("parsing desktop token payload: %w", err)
		}
		if tokens.AccessToken != "" {
			return &tokens, nil
		}
	}

	return nil, fmt.Errorf("%w: desktop storage holds no access token", scerrors.ErrNoCredentials)
}
