package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
)

func writeAuthFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), desktopStorageFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestExtractDesktopTokensCurrentFormat(t *testing.T) {
	path := writeAuthFile(t, `{"session_tokens":"{\"access_token\":\"at-new\",\"refresh_token\":\"rt-new\",\"expires_in\":3600}"}`)

	tokens, err := ExtractDesktopTokensFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "at-new", tokens.AccessToken)
	assert.Equal(t, "rt-new", tokens.RefreshToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)
}

func TestExtractDesktopTokensLegacyFormat(t *testing.T) {
	path := writeAuthFile(t, `{"auth_tokens":"{\"access_token\":\"at-old\",\"refresh_token\":\"rt-old\"}"}`)

	tokens, err := ExtractDesktopTokensFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "at-old", tokens.AccessToken)
}

func TestExtractDesktopTokensPrefersCurrentFormat(t *testing.T) {
	path := writeAuthFile(t, `{
		"session_tokens":"{\"access_token\":\"at-new\"}",
		"auth_tokens":"{\"access_token\":\"at-old\"}"
	}`)

	tokens, err := ExtractDesktopTokensFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "at-new", tokens.AccessToken)
}

func TestExtractDesktopTokensMissingFile(t *testing.T) {
	_, err := ExtractDesktopTokensFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, scerrors.ErrNoCredentials)
}

func TestExtractDesktopTokensNoToken(t *testing.T) {
	path := writeAuthFile(t, `{"unrelated":"data"}`)
	_, err := ExtractDesktopTokensFromFile(path)
	assert.ErrorIs(t, err, scerrors.ErrNoCredentials)
}

func TestExtractDesktopTokensMalformedFile(t *testing.T) {
	path := writeAuthFile(t, `not json at all`)
	_, err := ExtractDesktopTokensFromFile(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, scerrors.ErrNoCredentials)
}

func TestExtractDesktopTokensMalformedPayload(t *testing.T) {
	path := writeAuthFile(t, `{"session_tokens":"not-json"}`)
	_, err := ExtractDesktopTokensFromFile(path)
	assert.Error(t, err)
}

func TestDesktopStoragePathIsAbsolute(t *testing.T) {
	path, err := DesktopStoragePath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, desktopStorageFile, filepath.Base(path))
}
