package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCommandEnv points the CLI at a test server with a token in the
// environment and a throwaway config dir.
func setupCommandEnv(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("SCRIBE_CONFIG_DIR", t.TempDir())
	t.Setenv("SCRIBE_BASE_URL", srv.URL)
	t.Setenv("SCRIBE_TOKEN", "test-token")

	OutputOverride = ""
	t.Cleanup(func() { OutputOverride = "" })
	return srv
}

func TestWorkspaceList(t *testing.T) {
	setupCommandEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/get-workspaces", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"workspaces":[{"workspace":{"workspace_id":"ws-1","display_name":"Acme"},"role":"admin","plan_type":"business"}]}`))
	}))

	var buf bytes.Buffer
	c := NewWorkspaceCommand()
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs([]string{"list"})
	require.NoError(t, c.Execute())

	assert.Contains(t, buf.String(), "ws-1")
	assert.Contains(t, buf.String(), "Acme")
	assert.Contains(t, buf.String(), "admin")
}

func TestWorkspaceListJSON(t *testing.T) {
	setupCommandEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"workspaces":[{"workspace":{"workspace_id":"ws-1","display_name":"Acme"},"role":"member","plan_type":"free"}]}`))
	}))
	OutputOverride = "json"

	var buf bytes.Buffer
	c := NewWorkspaceCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"list"})
	require.NoError(t, c.Execute())

	assert.Contains(t, buf.String(), `"workspace_id": "ws-1"`)
	assert.Contains(t, buf.String(), `"role": "member"`)
}

func TestWorkspaceListEmpty(t *testing.T) {
	setupCommandEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"workspaces":[]}`))
	}))

	var buf bytes.Buffer
	c := NewWorkspaceCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"list"})
	require.NoError(t, c.Execute())
	assert.Contains(t, buf.String(), "No workspaces.")
}
