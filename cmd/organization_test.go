package cmd

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationDetectTitleKeyword(t *testing.T) {
	setupCommandEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"document_id":"d1","title":"Sprint planning"}`))
	}))
	orgConfigFile = ""

	var buf bytes.Buffer
	c := NewOrganizationCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"detect", "d1"})
	require.NoError(t, c.Execute())

	// "sprint" is a built-in Work title keyword.
	assert.Contains(t, buf.String(), "Work")
}

func TestOrganizationDetectFallsBackToDefault(t *testing.T) {
	setupCommandEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"document_id":"d1","title":"Untitled meeting"}`))
	}))
	orgConfigFile = ""

	var buf bytes.Buffer
	c := NewOrganizationCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"detect", "d1"})
	require.NoError(t, c.Execute())

	assert.Contains(t, buf.String(), "Default")
}

func TestOrganizationDetectCustomConfig(t *testing.T) {
	setupCommandEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"document_id":"d1","title":"Initech weekly sync","google_calendar_event":{"creator":{"email":"peter@initech.com"}}}`))
	}))

	configPath := filepath.Join(t.TempDir(), "orgs.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"organizations":[{"name":"Initech","titleKeywords":["initech"],"emailDomains":["initech.com"]}],
		"defaultOrganization":"Elsewhere",
		"useCalendarData":true,"usePeopleData":true,"useTitleKeywords":true
	}`), 0600))
	orgConfigFile = configPath
	defer func() { orgConfigFile = "" }()

	var buf bytes.Buffer
	c := NewOrganizationCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"detect", "d1", "--config", configPath})
	require.NoError(t, c.Execute())

	assert.Contains(t, buf.String(), "Initech")
}
