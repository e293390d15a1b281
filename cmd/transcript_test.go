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

const transcriptResponse = `[
	{"text":"Hello there","start_timestamp":"2026-08-12T15:00:00Z","end_timestamp":"2026-08-12T15:00:01Z","source":"microphone"},
	{"text":"Hello there","start_timestamp":"2026-08-12T15:00:00.5Z","end_timestamp":"2026-08-12T15:00:01.5Z","source":"system"},
	{"text":"General Kenobi","start_timestamp":"2026-08-12T15:00:03Z","end_timestamp":"2026-08-12T15:00:04Z","source":"system"}
]`

func transcriptHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/get-document-transcript", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(transcriptResponse))
	})
}

func resetTranscriptFlags() {
	transcriptOut = ""
	transcriptRaw = false
	transcriptThreshold = 0
	transcriptWindow = 0
}

func TestTranscriptExportDeduplicates(t *testing.T) {
	setupCommandEnv(t, transcriptHandler(t))
	resetTranscriptFlags()

	var buf bytes.Buffer
	c := NewTranscriptCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"export", "doc-1"})
	require.NoError(t, c.Execute())

	out := buf.String()
	assert.Contains(t, out, "Me:")
	assert.Contains(t, out, "Them:")
	assert.Contains(t, out, "Hello there")
	assert.Contains(t, out, "General Kenobi")
	// The system-audio copy of the greeting collapses into the mic segment.
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Hello there")))
}

func TestTranscriptExportRawKeepsDuplicates(t *testing.T) {
	setupCommandEnv(t, transcriptHandler(t))
	resetTranscriptFlags()

	var buf bytes.Buffer
	c := NewTranscriptCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"export", "doc-1", "--raw"})
	require.NoError(t, c.Execute())

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Hello there")))
}

func TestTranscriptExportToFile(t *testing.T) {
	setupCommandEnv(t, transcriptHandler(t))
	resetTranscriptFlags()

	path := filepath.Join(t.TempDir(), "meeting.md")

	var buf bytes.Buffer
	c := NewTranscriptCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{"export", "doc-1", "--out", path})
	require.NoError(t, c.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello there")
	assert.Contains(t, buf.String(), path)
}
