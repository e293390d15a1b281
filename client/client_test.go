package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
)

// testOptions returns options with an instant sleep so retry tests never wait.
func testOptions() *Options {
	opts := DefaultOptions()
	opts.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return opts
}

func TestPostSendsIdentityAndAuthHeaders(t *testing.T) {
	var captured http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123", testOptions())
	var out map[string]bool
	require.NoError(t, c.Post(context.Background(), "/v1/get-workspaces", nil, &out))

	assert.Equal(t, "Bearer tok-123", captured.Get("Authorization"))
	assert.Equal(t, DefaultAppVersion, captured.Get("X-App-Version"))
	assert.Equal(t, "electron", captured.Get("X-Client-Type"))
	assert.Equal(t, "darwin", captured.Get("X-Client-Platform"))
	assert.Equal(t, "arm64", captured.Get("X-Client-Architecture"))
	assert.Equal(t, "scribe-electron-"+DefaultAppVersion, captured.Get("X-Client-Id"))
	assert.Contains(t, captured.Get("User-Agent"), "Scribe/"+DefaultAppVersion)
	assert.Equal(t, "application/json", captured.Get("Content-Type"))
	assert.True(t, out["ok"])
}

func TestPostNilBodySendsEmptyObject(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		body = buf
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", testOptions())
	require.NoError(t, c.Post(context.Background(), "/v1/refresh-google-events", nil, nil))
	assert.Equal(t, "{}", string(body))
}

func TestPostWithoutTokenReturnsAuthRequired(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, "", testOptions())
	err := c.Post(context.Background(), "/v1/get-workspaces", nil, nil)
	require.ErrorIs(t, err, scerrors.ErrAuthRequired)
	assert.Zero(t, calls, "no request should be issued without a token")
}

func TestTokenSourceConsultedOnceAndCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer lazy-tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	source := &countingTokenSource{token: "lazy-tok"}
	opts := testOptions()
	opts.TokenSource = source
	c := New(srv.URL, "", opts)

	require.NoError(t, c.Post(context.Background(), "/v1/get-workspaces", nil, nil))
	require.NoError(t, c.Post(context.Background(), "/v1/get-workspaces", nil, nil))
	assert.Equal(t, int32(1), source.calls.Load())
	assert.Equal(t, "lazy-tok", c.Token())
}

type countingTokenSource struct {
	token string
	calls atomic.Int32
}

func (s *countingTokenSource) Token(ctx context.Context) (string, error) {
	s.calls.Add(1)
	return s.token, nil
}

func TestRetryOnServerErrorThenSuccess(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", testOptions())
	var out map[string]bool
	require.NoError(t, c.Post(context.Background(), "/v1/get-workspaces", nil, &out))
	assert.Equal(t, 2, attempts, "one failure plus one success, no extra attempts")
	assert.True(t, out["ok"])
}

func TestRetryBackoffDoublesPerAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var delays []time.Duration
	opts := DefaultOptions()
	opts.Sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	c := New(srv.URL, "tok", opts)

	err := c.Post(context.Background(), "/v1/get-workspaces", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, scerrors.ErrRateLimited)
	assert.Equal(t, []time.Duration{
		250 * time.Millisecond,
		500 * time.Millisecond,
		1000 * time.Millisecond,
	}, delays)
}

func TestRetryAfterHeaderOverridesBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var delays []time.Duration
	opts := DefaultOptions()
	opts.Retries = 1
	opts.Sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	c := New(srv.URL, "tok", opts)

	err := c.Post(context.Background(), "/v1/get-workspaces", nil, nil)
	require.Error(t, err)
	assert.Equal(t, []time.Duration{2 * time.Second}, delays)
}

func TestClientErrorIsNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad workspace id"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", testOptions())
	err := c.Post(context.Background(), "/v1/get-workspaces", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "bad workspace id")
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", testOptions())
	err := c.Post(context.Background(), "/v1/get-document-metadata", nil, nil)
	assert.ErrorIs(t, err, scerrors.ErrNotFound)
}

func TestTimeoutExhaustionReturnsTimeoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.Timeout = 20 * time.Millisecond
	opts.Retries = 1
	c := New(srv.URL, "tok", opts)

	err := c.Post(context.Background(), "/v1/get-workspaces", nil, nil)
	assert.ErrorIs(t, err, scerrors.ErrRequestTimeout)
}

func TestGetIsUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"flag":"on"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", testOptions())
	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/v1/public", &out))
	assert.Equal(t, "on", out["flag"])
}

func TestGetTextReturnsRawBody(t *testing.T) {
	const feed = "version: 6.165.0\npath: Scribe-6.165.0.zip\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	c := New(srv.URL, "", testOptions())
	text, err := c.GetText(context.Background(), "/v1/check-for-update/latest-mac.yml")
	require.NoError(t, err)
	assert.Equal(t, feed, text)
}

func TestExtraHeadersAreSent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Debug")
	}))
	defer srv.Close()

	opts := testOptions()
	opts.ExtraHeaders = map[string]string{"X-Debug": "1"}
	c := New(srv.URL, "tok", opts)
	require.NoError(t, c.Post(context.Background(), "/v1/get-workspaces", nil, nil))
	assert.Equal(t, "1", got)
}

func TestNonJSONSuccessLeavesOutputUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", testOptions())
	out := map[string]bool{"sentinel": true}
	require.NoError(t, c.Post(context.Background(), "/v1/get-workspaces", nil, &out))
	assert.True(t, out["sentinel"])
}

func TestCheckForUpdateParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write([]byte("version: 6.165.0\npath: Scribe-6.165.0-mac.zip\nsha512: abc\nreleaseDate: '2026-08-01T00:00:00.000Z'\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, "", testOptions())
	info, err := c.CheckForUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "6.165.0", info.Version)
	assert.Equal(t, "Scribe-6.165.0-mac.zip", info.Path)
}

func TestGetDocumentsDecodesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GetDocumentsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ws-1", req.WorkspaceID)
		assert.Equal(t, defaultDocumentPageSize, req.Limit)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"docs":[{"document_id":"d1","title":"Standup"}],"next_cursor":"c2"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", testOptions())
	page, err := c.GetDocuments(context.Background(), GetDocumentsRequest{WorkspaceID: "ws-1"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Standup", page.Items[0].Title)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "c2", *page.NextCursor)
}
