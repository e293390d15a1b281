package credentials

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFetchesOnce(t *testing.T) {
	calls := 0
	p := NewProvider(func(ctx context.Context) (string, error) {
		calls++
		return "tok", nil
	})

	for range 3 {
		token, err := p.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
	}
	assert.Equal(t, 1, calls)
}

func TestProviderCachesFailure(t *testing.T) {
	boom := errors.New("keychain locked")
	calls := 0
	p := NewProvider(func(ctx context.Context) (string, error) {
		calls++
		return "", boom
	})

	_, err := p.Token(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = p.Token(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "failure must not trigger refetching")
}

func TestProviderCoalescesConcurrentCallers(t *testing.T) {
	calls := 0
	p := NewProvider(func(ctx context.Context) (string, error) {
		calls++
		return "tok", nil
	})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := p.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "tok", token)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}

func TestDesktopProviderUsesExtraction(t *testing.T) {
	path := writeAuthFile(t, `{"session_tokens":"{\"access_token\":\"at-desktop\"}"}`)

	p := NewProvider(func(ctx context.Context) (string, error) {
		tokens, err := ExtractDesktopTokensFromFile(path)
		if err != nil {
			return "", err
		}
		return tokens.AccessToken, nil
	})

	token, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-desktop", token)
}
