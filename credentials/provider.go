package credentials

import (
	"context"
	"sync"
)

// Provider supplies a bearer token lazily, fetching it at most once. The
// result, success or failure, is cached for the provider's lifetime:
// transient fetch failures should be handled by constructing a fresh
// provider, not by hammering the underlying source on every request.
// Concurrent callers coalesce on the mutex.
type Provider struct {
	fetch func(ctx context.Context) (string, error)

	mu      sync.Mutex
	fetched bool
	token   string
	err     error
}

// NewProvider creates a Provider around a fetch function.
func NewProvider(fetch func(ctx context.Context) (string, error)) *Provider {
	return &Provider{fetch: fetch}
}

// NewStoreProvider creates a Provider backed by a credential store,
// honoring the SCRIBE_TOKEN environment override.
func NewStoreProvider(store *Store) *Provider {
	return NewProvider(func(ctx context.Context) (string, error) {
		return store.ActiveToken()
	})
}

// NewDesktopProvider creates a Provider that extracts the access token from
// the desktop app's local storage.
func NewDesktopProvider() *Provider {
	return NewProvider(func(ctx context.Context) (string, error) {
		tokens, err := ExtractDesktopTokens()
		if err != nil {
			return "", err
		}
		return tokens.AccessToken, nil
	})
}

// Token returns the cached token, fetching it on the first call.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.fetched {
		p.token, p.err = p.fetch(ctx)
		p.fetched = true
	}
	return p.token, p.err
}
