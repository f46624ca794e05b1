package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pquerna/cachecontrol"
)

// KeySource provides the provider's current signing keys.
type KeySource interface {
	Keys(context.Context) (*JSONWebKeySet, error)
}

// RemoteKeySet fetches a JWK Set from the provider's jwks endpoint and
// caches it for as long as the response's cache headers allow.
type RemoteKeySet struct {
	jwksURL string
	client  *http.Client
	now     func() time.Time

	mu     sync.Mutex
	cached *JSONWebKeySet
	expiry time.Time
}

// NewRemoteKeySet returns a keyset backed by the given jwks endpoint. A nil
// client falls back to http.DefaultClient.
func NewRemoteKeySet(jwksURL string, client *http.Client) *RemoteKeySet {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteKeySet{
		jwksURL: jwksURL,
		client:  client,
		now:     time.Now,
	}
}

// Keys returns the cached keyset, refreshing it from the provider when the
// cached copy has expired.
func (r *RemoteKeySet) Keys(ctx context.Context) (*JSONWebKeySet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.now().Before(r.expiry) {
		return r.cached, nil
	}

	keyset, expiry, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	r.cached = keyset
	r.expiry = expiry
	return keyset, nil
}

func (r *RemoteKeySet) fetch(ctx context.Context) (*JSONWebKeySet, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.jwksURL, nil)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to build jwks request: %v", err.Error())
	}

	response, err := r.client.Do(req)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to fetch jwks: %v", err.Error())
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read response body: %v", err.Error())
	}
	if !statusCodeIs2xx(response.StatusCode) {
		return nil, time.Time{}, fmt.Errorf("failed to fetch jwks. received status code: %d", response.StatusCode)
	}

	var keyset JSONWebKeySet
	if err := json.Unmarshal(body, &keyset); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal jwks: %v", err.Error())
	}

	expiry := r.now()
	reasons, cacheUntil, err := cachecontrol.CachableResponse(req, response, cachecontrol.Options{})
	if err == nil && len(reasons) == 0 && cacheUntil.After(expiry) {
		expiry = cacheUntil
	}

	return &keyset, expiry, nil
}

func statusCodeIs2xx(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
