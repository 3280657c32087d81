package crawler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sjsage522/licitacaoworker/helpers"
	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
	"sjsage522/licitacaoworker/services/cache"
)

// RateLimitCacheKey is the cache key that blocks requests to the portal
const RateLimitCacheKey = "supel_rate_limited"

// HTTPFetcher fetches portal pages over HTTP. When a cache service is set,
// a rate limited response blocks further requests for BlockTime.
type HTTPFetcher struct {
	Client    *http.Client
	CacheSvc  cache.CacheService
	CacheKey  string
	BlockTime time.Duration
}

// NewHTTPFetcher creates a fetcher; cacheSvc may be nil
func NewHTTPFetcher(client *http.Client, cacheSvc cache.CacheService, blockTime time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    client,
		CacheSvc:  cacheSvc,
		CacheKey:  RateLimitCacheKey,
		BlockTime: blockTime,
	}
}

// Fetch downloads url and parses it into a document
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Node, error) {
	// Check if the portal is rate limited
	if f.CacheSvc != nil && f.CacheKey != "" {
		if _, err := f.CacheSvc.Get(f.CacheKey); err == nil {
			return nil, crawlerrors.NewRateLimit(url, f.BlockTime)
		}
	}

	utf8Body, err := helpers.FetchWithRandomHeaders(ctx, f.Client, url)
	if err != nil {
		if crawlerrors.IsRateLimited(err) && f.CacheSvc != nil && f.CacheKey != "" {
			value := []byte(fmt.Sprintf("%d", f.BlockTime/time.Second))
			if setErr := f.CacheSvc.Set(f.CacheKey, value, f.BlockTime); setErr != nil {
				return nil, fmt.Errorf("%w (block not recorded: %v)", err, setErr)
			}
		}
		return nil, err
	}

	doc, err := NewDocument(utf8Body)
	if err != nil {
		return nil, crawlerrors.NewParsing(url, "failed to parse page", err)
	}
	return doc, nil
}
