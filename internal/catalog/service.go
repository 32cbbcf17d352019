package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/calebmoss/gamedex/internal/cache"
	"github.com/calebmoss/gamedex/pkg/logger"
	"github.com/calebmoss/gamedex/pkg/metrics"
)

// Per-endpoint TTLs. These are fixed by the upstream's data volatility:
// listings churn hourly, details rarely change, free-text search sits between.
const (
	ListingTTL = time.Hour
	DetailTTL  = 24 * time.Hour
	SearchTTL  = 30 * time.Minute
)

// Service fronts the upstream catalog with the TTL cache. A cold key is
// fetched from upstream and stored; a warm key is served without any network
// call. Failures are never cached, so the next request retries the fetch.
//
// Concurrent requests for the same cold key may each fetch and overwrite the
// entry; last write wins. Single-flight de-duplication is a possible
// strengthening, deliberately not implemented.
type Service struct {
	store   cache.Store
	fetcher Fetcher
	log     *zap.Logger
}

// NewService constructs a catalog Service.
func NewService(store cache.Store, fetcher Fetcher) (*Service, error) {
	if store == nil {
		return nil, errors.New("catalog: cache store is required")
	}
	if fetcher == nil {
		return nil, errors.New("catalog: fetcher is required")
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		log:     logger.WithModule("catalog"),
	}, nil
}

// Games returns the cached or freshly fetched listing for the given parameters.
func (s *Service) Games(ctx context.Context, p ListingParams) (json.RawMessage, error) {
	params := url.Values{}
	for name, value := range map[string]string{
		"search":      p.Search,
		"page":        p.Page,
		"page_size":   p.PageSize,
		"platforms":   p.Platforms,
		"genres":      p.Genres,
		"ordering":    p.Ordering,
		"esrb_rating": p.ESRBRating,
	} {
		if value != "" {
			params.Set(name, value)
		}
	}

	return s.fetchOrCache(ctx, "listing", ListingKey(p), ListingTTL, func(ctx context.Context) (json.RawMessage, error) {
		return s.fetcher.Fetch(ctx, "/games", params)
	})
}

// GameByID returns the cached or freshly fetched detail payload for one game.
func (s *Service) GameByID(ctx context.Context, id int64) (json.RawMessage, error) {
	return s.fetchOrCache(ctx, "detail", DetailKey(id), DetailTTL, func(ctx context.Context) (json.RawMessage, error) {
		return s.fetcher.Fetch(ctx, DetailKey(id), nil)
	})
}

// Search returns the cached or freshly fetched result of a free-text search.
func (s *Service) Search(ctx context.Context, query string) (json.RawMessage, error) {
	return s.fetchOrCache(ctx, "search", SearchKey(query), SearchTTL, func(ctx context.Context) (json.RawMessage, error) {
		return s.fetcher.Fetch(ctx, "/games", url.Values{"search": []string{query}})
	})
}

func (s *Service) fetchOrCache(ctx context.Context, endpoint, key string, ttl time.Duration, fetch func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cached, ok, err := s.store.Get(ctx, key)
	if err != nil {
		// A broken cache should not take the endpoint down; fall through to
		// the upstream fetch.
		s.log.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		metrics.CacheLookups.WithLabelValues(endpoint, "hit").Inc()
		return json.RawMessage(cached), nil
	}
	metrics.CacheLookups.WithLabelValues(endpoint, "miss").Inc()

	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, key, payload, ttl); err != nil {
		s.log.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}

	return payload, nil
}
