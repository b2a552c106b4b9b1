package nba

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"github.com/prohmpiriya/courtside-tickets/pkg/redis"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "nba:"

// JSONCache is the slice of pkg/redis the cache needs
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedProvider serves repeated lookups from Redis. Cache failures are
// logged and never fail the request; upstream errors are never cached.
type CachedProvider struct {
	next  Provider
	cache JSONCache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedProvider wraps next with a cache of the given TTL
func NewCachedProvider(next Provider, cache JSONCache, ttl time.Duration, log *logger.Logger) *CachedProvider {
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedProvider{next: next, cache: cache, ttl: ttl, log: log}
}

func (p *CachedProvider) Games(ctx context.Context, season, team string) ([]json.RawMessage, error) {
	return p.cached(ctx, cacheKey("games", season, team), func(ctx context.Context) ([]json.RawMessage, error) {
		return p.next.Games(ctx, season, team)
	})
}

func (p *CachedProvider) Standings(ctx context.Context, league, season string) ([]json.RawMessage, error) {
	return p.cached(ctx, cacheKey("standings", league, season), func(ctx context.Context) ([]json.RawMessage, error) {
		return p.next.Standings(ctx, league, season)
	})
}

func (p *CachedProvider) Player(ctx context.Context, id string) ([]json.RawMessage, error) {
	return p.cached(ctx, cacheKey("player", id), func(ctx context.Context) ([]json.RawMessage, error) {
		return p.next.Player(ctx, id)
	})
}

func (p *CachedProvider) PlayerStatistics(ctx context.Context, id, season string) ([]json.RawMessage, error) {
	return p.cached(ctx, cacheKey("player_stats", id, season), func(ctx context.Context) ([]json.RawMessage, error) {
		return p.next.PlayerStatistics(ctx, id, season)
	})
}

func (p *CachedProvider) cached(ctx context.Context, key string, load func(context.Context) ([]json.RawMessage, error)) ([]json.RawMessage, error) {
	var items []json.RawMessage
	err := p.cache.GetJSON(ctx, key, &items)
	if err == nil {
		return items, nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		p.log.WithContext(ctx).Warn("nba cache read failed", zap.String("key", key), zap.Error(err))
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.cache.SetJSON(ctx, key, items, p.ttl); err != nil {
		p.log.WithContext(ctx).Warn("nba cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}

func cacheKey(kind string, parts ...string) string {
	return cacheKeyPrefix + kind + ":" + strings.Join(parts, ":")
}
