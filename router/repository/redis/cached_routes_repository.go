package routerredisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var cacheRefreshCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uniroute_route_cache_refreshes_total",
		Help: "Total number of asynchronous route cache refreshes triggered",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(cacheRefreshCounter)
}

// RedisClient is the subset of redis commands the repository uses.
// *redis.Client satisfies it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	ZRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
}

// cachedRoutesEntry is the stored envelope. The write timestamp drives the
// refresh-ahead decision on read.
type cachedRoutesEntry struct {
	StoredAt time.Time      `json:"storedAt"`
	Routes   []domain.Route `json:"routes"`
}

type cachedRoutesRepository struct {
	client RedisClient

	softExpiry time.Duration
	hardExpiry time.Duration

	// asyncRefresh is false when running synchronously; stale entries are
	// then served without triggering a background refresh.
	asyncRefresh bool

	refreshGroup singleflight.Group
	refreshWG    sync.WaitGroup

	mu        sync.RWMutex
	refreshFn func(ctx context.Context, key domain.CachedRoutesKey)

	logger log.Logger
}

var _ mvc.CachedRoutesRepository = &cachedRoutesRepository{}

// New creates the hot route cache repository on top of redis.
func New(client RedisClient, config domain.Config, logger log.Logger) *cachedRoutesRepository {
	asyncRefresh := !(config.LambdaType == domain.LambdaTypeSync && config.Router.SkipAsyncCacheUpdateCall)
	return &cachedRoutesRepository{
		client:       client,
		softExpiry:   time.Duration(config.Router.RouteCacheRefreshSeconds) * time.Second,
		hardExpiry:   time.Duration(config.Router.RouteCacheTTLSeconds) * time.Second,
		asyncRefresh: asyncRefresh,
		logger:       logger.Named("route_cache"),
	}
}

// SetRefreshFunc installs the callback invoked asynchronously when a read
// returns a soft-expired entry. When unset, soft-expired entries are deleted
// so the next request recomputes and repopulates them.
func (r *cachedRoutesRepository) SetRefreshFunc(fn func(ctx context.Context, key domain.CachedRoutesKey)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshFn = fn
}

// GetRoutes implements mvc.CachedRoutesRepository. A soft-expired but
// hard-live entry is returned immediately while a refresh runs in the
// background at most once per key.
func (r *cachedRoutesRepository) GetRoutes(ctx context.Context, key domain.CachedRoutesKey) ([]domain.Route, bool, error) {
	raw, err := r.client.Get(ctx, key.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entry cachedRoutesEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// A corrupt entry is unusable; drop it and report a miss.
		if delErr := r.client.Del(ctx, key.String()).Err(); delErr != nil {
			r.logger.Warn("failed to delete corrupt route cache entry", zap.String("key", key.String()), zap.Error(delErr))
		}
		return nil, false, nil
	}

	if r.asyncRefresh && r.softExpiry > 0 && time.Since(entry.StoredAt) > r.softExpiry {
		r.triggerRefresh(key)
	}
	return entry.Routes, true, nil
}

// triggerRefresh starts the refresh for the key unless one is already in
// flight. The refresh runs detached from the request context.
func (r *cachedRoutesRepository) triggerRefresh(key domain.CachedRoutesKey) {
	keyStr := key.String()
	r.refreshWG.Add(1)
	go func() {
		defer r.refreshWG.Done()
		_, _, shared := r.refreshGroup.Do(keyStr, func() (interface{}, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			r.mu.RLock()
			fn := r.refreshFn
			r.mu.RUnlock()

			if fn != nil {
				fn(ctx, key)
				cacheRefreshCounter.WithLabelValues("refreshed").Inc()
				return nil, nil
			}
			if err := r.client.Del(ctx, keyStr).Err(); err != nil {
				r.logger.Warn("failed to evict soft-expired route cache entry", zap.String("key", keyStr), zap.Error(err))
				cacheRefreshCounter.WithLabelValues("error").Inc()
				return nil, err
			}
			cacheRefreshCounter.WithLabelValues("evicted").Inc()
			return nil, nil
		})
		if shared {
			cacheRefreshCounter.WithLabelValues("deduplicated").Inc()
		}
	}()
}

// SetRoutes implements mvc.CachedRoutesRepository. Routes are stored with the
// write timestamp; each route is independently usable on read.
func (r *cachedRoutesRepository) SetRoutes(ctx context.Context, key domain.CachedRoutesKey, routes []domain.Route) error {
	entry := cachedRoutesEntry{
		StoredAt: time.Now().UTC(),
		Routes:   routes,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key.String(), raw, r.hardExpiry).Err()
}

// DeleteKey implements mvc.CachedRoutesRepository.
func (r *cachedRoutesRepository) DeleteKey(ctx context.Context, rawKey string) error {
	return r.client.Del(ctx, rawKey).Err()
}

// InspectKey implements mvc.CachedRoutesRepository. The value is read as a
// string first, then as a list, then as a sorted set.
func (r *cachedRoutesRepository) InspectKey(ctx context.Context, rawKey string) (domain.CacheKeyInspection, error) {
	value, err := r.client.Get(ctx, rawKey).Result()
	if err == nil {
		return domain.CacheKeyInspection{Type: "string", Value: value}, nil
	}
	if errors.Is(err, redis.Nil) {
		return domain.CacheKeyInspection{Type: "none"}, nil
	}

	items, err := r.client.LRange(ctx, rawKey, 0, -1).Result()
	if err == nil {
		return domain.CacheKeyInspection{Type: "list", Value: items}, nil
	}

	members, err := r.client.ZRangeWithScores(ctx, rawKey, 0, -1).Result()
	if err == nil {
		scored := make(map[string]float64, len(members))
		for _, member := range members {
			if name, ok := member.Member.(string); ok {
				scored[name] = member.Score
			}
		}
		return domain.CacheKeyInspection{Type: "zset", Value: scored}, nil
	}
	return domain.CacheKeyInspection{}, err
}

// waitForRefreshes blocks until in-flight background refreshes complete.
// Test hook.
func (r *cachedRoutesRepository) waitForRefreshes() {
	r.refreshWG.Wait()
}
