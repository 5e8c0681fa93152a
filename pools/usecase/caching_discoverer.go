package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/cache"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

var _ mvc.PoolDiscoverer = &cachingPoolDiscoverer{}

const tokenPairCacheSize = 4096

// cachingPoolDiscoverer adds a read-through cache in front of another
// discoverer: a wide all-pools cache on an hours scale and a narrower
// token-pair cache on a minutes scale. Cache keys embed the inner
// discoverer's name so competing implementations never collide.
type cachingPoolDiscoverer struct {
	inner mvc.PoolDiscoverer

	allPoolsCache  *cache.Cache
	allPoolsTTL    time.Duration
	tokenPairCache *expirable.LRU[string, []domain.PoolInfo]
}

func NewCachingPoolDiscoverer(inner mvc.PoolDiscoverer, config domain.PoolsConfig) mvc.PoolDiscoverer {
	tokenPairTTL := time.Duration(config.TokenPairCacheTTLSeconds) * time.Second
	return &cachingPoolDiscoverer{
		inner:          inner,
		allPoolsCache:  cache.New(),
		allPoolsTTL:    time.Duration(config.AllPoolsCacheTTLSeconds) * time.Second,
		tokenPairCache: expirable.NewLRU[string, []domain.PoolInfo](tokenPairCacheSize, nil, tokenPairTTL),
	}
}

func (c *cachingPoolDiscoverer) Name() string {
	return c.inner.Name()
}

// GetPools implements mvc.PoolDiscoverer.
func (c *cachingPoolDiscoverer) GetPools(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error) {
	key := c.allPoolsKey(chain, protocol)
	if value, found := c.allPoolsCache.Get(key); found {
		// An unexpected entry type is a miss, not an error.
		if pools, ok := value.([]domain.PoolInfo); ok {
			return pools, nil
		}
	}

	pools, err := c.inner.GetPools(ctx, chain, protocol)
	if err != nil {
		return nil, err
	}

	c.allPoolsCache.Set(key, pools, c.allPoolsTTL)
	return pools, nil
}

// GetPoolsForTokens implements mvc.PoolDiscoverer. skipTokenCache bypasses
// the read but still refreshes the entry.
func (c *cachingPoolDiscoverer) GetPoolsForTokens(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	key := c.tokenPairKey(chain, protocol, tokenIn, tokenOut, hooks)
	if !skipTokenCache {
		if pools, found := c.tokenPairCache.Get(key); found {
			return pools, nil
		}
	}

	pools, err := c.inner.GetPoolsForTokens(ctx, chain, protocol, tokenIn, tokenOut, hooks, skipTokenCache)
	if err != nil {
		return nil, err
	}

	c.tokenPairCache.Add(key, pools)
	return pools, nil
}

func (c *cachingPoolDiscoverer) allPoolsKey(chain domain.ChainID, protocol domain.Protocol) string {
	return fmt.Sprintf("%s#allpools#%d#%s", c.inner.Name(), chain, protocol)
}

func (c *cachingPoolDiscoverer) tokenPairKey(chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption) string {
	return fmt.Sprintf("%s#pair#%d#%s#%s#%s", c.inner.Name(), chain, protocol, domain.TokenPairKey(tokenIn, tokenOut), hooks)
}
