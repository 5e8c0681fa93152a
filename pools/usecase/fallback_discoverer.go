package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var _ mvc.PoolDiscoverer = &fallbackPoolDiscoverer{}

// fallbackPoolDiscoverer composes two discoverers: the fallback is consulted
// when the primary errors or returns an empty result. Primary errors are
// logged and swallowed; fallback errors propagate.
type fallbackPoolDiscoverer struct {
	primary  mvc.PoolDiscoverer
	fallback mvc.PoolDiscoverer
	logger   log.Logger
}

func NewFallbackPoolDiscoverer(primary, fallback mvc.PoolDiscoverer, logger log.Logger) mvc.PoolDiscoverer {
	return &fallbackPoolDiscoverer{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *fallbackPoolDiscoverer) Name() string {
	return fmt.Sprintf("%s+%s", f.primary.Name(), f.fallback.Name())
}

// GetPools implements mvc.PoolDiscoverer.
func (f *fallbackPoolDiscoverer) GetPools(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error) {
	pools, err := f.primary.GetPools(ctx, chain, protocol)
	if err == nil && len(pools) > 0 {
		return pools, nil
	}
	if err != nil {
		f.logger.Warn("primary pool discoverer failed, falling back",
			zap.String("primary", f.primary.Name()),
			zap.String("protocol", string(protocol)),
			zap.Error(err))
	}
	return f.fallback.GetPools(ctx, chain, protocol)
}

// GetPoolsForTokens implements mvc.PoolDiscoverer.
func (f *fallbackPoolDiscoverer) GetPoolsForTokens(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	pools, err := f.primary.GetPoolsForTokens(ctx, chain, protocol, tokenIn, tokenOut, hooks, skipTokenCache)
	if err == nil && len(pools) > 0 {
		return pools, nil
	}
	if err != nil {
		f.logger.Warn("primary pool discoverer failed, falling back",
			zap.String("primary", f.primary.Name()),
			zap.String("protocol", string(protocol)),
			zap.Error(err))
	}
	return f.fallback.GetPoolsForTokens(ctx, chain, protocol, tokenIn, tokenOut, hooks, skipTokenCache)
}
