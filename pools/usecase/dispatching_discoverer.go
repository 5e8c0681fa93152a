package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

var _ mvc.PoolDiscoverer = &dispatchingPoolDiscoverer{}

// dispatchingPoolDiscoverer routes queries to per-protocol discoverers and
// always unions the direct synthesiser into token-pair results, so a direct
// pool created a block ago is still swappable.
type dispatchingPoolDiscoverer struct {
	byProtocol map[domain.Protocol]mvc.PoolDiscoverer
	direct     mvc.PoolDiscoverer
}

func NewDispatchingPoolDiscoverer(byProtocol map[domain.Protocol]mvc.PoolDiscoverer, direct mvc.PoolDiscoverer) mvc.PoolDiscoverer {
	return &dispatchingPoolDiscoverer{
		byProtocol: byProtocol,
		direct:     direct,
	}
}

func (d *dispatchingPoolDiscoverer) Name() string {
	return "dispatch"
}

// GetPools implements mvc.PoolDiscoverer.
func (d *dispatchingPoolDiscoverer) GetPools(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error) {
	discoverer, ok := d.byProtocol[protocol]
	if !ok {
		return nil, nil
	}
	return discoverer.GetPools(ctx, chain, protocol)
}

// GetPoolsForTokens implements mvc.PoolDiscoverer.
func (d *dispatchingPoolDiscoverer) GetPoolsForTokens(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	var pools []domain.PoolInfo
	if discoverer, ok := d.byProtocol[protocol]; ok {
		discovered, err := discoverer.GetPoolsForTokens(ctx, chain, protocol, tokenIn, tokenOut, hooks, skipTokenCache)
		if err != nil {
			return nil, err
		}
		pools = discovered
	}

	direct, err := d.direct.GetPoolsForTokens(ctx, chain, protocol, tokenIn, tokenOut, hooks, skipTokenCache)
	if err != nil {
		return nil, err
	}

	return unionPools(pools, direct), nil
}

// unionPools appends extras that are not already present by pool key.
func unionPools(pools, extras []domain.PoolInfo) []domain.PoolInfo {
	seen := make(map[string]struct{}, len(pools))
	for _, pool := range pools {
		seen[pool.Key()] = struct{}{}
	}
	for _, extra := range extras {
		if _, ok := seen[extra.Key()]; ok {
			continue
		}
		seen[extra.Key()] = struct{}{}
		pools = append(pools, extra)
	}
	return pools
}
