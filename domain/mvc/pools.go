package mvc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

// PoolDiscoverer produces candidate pool sets for a chain and protocol.
// Implementations identify themselves with a stable name embedded in all
// cache keys so competing implementations never collide.
type PoolDiscoverer interface {
	Name() string

	// GetPools returns all known pools for the chain and protocol.
	GetPools(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error)

	// GetPoolsForTokens returns pools relevant to the given token pair.
	GetPoolsForTokens(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error)
}

// PoolsUsecase is the pool discovery facade consumed by the router:
// protocol dispatch, caching, fallback and top-pool selection composed.
type PoolsUsecase interface {
	// GetCandidatePools returns the reduced, diverse pool set for a pair
	// across the requested protocols.
	GetCandidatePools(ctx context.Context, chain domain.ChainInfo, protocols []domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error)

	// RefreshPoolDetails re-reads on-chain state for the pools of the chosen
	// final routes. This is the only place pool state is re-read.
	RefreshPoolDetails(ctx context.Context, chain domain.ChainInfo, routes []domain.Route) ([]domain.Route, error)
}
