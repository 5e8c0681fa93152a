package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

type poolsUseCase struct {
	config domain.PoolsConfig

	discoverer       mvc.PoolDiscoverer
	directDiscoverer mvc.PoolDiscoverer
	selector         *topPoolsSelector
	chainClient      mvc.ChainClient
	logger           log.Logger

	unsupportedTokens map[common.Address]struct{}
}

var _ mvc.PoolsUsecase = &poolsUseCase{}

// NewPoolsUsecase creates the pool discovery facade: protocol fan-out through
// the given discoverer, hook and unsupported-token filtering, and top-pool
// selection. directDiscoverer feeds the selector's synthesised direct pools.
func NewPoolsUsecase(config domain.PoolsConfig, discoverer, directDiscoverer mvc.PoolDiscoverer, chainClient mvc.ChainClient, logger log.Logger) mvc.PoolsUsecase {
	unsupported := make(map[common.Address]struct{}, len(config.UnsupportedTokens))
	for _, token := range config.UnsupportedTokens {
		unsupported[common.HexToAddress(token)] = struct{}{}
	}
	return &poolsUseCase{
		config:            config,
		discoverer:        discoverer,
		directDiscoverer:  directDiscoverer,
		selector:          NewTopPoolsSelector(config),
		chainClient:       chainClient,
		logger:            logger,
		unsupportedTokens: unsupported,
	}
}

// GetCandidatePools implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetCandidatePools(ctx context.Context, chain domain.ChainInfo, protocols []domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	wrappedIn := domain.WrapNative(chain, tokenIn)
	wrappedOut := domain.WrapNative(chain, tokenOut)

	poolProtocols := expandProtocols(protocols)

	var (
		mu       sync.Mutex
		selected []domain.PoolInfo
	)

	group, groupCtx := errgroup.WithContext(ctx)
	for _, protocol := range poolProtocols {
		protocol := protocol
		group.Go(func() error {
			pools, err := p.discoverer.GetPoolsForTokens(groupCtx, chain.ID, protocol, wrappedIn, wrappedOut, hooks, skipTokenCache)
			if err != nil {
				return fmt.Errorf("discover %s pools: %w", protocol, err)
			}

			pools = p.filterPools(pools, hooks)
			top := p.selector.SelectTopPools(chain, pools, wrappedIn, wrappedOut, func() []domain.PoolInfo {
				return p.synthesizeDirect(groupCtx, chain.ID, protocol, tokenIn, tokenOut, hooks)
			})

			mu.Lock()
			selected = append(selected, top...)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return dedupePools(selected), nil
}

// expandProtocols maps the route-level mixed tag to the concrete pool
// protocols and de-duplicates.
func expandProtocols(protocols []domain.Protocol) []domain.Protocol {
	seen := make(map[domain.Protocol]struct{}, len(domain.AllPoolProtocols))
	out := make([]domain.Protocol, 0, len(domain.AllPoolProtocols))
	for _, protocol := range protocols {
		expanded := []domain.Protocol{protocol}
		if protocol == domain.ProtocolMixed {
			expanded = domain.AllPoolProtocols
		}
		for _, concrete := range expanded {
			if _, ok := seen[concrete]; ok {
				continue
			}
			seen[concrete] = struct{}{}
			out = append(out, concrete)
		}
	}
	return out
}

// filterPools applies the hook filter, the unsupported-token filter and
// structural validation. Invalid pools are dropped silently.
func (p *poolsUseCase) filterPools(pools []domain.PoolInfo, hooks domain.HooksOption) []domain.PoolInfo {
	filtered := make([]domain.PoolInfo, 0, len(pools))
	for _, pool := range pools {
		if !pool.MatchesHooks(hooks) {
			continue
		}
		if p.isUnsupported(pool.Token0) || p.isUnsupported(pool.Token1) {
			continue
		}
		if err := pool.Validate(); err != nil {
			continue
		}
		filtered = append(filtered, pool)
	}
	return filtered
}

func (p *poolsUseCase) isUnsupported(token common.Address) bool {
	_, ok := p.unsupportedTokens[token]
	return ok
}

func (p *poolsUseCase) synthesizeDirect(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption) []domain.PoolInfo {
	pools, err := p.directDiscoverer.GetPoolsForTokens(ctx, chain, protocol, tokenIn, tokenOut, hooks, true)
	if err != nil {
		p.logger.Warn("direct pool synthesis failed", zap.String("protocol", string(protocol)), zap.Error(err))
		return nil
	}
	return pools
}

func dedupePools(pools []domain.PoolInfo) []domain.PoolInfo {
	seen := make(map[string]struct{}, len(pools))
	out := make([]domain.PoolInfo, 0, len(pools))
	for _, pool := range pools {
		if _, ok := seen[pool.Key()]; ok {
			continue
		}
		seen[pool.Key()] = struct{}{}
		out = append(out, pool)
	}
	return out
}

var (
	// UniswapV2Pair.getReserves()
	getReservesSelector = []byte{0x09, 0x02, 0xf1, 0xac}
	// UniswapV3Pool.slot0()
	slot0Selector = []byte{0x38, 0x50, 0xc7, 0xbd}
	// UniswapV3Pool.liquidity()
	liquiditySelector = []byte{0x1a, 0x68, 0x65, 0x02}
)

// RefreshPoolDetails implements mvc.PoolsUsecase. State is re-read only for
// the pools of the chosen final routes; individual read failures keep the
// stale snapshot rather than failing the quote.
func (p *poolsUseCase) RefreshPoolDetails(ctx context.Context, chain domain.ChainInfo, routes []domain.Route) ([]domain.Route, error) {
	type poolRef struct {
		routeIdx int
		poolIdx  int
	}
	refs := make(map[string][]poolRef)

	refreshed := make([]domain.Route, len(routes))
	for i, route := range routes {
		refreshed[i] = route
		refreshed[i].Pools = append([]domain.Pool(nil), route.Pools...)
		for j, pool := range route.Pools {
			if pool.IsSynthetic() || pool.Protocol == domain.ProtocolV4 {
				continue
			}
			refs[pool.Key()] = append(refs[pool.Key()], poolRef{routeIdx: i, poolIdx: j})
		}
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(8)
	for key, poolRefs := range refs {
		key, poolRefs := key, poolRefs
		group.Go(func() error {
			pool := refreshed[poolRefs[0].routeIdx].Pools[poolRefs[0].poolIdx]
			fresh, err := p.readPoolState(groupCtx, chain.ID, pool)
			if err != nil {
				p.logger.Warn("pool state refresh failed, keeping snapshot",
					zap.String("pool", key), zap.Error(err))
				return nil
			}
			mu.Lock()
			for _, ref := range poolRefs {
				refreshed[ref.routeIdx].Pools[ref.poolIdx] = fresh
			}
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return refreshed, nil
}

func (p *poolsUseCase) readPoolState(ctx context.Context, chain domain.ChainID, pool domain.Pool) (domain.Pool, error) {
	switch pool.Protocol {
	case domain.ProtocolV2:
		ret, err := p.chainClient.CallContract(ctx, chain, pool.Address, getReservesSelector)
		if err != nil {
			return pool, fmt.Errorf("getReserves: %w", err)
		}
		if len(ret) < 64 {
			return pool, fmt.Errorf("getReserves: short return data: %d bytes", len(ret))
		}
		pool.Reserve0 = new(uint256.Int).SetBytes(ret[0:32])
		pool.Reserve1 = new(uint256.Int).SetBytes(ret[32:64])
		return pool, nil

	case domain.ProtocolV3:
		slot0, err := p.chainClient.CallContract(ctx, chain, pool.Address, slot0Selector)
		if err != nil {
			return pool, fmt.Errorf("slot0: %w", err)
		}
		if len(slot0) < 64 {
			return pool, fmt.Errorf("slot0: short return data: %d bytes", len(slot0))
		}
		liquidity, err := p.chainClient.CallContract(ctx, chain, pool.Address, liquiditySelector)
		if err != nil {
			return pool, fmt.Errorf("liquidity: %w", err)
		}
		if len(liquidity) < 32 {
			return pool, fmt.Errorf("liquidity: short return data: %d bytes", len(liquidity))
		}
		pool.SqrtPriceX96 = new(uint256.Int).SetBytes(slot0[0:32])
		pool.TickCurrent = int32(new(uint256.Int).SetBytes(slot0[32:64]).Uint64())
		pool.Liquidity = new(uint256.Int).SetBytes(liquidity[0:32])
		return pool, nil

	default:
		return pool, nil
	}
}
