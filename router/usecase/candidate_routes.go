package usecase

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/uniroute-labs/uniroute/domain"
)

var (
	candidateRoutesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_candidate_routes_total",
			Help: "Total number of candidate routes found at the normal hop budget",
		},
		[]string{"chain"},
	)
	extendedSearchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_extended_route_search_total",
			Help: "Total number of searches escalated to the extended hop budget",
		},
		[]string{"chain"},
	)
	extendedRoutesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_extended_routes_total",
			Help: "Total number of candidate routes contributed by the extended search",
		},
		[]string{"chain"},
	)
)

func init() {
	prometheus.MustRegister(candidateRoutesCounter, extendedSearchCounter, extendedRoutesCounter)
}

// candidateRouteFinder enumerates acyclic routes between two tokens over a
// flat pool set with depth-bounded DFS and lazy deepening.
type candidateRouteFinder struct {
	config domain.RouterConfig
}

func NewCandidateRouteFinder(config domain.RouterConfig) *candidateRouteFinder {
	return &candidateRouteFinder{config: config}
}

// FindCandidateRoutes searches first at MaxHops. When too few routes surface,
// or every found route is a single hop, the search re-runs at MaxHopsExtended
// and keeps only the strictly longer routes, capped at MaxExtendedRoutes.
func (f *candidateRouteFinder) FindCandidateRoutes(chain domain.ChainInfo, pools []domain.PoolInfo, tokenIn, tokenOut common.Address, allowMixedPools bool) []domain.Route {
	searchPools := make([]domain.Pool, 0, len(pools)+1)
	for _, pool := range pools {
		searchPools = append(searchPools, pool.Pool)
	}
	if allowMixedPools && hasV4Pool(searchPools) {
		searchPools = append(searchPools, syntheticNativeConnector(chain))
	}

	routes := dfsRoutes(searchPools, tokenIn, tokenOut, f.config.MaxHops, allowMixedPools)
	candidateRoutesCounter.WithLabelValues(chain.Name).Add(float64(len(routes)))

	if len(routes) >= f.config.MinRoutesThreshold && !allSingleHop(routes) {
		return routes
	}

	extendedSearchCounter.WithLabelValues(chain.Name).Inc()

	extended := dfsRoutes(searchPools, tokenIn, tokenOut, f.config.MaxHopsExtended, allowMixedPools)
	added := 0
	for _, route := range extended {
		if len(route.Pools) <= f.config.MaxHops {
			continue
		}
		if added >= f.config.MaxExtendedRoutes {
			break
		}
		routes = append(routes, route)
		added++
	}
	extendedRoutesCounter.WithLabelValues(chain.Name).Add(float64(added))

	return routes
}

// syntheticNativeConnector is the zero-fee V4 pool joining the native
// currency to its wrapped form. It exists only inside the search and pricing
// path and is stripped from response shapes by its sentinel tick spacing.
func syntheticNativeConnector(chain domain.ChainInfo) domain.Pool {
	token0, token1 := domain.SortTokens(domain.NativeAddress, chain.WrappedNative)
	return domain.Pool{
		Protocol:    domain.ProtocolV4,
		Address:     chain.V4PoolManager,
		Token0:      token0,
		Token1:      token1,
		Fee:         0,
		TickSpacing: domain.FakeTickSpacing,
	}
}

func hasV4Pool(pools []domain.Pool) bool {
	for _, pool := range pools {
		if pool.Protocol == domain.ProtocolV4 {
			return true
		}
	}
	return false
}

func allSingleHop(routes []domain.Route) bool {
	for _, route := range routes {
		if len(route.Pools) > 1 {
			return false
		}
	}
	return len(routes) > 0
}

// dfsRoutes runs the depth-bounded route search. Paths chain tokens end to
// end, never revisit a token, and, unless mixed pools are allowed, never mix
// protocols within one route.
func dfsRoutes(pools []domain.Pool, tokenIn, tokenOut common.Address, maxHops int, allowMixedPools bool) []domain.Route {
	byToken := make(map[common.Address][]int, len(pools))
	for i, pool := range pools {
		byToken[pool.Token0] = append(byToken[pool.Token0], i)
		byToken[pool.Token1] = append(byToken[pool.Token1], i)
	}

	var routes []domain.Route
	visitedTokens := map[common.Address]struct{}{tokenIn: {}}
	usedPools := make(map[string]struct{}, maxHops)
	path := make([]domain.Pool, 0, maxHops)

	var visit func(current common.Address, protocol domain.Protocol)
	visit = func(current common.Address, protocol domain.Protocol) {
		if len(path) >= maxHops {
			return
		}
		for _, i := range byToken[current] {
			pool := pools[i]
			if _, ok := usedPools[pool.Key()]; ok {
				continue
			}
			if !allowMixedPools && !pool.IsSynthetic() {
				if protocol != "" && pool.Protocol != protocol {
					continue
				}
			}
			next := pool.OtherToken(current)
			if _, ok := visitedTokens[next]; ok {
				continue
			}

			nextProtocol := protocol
			if !pool.IsSynthetic() {
				nextProtocol = pool.Protocol
			}

			path = append(path, pool)
			if next == tokenOut {
				routes = append(routes, domain.Route{
					Pools:    append([]domain.Pool(nil), path...),
					TokenIn:  tokenIn,
					TokenOut: tokenOut,
				})
			} else {
				usedPools[pool.Key()] = struct{}{}
				visitedTokens[next] = struct{}{}
				visit(next, nextProtocol)
				delete(visitedTokens, next)
				delete(usedPools, pool.Key())
			}
			path = path[:len(path)-1]
		}
	}

	visit(tokenIn, "")
	return routes
}
