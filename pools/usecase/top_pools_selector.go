package usecase

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

// topPoolsSelector reduces a raw pool list for one token pair to a bounded,
// diverse union of slices: direct pairs, one-hop neighbours of each side,
// second-hop pairs of the surfaced intermediaries, global top pools,
// base-token pairs and native/wrapped connectors. Slices share one
// selected-set so the union never duplicates a pool.
type topPoolsSelector struct {
	config domain.PoolsConfig

	blockedTokens map[common.Address]struct{}
	blockedPools  map[string]struct{}
}

func NewTopPoolsSelector(config domain.PoolsConfig) *topPoolsSelector {
	blockedTokens := make(map[common.Address]struct{}, len(config.BlockedTokens))
	for _, token := range config.BlockedTokens {
		blockedTokens[common.HexToAddress(token)] = struct{}{}
	}
	blockedPools := make(map[string]struct{}, len(config.BlockedPools))
	for _, pool := range config.BlockedPools {
		blockedPools[strings.ToLower(pool)] = struct{}{}
	}
	return &topPoolsSelector{
		config:        config,
		blockedTokens: blockedTokens,
		blockedPools:  blockedPools,
	}
}

type poolSelection struct {
	selected map[string]struct{}
	result   []domain.PoolInfo
}

func (s *poolSelection) add(pool domain.PoolInfo) bool {
	key := pool.Key()
	if _, ok := s.selected[key]; ok {
		return false
	}
	s.selected[key] = struct{}{}
	s.result = append(s.result, pool)
	return true
}

// SelectTopPools reduces pools for the (tokenIn, tokenOut) pair. Both tokens
// must already be in wrapped form. synthesizeDirect provides the deterministic
// direct pools appended when no real direct pair survives, so a brand-new
// direct pool can still win.
func (s *topPoolsSelector) SelectTopPools(chain domain.ChainInfo, pools []domain.PoolInfo, tokenIn, tokenOut common.Address, synthesizeDirect func() []domain.PoolInfo) []domain.PoolInfo {
	// One TVL-descending order shared by every slice.
	sorted := make([]domain.PoolInfo, len(pools))
	copy(sorted, pools)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TVLNative > sorted[j].TVLNative
	})

	// token -> indices into sorted, preserving TVL order.
	byToken := make(map[common.Address][]int)
	for i, pool := range sorted {
		byToken[pool.Token0] = append(byToken[pool.Token0], i)
		if pool.Token1 != pool.Token0 {
			byToken[pool.Token1] = append(byToken[pool.Token1], i)
		}
	}

	selection := &poolSelection{selected: make(map[string]struct{}, len(sorted))}

	// Slice 1: direct pairs.
	directCount := 0
	for _, i := range byToken[tokenIn] {
		if directCount >= s.config.TopNDirectPairs {
			break
		}
		pool := sorted[i]
		if !pool.HasToken(tokenOut) {
			continue
		}
		if pool.Protocol == domain.ProtocolV3 && s.isBlocked(pool) {
			continue
		}
		if selection.add(pool) {
			directCount++
		}
	}

	// Slices 2 and 3: one-hop neighbours of each side. The tokens they
	// surface feed the second-hop slice.
	intermediaries := make([]common.Address, 0)
	intermediarySeen := map[common.Address]struct{}{tokenIn: {}, tokenOut: {}}
	for _, anchor := range []common.Address{tokenIn, tokenOut} {
		other := tokenOut
		if anchor == tokenOut {
			other = tokenIn
		}
		count := 0
		for _, i := range byToken[anchor] {
			if count >= s.config.TopNOneHopPairs {
				break
			}
			pool := sorted[i]
			if pool.HasToken(other) {
				continue
			}
			if selection.add(pool) {
				count++
			}
			intermediary := pool.OtherToken(anchor)
			if _, ok := intermediarySeen[intermediary]; !ok {
				intermediarySeen[intermediary] = struct{}{}
				intermediaries = append(intermediaries, intermediary)
			}
		}
	}

	// Slice 4: top pools of each surfaced intermediary.
	for _, intermediary := range intermediaries {
		count := 0
		for _, i := range byToken[intermediary] {
			if count >= s.config.TopNSecondHopPairs {
				break
			}
			if selection.add(sorted[i]) {
				count++
			}
		}
	}

	// Slice 5: global top pools.
	count := 0
	for _, pool := range sorted {
		if count >= s.config.TopNPairs {
			break
		}
		if selection.add(pool) {
			count++
		}
	}

	// Slice 6: base-token pairs with each side, globally capped.
	count = 0
	for _, base := range chain.BaseTokens {
		if count >= s.config.TopNWithBaseToken {
			break
		}
		for _, i := range byToken[base] {
			if count >= s.config.TopNWithBaseToken {
				break
			}
			pool := sorted[i]
			if !pool.HasToken(tokenIn) && !pool.HasToken(tokenOut) {
				continue
			}
			if selection.add(pool) {
				count++
			}
		}
	}

	// Slice 7: the single best native/wrapped connector for each side.
	for _, anchor := range []common.Address{tokenIn, tokenOut} {
		if anchor == chain.WrappedNative {
			continue
		}
		for _, i := range byToken[anchor] {
			pool := sorted[i]
			if !pool.HasToken(chain.WrappedNative) {
				continue
			}
			selection.add(pool)
			break
		}
	}

	// No real direct pair survived; append synthesised direct pools so the
	// pair stays swappable.
	if directCount == 0 && len(selection.result) > 0 && synthesizeDirect != nil {
		for _, pool := range synthesizeDirect() {
			if pool.Protocol == domain.ProtocolV3 && s.isBlocked(pool) {
				continue
			}
			selection.add(pool)
		}
	}

	return selection.result
}

func (s *topPoolsSelector) isBlocked(pool domain.PoolInfo) bool {
	if _, ok := s.blockedPools[pool.Key()]; ok {
		return true
	}
	if _, ok := s.blockedTokens[pool.Token0]; ok {
		return true
	}
	_, ok := s.blockedTokens[pool.Token1]
	return ok
}
