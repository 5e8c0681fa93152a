package domain

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Protocol tags the AMM protocol family of a pool or route.
type Protocol string

const (
	ProtocolV2    Protocol = "v2"
	ProtocolV3    Protocol = "v3"
	ProtocolV4    Protocol = "v4"
	ProtocolMixed Protocol = "mixed"
)

// AllPoolProtocols are the concrete pool protocols, excluding the mixed
// route-level tag.
var AllPoolProtocols = []Protocol{ProtocolV2, ProtocolV3, ProtocolV4}

// ParseProtocols parses a comma-separated protocol list such as "v2,v3,mixed".
func ParseProtocols(s string) ([]Protocol, error) {
	if s == "" {
		return nil, fmt.Errorf("protocols must not be empty")
	}
	parts := strings.Split(strings.ToLower(s), ",")
	protocols := make([]Protocol, 0, len(parts))
	for _, part := range parts {
		switch Protocol(strings.TrimSpace(part)) {
		case ProtocolV2:
			protocols = append(protocols, ProtocolV2)
		case ProtocolV3:
			protocols = append(protocols, ProtocolV3)
		case ProtocolV4:
			protocols = append(protocols, ProtocolV4)
		case ProtocolMixed:
			protocols = append(protocols, ProtocolMixed)
		default:
			return nil, fmt.Errorf("unknown protocol %q", part)
		}
	}
	return protocols, nil
}

// HooksOption filters V4 pools by hook presence.
type HooksOption string

const (
	HooksInclusive HooksOption = "HOOKS_INCLUSIVE"
	HooksOnly      HooksOption = "HOOKS_ONLY"
	NoHooks        HooksOption = "NO_HOOKS"
)

// FakeTickSpacing is the sentinel tick spacing of the synthetic V4 pool
// inserted between native currency and its wrapped form during route search.
// Pools carrying it are stripped from responses.
const FakeTickSpacing int32 = 0

// Pool is a discriminated union over the supported AMM protocols.
// The Protocol tag selects which field group is meaningful:
// V2 uses reserves; V3 adds fee/liquidity/price/tick; V4 extends V3 with
// tick spacing, hooks and the pool id.
type Pool struct {
	Protocol Protocol       `json:"protocol"`
	Address  common.Address `json:"address"`
	Token0   common.Address `json:"token0"`
	Token1   common.Address `json:"token1"`

	// V2
	Reserve0 *uint256.Int `json:"reserve0,omitempty"`
	Reserve1 *uint256.Int `json:"reserve1,omitempty"`

	// V3 / V4
	Fee          uint32       `json:"fee,omitempty"`
	Liquidity    *uint256.Int `json:"liquidity,omitempty"`
	SqrtPriceX96 *uint256.Int `json:"sqrtPriceX96,omitempty"`
	TickCurrent  int32        `json:"tickCurrent,omitempty"`

	// V4
	TickSpacing int32          `json:"tickSpacing,omitempty"`
	Hooks       common.Address `json:"hooks,omitempty"`
	PoolID      common.Hash    `json:"poolId,omitempty"`
}

// Validate checks pool-level invariants: token ordering and non-zero state
// where the protocol requires it. V3 pools with zero liquidity and V4 pools
// with zero liquidity and no hooks are rejected so they are dropped before
// route construction.
func (p Pool) Validate() error {
	if bytes.Compare(p.Token0.Bytes(), p.Token1.Bytes()) >= 0 {
		return fmt.Errorf("pool %s: token0 %s must sort before token1 %s", p.Address, p.Token0, p.Token1)
	}
	switch p.Protocol {
	case ProtocolV2:
		if p.Reserve0 == nil || p.Reserve1 == nil {
			return fmt.Errorf("pool %s: v2 pool missing reserves", p.Address)
		}
	case ProtocolV3:
		if p.Liquidity == nil || p.Liquidity.IsZero() {
			return fmt.Errorf("pool %s: v3 pool has zero liquidity", p.Address)
		}
	case ProtocolV4:
		hasHooks := p.Hooks != (common.Address{})
		if (p.Liquidity == nil || p.Liquidity.IsZero()) && !hasHooks {
			return fmt.Errorf("pool %s: v4 pool has zero liquidity and no hooks", p.Address)
		}
	default:
		return fmt.Errorf("pool %s: invalid protocol %q", p.Address, p.Protocol)
	}
	return nil
}

// HasToken returns true if the given token is one of the pool's two tokens.
func (p Pool) HasToken(token common.Address) bool {
	return p.Token0 == token || p.Token1 == token
}

// OtherToken returns the pool token that is not the given one.
// The given token must be one of the pool's tokens.
func (p Pool) OtherToken(token common.Address) common.Address {
	if p.Token0 == token {
		return p.Token1
	}
	return p.Token0
}

// IsSynthetic reports whether the pool is the synthetic native/wrapped-native
// connector inserted by the route finder rather than a real on-chain pool.
func (p Pool) IsSynthetic() bool {
	return p.Protocol == ProtocolV4 && p.Fee == 0 && p.TickSpacing == FakeTickSpacing
}

// Key returns the canonical lowercase identifier of the pool used for
// conflict detection and de-duplication. For V4 pools the pool id
// disambiguates pools sharing the pool manager address.
func (p Pool) Key() string {
	if p.Protocol == ProtocolV4 {
		return strings.ToLower(p.PoolID.Hex())
	}
	return strings.ToLower(p.Address.Hex())
}

// MatchesHooks applies the hook filter to a pool. Non-V4 pools always pass.
func (p Pool) MatchesHooks(opt HooksOption) bool {
	if p.Protocol != ProtocolV4 {
		return true
	}
	hasHooks := p.Hooks != (common.Address{})
	switch opt {
	case HooksOnly:
		return hasHooks
	case NoHooks:
		return !hasHooks
	default:
		return true
	}
}

// PoolInfo is the cached, serialisable projection of a pool used by pool
// discovery and top-pool selection. TVL figures are approximate and used
// for ranking only. PoolInfo values are immutable once read.
type PoolInfo struct {
	Pool

	TVLNative float64 `json:"tvlNative"`
	TVLUSD    float64 `json:"tvlUSD"`
}

// SortTokens returns the two addresses in canonical (token0, token1) order.
func SortTokens(a, b common.Address) (common.Address, common.Address) {
	if bytes.Compare(a.Bytes(), b.Bytes()) < 0 {
		return a, b
	}
	return b, a
}

// TokenPairKey returns a symmetric lowercase cache key component for a token
// pair: TokenPairKey(a, b) == TokenPairKey(b, a).
func TokenPairKey(a, b common.Address) string {
	first, second := SortTokens(a, b)
	return strings.ToLower(first.Hex()) + "/" + strings.ToLower(second.Hex())
}
