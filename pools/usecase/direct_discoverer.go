package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

var _ mvc.PoolDiscoverer = &directPoolDiscoverer{}

// directPoolDiscoverer synthesises the deterministic direct pool addresses
// for a token pair from the chain's factory addresses. It lets brand-new
// pools be swapped through before any indexer has observed them. The
// synthesised state is a placeholder; real state is read only for pools that
// end up on a chosen route.
type directPoolDiscoverer struct{}

// v3FeeTiers are the canonical V3 fee tiers in hundredths of a bip.
var v3FeeTiers = []uint32{100, 500, 3000, 10000}

// v4FeeTiers pairs each canonical fee tier with its default tick spacing.
var v4FeeTiers = []struct {
	fee         uint32
	tickSpacing int32
}{
	{100, 1},
	{500, 10},
	{3000, 60},
	{10000, 200},
}

func NewDirectPoolDiscoverer() mvc.PoolDiscoverer {
	return &directPoolDiscoverer{}
}

func (d *directPoolDiscoverer) Name() string {
	return "direct"
}

// GetPools implements mvc.PoolDiscoverer. Direct synthesis needs a token
// pair, so the all-pools query is empty by construction.
func (d *directPoolDiscoverer) GetPools(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error) {
	return nil, nil
}

// GetPoolsForTokens implements mvc.PoolDiscoverer.
func (d *directPoolDiscoverer) GetPoolsForTokens(ctx context.Context, chainID domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	chain, ok := domain.GetChain(chainID)
	if !ok {
		return nil, domain.UnsupportedChainError{Chain: chainID}
	}

	token0, token1 := domain.SortTokens(domain.WrapNative(chain, tokenIn), domain.WrapNative(chain, tokenOut))
	if token0 == token1 {
		return nil, nil
	}

	switch protocol {
	case domain.ProtocolV2:
		return synthesizeV2(chain, token0, token1), nil
	case domain.ProtocolV3:
		return synthesizeV3(chain, token0, token1), nil
	case domain.ProtocolV4:
		// Hook pool ids cannot be guessed from the pair alone, so synthesis
		// only covers hookless pools.
		if hooks == domain.HooksOnly {
			return nil, nil
		}
		currency0, currency1 := domain.SortTokens(tokenIn, tokenOut)
		return synthesizeV4(chain, currency0, currency1), nil
	default:
		return nil, nil
	}
}

func synthesizeV2(chain domain.ChainInfo, token0, token1 common.Address) []domain.PoolInfo {
	if chain.V2Factory == (common.Address{}) {
		return nil
	}
	salt := crypto.Keccak256Hash(token0.Bytes(), token1.Bytes())
	address := create2Address(chain.V2Factory, salt, chain.V2PairInitCodeHash)
	return []domain.PoolInfo{{
		Pool: domain.Pool{
			Protocol: domain.ProtocolV2,
			Address:  address,
			Token0:   token0,
			Token1:   token1,
			Reserve0: uint256.NewInt(1),
			Reserve1: uint256.NewInt(1),
		},
	}}
}

func synthesizeV3(chain domain.ChainInfo, token0, token1 common.Address) []domain.PoolInfo {
	if chain.V3Factory == (common.Address{}) {
		return nil
	}
	pools := make([]domain.PoolInfo, 0, len(v3FeeTiers))
	for _, fee := range v3FeeTiers {
		salt := crypto.Keccak256Hash(encodeV3Salt(token0, token1, fee))
		pools = append(pools, domain.PoolInfo{
			Pool: domain.Pool{
				Protocol:  domain.ProtocolV3,
				Address:   create2Address(chain.V3Factory, salt, chain.V3PoolInitCodeHash),
				Token0:    token0,
				Token1:    token1,
				Fee:       fee,
				Liquidity: uint256.NewInt(1),
			},
		})
	}
	return pools
}

func synthesizeV4(chain domain.ChainInfo, currency0, currency1 common.Address) []domain.PoolInfo {
	if chain.V4PoolManager == (common.Address{}) {
		return nil
	}
	pools := make([]domain.PoolInfo, 0, len(v4FeeTiers))
	for _, tier := range v4FeeTiers {
		poolID := crypto.Keccak256Hash(encodeV4PoolKey(currency0, currency1, tier.fee, tier.tickSpacing, common.Address{}))
		token0, token1 := currency0, currency1
		if token0 == domain.NativeAddress {
			// Keep the ordering invariant after substituting the native
			// sentinel with the wrapped token for routing.
			token0, token1 = domain.SortTokens(chain.WrappedNative, token1)
		}
		pools = append(pools, domain.PoolInfo{
			Pool: domain.Pool{
				Protocol:    domain.ProtocolV4,
				Address:     chain.V4PoolManager,
				Token0:      token0,
				Token1:      token1,
				Fee:         tier.fee,
				TickSpacing: tier.tickSpacing,
				Liquidity:   uint256.NewInt(1),
				PoolID:      poolID,
			},
		})
	}
	return pools
}

// create2Address computes keccak256(0xff ++ deployer ++ salt ++ initCodeHash)[12:].
func create2Address(deployer common.Address, salt, initCodeHash common.Hash) common.Address {
	return common.BytesToAddress(crypto.Keccak256(
		[]byte{0xff},
		deployer.Bytes(),
		salt.Bytes(),
		initCodeHash.Bytes(),
	)[12:])
}

// encodeV3Salt ABI-encodes (address, address, uint24) for the V3 pool salt.
func encodeV3Salt(token0, token1 common.Address, fee uint32) []byte {
	out := make([]byte, 96)
	copy(out[12:32], token0.Bytes())
	copy(out[44:64], token1.Bytes())
	out[93] = byte(fee >> 16)
	out[94] = byte(fee >> 8)
	out[95] = byte(fee)
	return out
}

// encodeV4PoolKey ABI-encodes the (currency0, currency1, fee, tickSpacing,
// hooks) tuple whose keccak256 is the V4 pool id.
func encodeV4PoolKey(currency0, currency1 common.Address, fee uint32, tickSpacing int32, hooks common.Address) []byte {
	out := make([]byte, 160)
	copy(out[12:32], currency0.Bytes())
	copy(out[44:64], currency1.Bytes())
	out[93] = byte(fee >> 16)
	out[94] = byte(fee >> 8)
	out[95] = byte(fee)
	// int24 tick spacing, sign-extended to 32 bytes.
	spacing := int64(tickSpacing)
	if spacing < 0 {
		for i := 96; i < 125; i++ {
			out[i] = 0xff
		}
	}
	out[125] = byte(uint32(tickSpacing) >> 16)
	out[126] = byte(uint32(tickSpacing) >> 8)
	out[127] = byte(uint32(tickSpacing))
	copy(out[140:160], hooks.Bytes())
	return out
}
