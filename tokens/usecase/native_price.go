package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/domain"
)

// referenceFeeTiers are tried in order when locating the native/stable
// pricing pool. The 0.05% tier carries the deep native/USDC pools on every
// supported chain; 0.3% is the fallback for chains that predate it.
var referenceFeeTiers = []uint32{500, 3000}

var q192 = new(big.Int).Lsh(big.NewInt(1), 192)

// NativeUSDPrice implements mvc.TokenProvider. The price is read from the
// chain's deepest native/USDC V3 pool, derived from the factory rather than
// a hardcoded pool list. Failures degrade to zero; callers treat zero as
// price-unknown.
func (t *tokenProvider) NativeUSDPrice(ctx context.Context, chain domain.ChainID) float64 {
	if price, ok := t.priceCache.Get(chain); ok {
		return price
	}

	price := t.readNativePrice(ctx, chain)
	t.priceCache.Add(chain, price)
	return price
}

func (t *tokenProvider) readNativePrice(ctx context.Context, chain domain.ChainID) float64 {
	chainInfo, ok := domain.GetChain(chain)
	if !ok {
		return 0
	}

	stable := referenceStable(chainInfo)
	if stable == (common.Address{}) {
		return 0
	}

	stableMeta, err := t.GetToken(ctx, chain, stable)
	if err != nil {
		nativePriceFailureCounter.WithLabelValues(chainInfo.Name).Inc()
		t.logger.Warn("native price: stable token metadata unavailable",
			zap.String("chain", chainInfo.Name), zap.Error(err))
		return 0
	}

	token0, token1 := domain.SortTokens(chainInfo.WrappedNative, stable)
	nativeIsToken0 := token0 == chainInfo.WrappedNative

	for _, fee := range referenceFeeTiers {
		pool := v3PoolAddress(chainInfo, token0, token1, fee)
		ret, err := t.chainClient.CallContract(ctx, chain, pool, slot0Selector)
		if err != nil || len(ret) < 32 {
			continue
		}
		sqrtPriceX96 := new(big.Int).SetBytes(ret[:32])
		if sqrtPriceX96.Sign() == 0 {
			continue
		}
		return nativePriceFromSqrt(sqrtPriceX96, nativeIsToken0, stableMeta.Decimals)
	}

	nativePriceFailureCounter.WithLabelValues(chainInfo.Name).Inc()
	t.logger.Warn("native price: no readable reference pool", zap.String("chain", chainInfo.Name))
	return 0
}

// referenceStable picks the chain's first base token that is not the wrapped
// native itself. Base token lists lead with USDC on all supported chains.
func referenceStable(chain domain.ChainInfo) common.Address {
	for _, token := range chain.BaseTokens {
		if token != chain.WrappedNative {
			return token
		}
	}
	return common.Address{}
}

// nativePriceFromSqrt converts a slot0 sqrt price into the USD price of one
// whole wrapped-native token, assuming 18 native decimals.
func nativePriceFromSqrt(sqrtPriceX96 *big.Int, nativeIsToken0 bool, stableDecimals uint8) float64 {
	ratio := new(big.Float).Quo(
		new(big.Float).SetInt(new(big.Int).Mul(sqrtPriceX96, sqrtPriceX96)),
		new(big.Float).SetInt(q192),
	)
	if ratio.Sign() == 0 {
		return 0
	}

	scale := pow10Float(18 - int(stableDecimals))
	var price *big.Float
	if nativeIsToken0 {
		// ratio is stable raw units per native wei.
		price = new(big.Float).Mul(ratio, scale)
	} else {
		// ratio is native wei per stable raw unit.
		price = new(big.Float).Quo(scale, ratio)
	}

	result, _ := price.Float64()
	return result
}

func pow10Float(exp int) *big.Float {
	abs := exp
	if abs < 0 {
		abs = -abs
	}
	power := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs)), nil))
	if exp < 0 {
		return new(big.Float).Quo(big.NewFloat(1), power)
	}
	return power
}

// v3PoolAddress derives the deterministic CREATE2 address of a V3 pool from
// the chain's factory and init code hash.
func v3PoolAddress(chain domain.ChainInfo, token0, token1 common.Address, fee uint32) common.Address {
	salt := crypto.Keccak256(
		common.LeftPadBytes(token0.Bytes(), 32),
		common.LeftPadBytes(token1.Bytes(), 32),
		common.LeftPadBytes(new(big.Int).SetUint64(uint64(fee)).Bytes(), 32),
	)
	return common.BytesToAddress(crypto.Keccak256(
		[]byte{0xff},
		chain.V3Factory.Bytes(),
		salt,
		chain.V3PoolInitCodeHash.Bytes(),
	)[12:])
}
