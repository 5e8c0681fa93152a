package usecase

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

var (
	feeDenominator = big.NewInt(1_000_000)
	v2FeeNumerator = big.NewInt(997)
	v2Thousand     = big.NewInt(1000)

	q192 = new(big.Int).Lsh(big.NewInt(1), 192)
)

// v2AmountOut applies the constant-product formula with the 0.3% fee taken
// on input, matching the pair contract's getAmountOut.
func v2AmountOut(pool domain.Pool, tokenIn common.Address, amountIn *big.Int) (*big.Int, error) {
	reserveIn, reserveOut, err := orientReserves(pool, tokenIn)
	if err != nil {
		return nil, err
	}

	amountInWithFee := new(big.Int).Mul(amountIn, v2FeeNumerator)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, v2Thousand)
	denominator.Add(denominator, amountInWithFee)
	return numerator.Quo(numerator, denominator), nil
}

// v2AmountIn inverts the constant-product formula, rounding the required
// input up as the pair contract's getAmountIn does.
func v2AmountIn(pool domain.Pool, tokenIn common.Address, amountOut *big.Int) (*big.Int, error) {
	reserveIn, reserveOut, err := orientReserves(pool, tokenIn)
	if err != nil {
		return nil, err
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, fmt.Errorf("pool %s: requested output exceeds reserve", pool.Address)
	}

	numerator := new(big.Int).Mul(reserveIn, amountOut)
	numerator.Mul(numerator, v2Thousand)
	denominator := new(big.Int).Sub(reserveOut, amountOut)
	denominator.Mul(denominator, v2FeeNumerator)
	numerator.Quo(numerator, denominator)
	return numerator.Add(numerator, big.NewInt(1)), nil
}

func orientReserves(pool domain.Pool, tokenIn common.Address) (*big.Int, *big.Int, error) {
	if pool.Reserve0 == nil || pool.Reserve1 == nil || pool.Reserve0.IsZero() || pool.Reserve1.IsZero() {
		return nil, nil, fmt.Errorf("pool %s: empty reserves", pool.Address)
	}
	reserve0 := pool.Reserve0.ToBig()
	reserve1 := pool.Reserve1.ToBig()
	if tokenIn == pool.Token0 {
		return reserve0, reserve1, nil
	}
	return reserve1, reserve0, nil
}

// v4AmountOut approximates a V4 swap at the pool mid price with the fee
// taken on input and no tick crossings. The final winner is re-priced after
// a pool state refresh, so mid-price accuracy is sufficient for ranking.
func v4AmountOut(pool domain.Pool, tokenIn common.Address, amountIn *big.Int) (*big.Int, error) {
	if pool.SqrtPriceX96 == nil || pool.SqrtPriceX96.IsZero() {
		return nil, fmt.Errorf("pool %s: no sqrt price", pool.Address)
	}

	afterFee := new(big.Int).Mul(amountIn, big.NewInt(int64(1_000_000-pool.Fee)))
	afterFee.Quo(afterFee, feeDenominator)

	sqrt := pool.SqrtPriceX96.ToBig()
	priceX192 := new(big.Int).Mul(sqrt, sqrt)
	out := new(big.Int)
	if tokenIn == pool.Token0 {
		out.Mul(afterFee, priceX192).Quo(out, q192)
	} else {
		out.Mul(afterFee, q192).Quo(out, priceX192)
	}
	return out, nil
}

// v4AmountIn is the exact-output inverse of v4AmountOut, rounding up.
func v4AmountIn(pool domain.Pool, tokenIn common.Address, amountOut *big.Int) (*big.Int, error) {
	if pool.SqrtPriceX96 == nil || pool.SqrtPriceX96.IsZero() {
		return nil, fmt.Errorf("pool %s: no sqrt price", pool.Address)
	}
	if pool.Fee >= 1_000_000 {
		return nil, fmt.Errorf("pool %s: invalid fee %d", pool.Address, pool.Fee)
	}

	sqrt := pool.SqrtPriceX96.ToBig()
	priceX192 := new(big.Int).Mul(sqrt, sqrt)
	needed := new(big.Int)
	if tokenIn == pool.Token0 {
		needed.Mul(amountOut, q192).Quo(needed, priceX192)
	} else {
		needed.Mul(amountOut, priceX192).Quo(needed, q192)
	}

	needed.Mul(needed, feeDenominator)
	needed.Quo(needed, big.NewInt(int64(1_000_000-pool.Fee)))
	return needed.Add(needed, big.NewInt(1)), nil
}
