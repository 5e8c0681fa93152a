package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var _ mvc.GasConverter = &gasConverter{}

type gasConverter struct {
	logger log.Logger
}

var gasConversionFailureCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uniroute_gas_conversion_failures_total",
		Help: "Total number of native-to-quote-token gas conversion failures (degraded to zero)",
	},
	[]string{"chain", "reason"},
)

func init() {
	prometheus.MustRegister(gasConversionFailureCounter)
}

// NewGasConverter creates the wrapped-native to quote-token gas converter.
func NewGasConverter(logger log.Logger) mvc.GasConverter {
	return &gasConverter{logger: logger}
}

// Convert implements mvc.GasConverter.
func (g *gasConverter) Convert(ctx context.Context, chain domain.ChainInfo, quoteToken common.Address, pools []domain.PoolInfo, details domain.GasDetails, nativeUSDPrice float64) domain.GasDetails {
	details.GasCostUSD = details.GasCostEth * nativeUSDPrice

	costWei := details.GasCostWei
	if costWei == nil {
		costWei = new(big.Int)
	}

	quoteToken = domain.WrapNative(chain, quoteToken)
	if quoteToken == chain.WrappedNative {
		details.GasCostQuoteToken = new(big.Int).Set(costWei)
		return details
	}

	pool, ok := deepestConversionPool(chain, quoteToken, pools)
	if !ok {
		gasConversionFailureCounter.WithLabelValues(chain.Name, "no_pool").Inc()
		g.logger.Warn("no native/quote pool for gas conversion",
			zap.String("chain", chain.Name), zap.String("quote_token", quoteToken.Hex()))
		details.GasCostQuoteToken = new(big.Int)
		return details
	}

	converted, ok := convertViaPool(pool.Pool, chain.WrappedNative, costWei)
	if !ok {
		gasConversionFailureCounter.WithLabelValues(chain.Name, "zero_price").Inc()
		g.logger.Warn("gas conversion pool has no usable price",
			zap.String("chain", chain.Name), zap.String("pool", pool.Key()))
		details.GasCostQuoteToken = new(big.Int)
		return details
	}

	details.GasCostQuoteToken = converted
	return details
}

// protocol preference for conversion pools, lower is better
var conversionProtocolRank = map[domain.Protocol]int{
	domain.ProtocolV3: 0,
	domain.ProtocolV2: 1,
	domain.ProtocolV4: 2,
}

// deepestConversionPool picks the pool used to price native in the quote
// token: the highest-TVL pool pairing wrapped native with the quote token,
// preferring V3 over V2 over V4.
func deepestConversionPool(chain domain.ChainInfo, quoteToken common.Address, pools []domain.PoolInfo) (domain.PoolInfo, bool) {
	var best domain.PoolInfo
	found := false
	for _, pool := range pools {
		if pool.IsSynthetic() {
			continue
		}
		if !pool.HasToken(chain.WrappedNative) || !pool.HasToken(quoteToken) {
			continue
		}
		rank, ok := conversionProtocolRank[pool.Protocol]
		if !ok {
			continue
		}
		if !found {
			best, found = pool, true
			continue
		}
		bestRank := conversionProtocolRank[best.Protocol]
		if rank < bestRank || (rank == bestRank && pool.TVLNative > best.TVLNative) {
			best = pool
		}
	}
	return best, found
}

var q192 = new(big.Int).Lsh(big.NewInt(1), 192)

// convertViaPool converts an amount of wrapped native into the pool's other
// token at the pool's mid price. Returns false when the pool state yields a
// zero denominator.
func convertViaPool(pool domain.Pool, wrappedNative common.Address, amountNative *big.Int) (*big.Int, bool) {
	if pool.Protocol == domain.ProtocolV2 {
		reserveNative, reserveQuote := pool.Reserve0, pool.Reserve1
		if pool.Token1 == wrappedNative {
			reserveNative, reserveQuote = reserveQuote, reserveNative
		}
		if reserveNative == nil || reserveQuote == nil || reserveNative.IsZero() {
			return nil, false
		}
		out := new(big.Int).Mul(amountNative, reserveQuote.ToBig())
		return out.Quo(out, reserveNative.ToBig()), true
	}

	if pool.SqrtPriceX96 == nil || pool.SqrtPriceX96.IsZero() {
		return nil, false
	}
	ratio := pool.SqrtPriceX96.ToBig()
	ratio.Mul(ratio, ratio)

	// sqrtPriceX96^2 / 2^192 is the token1-per-token0 price.
	if pool.Token0 == wrappedNative {
		out := new(big.Int).Mul(amountNative, ratio)
		return out.Quo(out, q192), true
	}
	out := new(big.Int).Mul(amountNative, q192)
	return out.Quo(out, ratio), true
}
