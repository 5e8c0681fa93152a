package mvc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

// GasEstimator computes per-route gas in native units, including the
// optional L1 data availability component on rollups.
type GasEstimator interface {
	// EstimateRouteGas prices one quote's route at the given gas price.
	// calldata is the built trade calldata used for L1 data gas on rollups;
	// it may be nil, in which case approximation applies where configured.
	// L1 estimation failures degrade to a zero L1 contribution.
	EstimateRouteGas(ctx context.Context, chain domain.ChainInfo, quote domain.Quote, gasPriceWei *big.Int, calldata []byte) (domain.GasDetails, error)
}

// GasConverter converts gas denominated in wrapped native into the quote
// token using the deepest native/quote pool available.
type GasConverter interface {
	// Convert populates GasCostQuoteToken and GasCostUSD on the details.
	// nativeUSDPrice is the USD price of the wrapped native token, 0 when
	// unknown. Conversion failures yield a zero quote-token cost, never an
	// error.
	Convert(ctx context.Context, chain domain.ChainInfo, quoteToken common.Address, pools []domain.PoolInfo, details domain.GasDetails, nativeUSDPrice float64) domain.GasDetails
}
