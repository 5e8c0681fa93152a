package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

// GasEstimatorMock is a programmable mvc.GasEstimator.
type GasEstimatorMock struct {
	EstimateRouteGasFunc func(ctx context.Context, chain domain.ChainInfo, quote domain.Quote, gasPriceWei *big.Int, calldata []byte) (domain.GasDetails, error)
}

var _ mvc.GasEstimator = &GasEstimatorMock{}

func (m *GasEstimatorMock) EstimateRouteGas(ctx context.Context, chain domain.ChainInfo, quote domain.Quote, gasPriceWei *big.Int, calldata []byte) (domain.GasDetails, error) {
	if m.EstimateRouteGasFunc != nil {
		return m.EstimateRouteGasFunc(ctx, chain, quote, gasPriceWei, calldata)
	}
	return domain.GasDetails{GasPriceWei: gasPriceWei, GasCostWei: new(big.Int)}, nil
}

// GasConverterMock is a programmable mvc.GasConverter.
type GasConverterMock struct {
	ConvertFunc func(ctx context.Context, chain domain.ChainInfo, quoteToken common.Address, pools []domain.PoolInfo, details domain.GasDetails, nativeUSDPrice float64) domain.GasDetails
}

var _ mvc.GasConverter = &GasConverterMock{}

func (m *GasConverterMock) Convert(ctx context.Context, chain domain.ChainInfo, quoteToken common.Address, pools []domain.PoolInfo, details domain.GasDetails, nativeUSDPrice float64) domain.GasDetails {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, chain, quoteToken, pools, details, nativeUSDPrice)
	}
	return details
}
