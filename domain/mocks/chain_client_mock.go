package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

var _ mvc.ChainClient = &ChainClientMock{}

// ChainClientMock is a configurable mock of mvc.ChainClient.
type ChainClientMock struct {
	GasPriceFunc     func(ctx context.Context, chain domain.ChainID) (*big.Int, error)
	BlockNumberFunc  func(ctx context.Context, chain domain.ChainID) (uint64, error)
	CallContractFunc func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error)
}

func (m *ChainClientMock) GasPrice(ctx context.Context, chain domain.ChainID) (*big.Int, error) {
	if m.GasPriceFunc != nil {
		return m.GasPriceFunc(ctx, chain)
	}
	return big.NewInt(0), nil
}

func (m *ChainClientMock) BlockNumber(ctx context.Context, chain domain.ChainID) (uint64, error) {
	if m.BlockNumberFunc != nil {
		return m.BlockNumberFunc(ctx, chain)
	}
	return 0, nil
}

func (m *ChainClientMock) CallContract(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
	if m.CallContractFunc != nil {
		return m.CallContractFunc(ctx, chain, to, data)
	}
	return nil, nil
}
