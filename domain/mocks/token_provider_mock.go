package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

// TokenProviderMock is a programmable mvc.TokenProvider.
type TokenProviderMock struct {
	GetTokenFunc       func(ctx context.Context, chain domain.ChainID, address common.Address) (domain.TokenMetadata, error)
	NativeUSDPriceFunc func(ctx context.Context, chain domain.ChainID) float64

	// Tokens is consulted when GetTokenFunc is nil.
	Tokens map[common.Address]domain.TokenMetadata
}

var _ mvc.TokenProvider = &TokenProviderMock{}

func (m *TokenProviderMock) GetToken(ctx context.Context, chain domain.ChainID, address common.Address) (domain.TokenMetadata, error) {
	if m.GetTokenFunc != nil {
		return m.GetTokenFunc(ctx, chain, address)
	}
	if meta, ok := m.Tokens[address]; ok {
		return meta, nil
	}
	return domain.TokenMetadata{Chain: chain, Address: address, Decimals: 18}, nil
}

func (m *TokenProviderMock) NativeUSDPrice(ctx context.Context, chain domain.ChainID) float64 {
	if m.NativeUSDPriceFunc != nil {
		return m.NativeUSDPriceFunc(ctx, chain)
	}
	return 0
}
