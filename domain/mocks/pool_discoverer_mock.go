package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

var _ mvc.PoolDiscoverer = &PoolDiscovererMock{}

// PoolDiscovererMock is a configurable mock of mvc.PoolDiscoverer.
type PoolDiscovererMock struct {
	NameValue             string
	GetPoolsFunc          func(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error)
	GetPoolsForTokensFunc func(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error)

	GetPoolsCalls          int
	GetPoolsForTokensCalls int
}

func (m *PoolDiscovererMock) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m *PoolDiscovererMock) GetPools(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error) {
	m.GetPoolsCalls++
	if m.GetPoolsFunc != nil {
		return m.GetPoolsFunc(ctx, chain, protocol)
	}
	return nil, nil
}

func (m *PoolDiscovererMock) GetPoolsForTokens(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	m.GetPoolsForTokensCalls++
	if m.GetPoolsForTokensFunc != nil {
		return m.GetPoolsForTokensFunc(ctx, chain, protocol, tokenIn, tokenOut, hooks, skipTokenCache)
	}
	return nil, nil
}
