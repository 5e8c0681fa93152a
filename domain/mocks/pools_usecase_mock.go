package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

// PoolsUsecaseMock is a programmable mvc.PoolsUsecase.
type PoolsUsecaseMock struct {
	GetCandidatePoolsFunc  func(ctx context.Context, chain domain.ChainInfo, protocols []domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error)
	RefreshPoolDetailsFunc func(ctx context.Context, chain domain.ChainInfo, routes []domain.Route) ([]domain.Route, error)

	GetCandidatePoolsCalls  int
	RefreshPoolDetailsCalls int
}

var _ mvc.PoolsUsecase = &PoolsUsecaseMock{}

func (m *PoolsUsecaseMock) GetCandidatePools(ctx context.Context, chain domain.ChainInfo, protocols []domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	m.GetCandidatePoolsCalls++
	if m.GetCandidatePoolsFunc != nil {
		return m.GetCandidatePoolsFunc(ctx, chain, protocols, tokenIn, tokenOut, hooks, skipTokenCache)
	}
	return nil, nil
}

func (m *PoolsUsecaseMock) RefreshPoolDetails(ctx context.Context, chain domain.ChainInfo, routes []domain.Route) ([]domain.Route, error) {
	m.RefreshPoolDetailsCalls++
	if m.RefreshPoolDetailsFunc != nil {
		return m.RefreshPoolDetailsFunc(ctx, chain, routes)
	}
	return routes, nil
}
