package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mocks"
	"github.com/uniroute-labs/uniroute/log"
)

func poolFixture(addrByte byte, tvl float64) domain.PoolInfo {
	token0, token1 := domain.SortTokens(testUSDC, testWETH)
	return domain.PoolInfo{
		Pool: domain.Pool{
			Protocol: domain.ProtocolV2,
			Address:  common.BytesToAddress([]byte{addrByte}),
			Token0:   token0,
			Token1:   token1,
		},
		TVLNative: tvl,
	}
}

func TestFallbackDiscoverer_PrimarySuccess(t *testing.T) {
	primaryPools := []domain.PoolInfo{poolFixture(0x01, 1)}
	primary := &mocks.PoolDiscovererMock{
		NameValue: "primary",
		GetPoolsForTokensFunc: func(context.Context, domain.ChainID, domain.Protocol, common.Address, common.Address, domain.HooksOption, bool) ([]domain.PoolInfo, error) {
			return primaryPools, nil
		},
	}
	fallback := &mocks.PoolDiscovererMock{NameValue: "fallback"}

	discoverer := NewFallbackPoolDiscoverer(primary, fallback, log.NewNopLogger())
	pools, err := discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)
	require.Equal(t, primaryPools, pools)
	require.Zero(t, fallback.GetPoolsForTokensCalls)
}

func TestFallbackDiscoverer_PrimaryErrorSwallowed(t *testing.T) {
	fallbackPools := []domain.PoolInfo{poolFixture(0x02, 2)}
	primary := &mocks.PoolDiscovererMock{
		NameValue: "primary",
		GetPoolsForTokensFunc: func(context.Context, domain.ChainID, domain.Protocol, common.Address, common.Address, domain.HooksOption, bool) ([]domain.PoolInfo, error) {
			return nil, errors.New("s3 unavailable")
		},
	}
	fallback := &mocks.PoolDiscovererMock{
		NameValue: "fallback",
		GetPoolsForTokensFunc: func(context.Context, domain.ChainID, domain.Protocol, common.Address, common.Address, domain.HooksOption, bool) ([]domain.PoolInfo, error) {
			return fallbackPools, nil
		},
	}

	discoverer := NewFallbackPoolDiscoverer(primary, fallback, log.NewNopLogger())
	pools, err := discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)
	require.Equal(t, fallbackPools, pools)
}

func TestFallbackDiscoverer_PrimaryEmptyTriggersFallback(t *testing.T) {
	fallbackPools := []domain.PoolInfo{poolFixture(0x03, 3)}
	primary := &mocks.PoolDiscovererMock{NameValue: "primary"}
	fallback := &mocks.PoolDiscovererMock{
		NameValue: "fallback",
		GetPoolsForTokensFunc: func(context.Context, domain.ChainID, domain.Protocol, common.Address, common.Address, domain.HooksOption, bool) ([]domain.PoolInfo, error) {
			return fallbackPools, nil
		},
	}

	discoverer := NewFallbackPoolDiscoverer(primary, fallback, log.NewNopLogger())
	pools, err := discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)
	require.Equal(t, fallbackPools, pools)
	require.Equal(t, 1, primary.GetPoolsForTokensCalls)
}

func TestFallbackDiscoverer_FallbackErrorPropagates(t *testing.T) {
	wantErr := errors.New("fallback down")
	primary := &mocks.PoolDiscovererMock{NameValue: "primary"}
	fallback := &mocks.PoolDiscovererMock{
		NameValue: "fallback",
		GetPoolsFunc: func(context.Context, domain.ChainID, domain.Protocol) ([]domain.PoolInfo, error) {
			return nil, wantErr
		},
	}

	discoverer := NewFallbackPoolDiscoverer(primary, fallback, log.NewNopLogger())
	_, err := discoverer.GetPools(context.Background(), domain.ChainMainnet, domain.ProtocolV2)
	require.ErrorIs(t, err, wantErr)
}
