package usecase

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mocks"
)

func newCachingFixture() (*mocks.PoolDiscovererMock, *cachingPoolDiscoverer) {
	inner := &mocks.PoolDiscovererMock{
		NameValue: "inner",
		GetPoolsFunc: func(context.Context, domain.ChainID, domain.Protocol) ([]domain.PoolInfo, error) {
			return []domain.PoolInfo{poolFixture(0x01, 1)}, nil
		},
		GetPoolsForTokensFunc: func(context.Context, domain.ChainID, domain.Protocol, common.Address, common.Address, domain.HooksOption, bool) ([]domain.PoolInfo, error) {
			return []domain.PoolInfo{poolFixture(0x02, 2)}, nil
		},
	}
	discoverer := NewCachingPoolDiscoverer(inner, domain.PoolsConfig{
		AllPoolsCacheTTLSeconds:  3600,
		TokenPairCacheTTLSeconds: 60,
	}).(*cachingPoolDiscoverer)
	return inner, discoverer
}

func TestCachingDiscoverer_AllPoolsReadThrough(t *testing.T) {
	inner, discoverer := newCachingFixture()

	first, err := discoverer.GetPools(context.Background(), domain.ChainMainnet, domain.ProtocolV2)
	require.NoError(t, err)
	second, err := discoverer.GetPools(context.Background(), domain.ChainMainnet, domain.ProtocolV2)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, inner.GetPoolsCalls)
}

func TestCachingDiscoverer_TokenPairReadThrough(t *testing.T) {
	inner, discoverer := newCachingFixture()

	_, err := discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)
	_, err = discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)

	require.Equal(t, 1, inner.GetPoolsForTokensCalls)
}

func TestCachingDiscoverer_TokenPairKeyIsSymmetric(t *testing.T) {
	inner, discoverer := newCachingFixture()

	_, err := discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)
	// Reversed pair hits the same entry.
	_, err = discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testWETH, testUSDC, domain.HooksInclusive, false)
	require.NoError(t, err)

	require.Equal(t, 1, inner.GetPoolsForTokensCalls)
}

func TestCachingDiscoverer_SkipTokenCacheBypassesRead(t *testing.T) {
	inner, discoverer := newCachingFixture()

	_, err := discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)
	_, err = discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, true)
	require.NoError(t, err)

	// The bypassing call reaches the inner discoverer but still refreshes
	// the entry for subsequent cached reads.
	require.Equal(t, 2, inner.GetPoolsForTokensCalls)

	_, err = discoverer.GetPoolsForTokens(context.Background(), domain.ChainMainnet, domain.ProtocolV2, testUSDC, testWETH, domain.HooksInclusive, false)
	require.NoError(t, err)
	require.Equal(t, 2, inner.GetPoolsForTokensCalls)
}

func TestCachingDiscoverer_DistinctProtocolsDistinctEntries(t *testing.T) {
	inner, discoverer := newCachingFixture()

	_, err := discoverer.GetPools(context.Background(), domain.ChainMainnet, domain.ProtocolV2)
	require.NoError(t, err)
	_, err = discoverer.GetPools(context.Background(), domain.ChainMainnet, domain.ProtocolV3)
	require.NoError(t, err)

	require.Equal(t, 2, inner.GetPoolsCalls)
}
