package usecase

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mocks"
	"github.com/uniroute-labs/uniroute/log"
)

func newPoolsUsecaseFixture(discoverer *mocks.PoolDiscovererMock, config domain.PoolsConfig, client *mocks.ChainClientMock) *poolsUseCase {
	if client == nil {
		client = &mocks.ChainClientMock{}
	}
	direct := &mocks.PoolDiscovererMock{NameValue: "direct"}
	return NewPoolsUsecase(config, discoverer, direct, client, log.NewNopLogger()).(*poolsUseCase)
}

func TestPoolsUsecase_HookFiltering(t *testing.T) {
	hooked := pairPool(domain.ProtocolV4, 0x01, testTokenA, testTokenB, 10)
	hooked.Hooks = common.HexToAddress("0x00000000000000000000000000000000000000AB")
	hooked.PoolID = common.HexToHash("0x01")
	hookless := pairPool(domain.ProtocolV4, 0x02, testTokenA, testTokenB, 9)
	hookless.Liquidity = uint256.NewInt(1)
	hookless.PoolID = common.HexToHash("0x02")

	discoverer := &mocks.PoolDiscovererMock{
		GetPoolsForTokensFunc: func(context.Context, domain.ChainID, domain.Protocol, common.Address, common.Address, domain.HooksOption, bool) ([]domain.PoolInfo, error) {
			return []domain.PoolInfo{hooked, hookless}, nil
		},
	}
	usecase := newPoolsUsecaseFixture(discoverer, selectorConfig(), nil)
	chain := testChain(t)

	cases := []struct {
		name  string
		hooks domain.HooksOption
		want  int
	}{
		{name: "inclusive keeps both", hooks: domain.HooksInclusive, want: 2},
		{name: "hooks only", hooks: domain.HooksOnly, want: 1},
		{name: "no hooks", hooks: domain.NoHooks, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pools, err := usecase.GetCandidatePools(context.Background(), chain, []domain.Protocol{domain.ProtocolV4}, testTokenA, testTokenB, tc.hooks, false)
			require.NoError(t, err)
			require.Len(t, pools, tc.want)
		})
	}
}

func TestPoolsUsecase_UnsupportedTokenFilter(t *testing.T) {
	config := selectorConfig()
	config.UnsupportedTokens = []string{testTokenC.Hex()}

	discoverer := &mocks.PoolDiscovererMock{
		GetPoolsForTokensFunc: func(context.Context, domain.ChainID, domain.Protocol, common.Address, common.Address, domain.HooksOption, bool) ([]domain.PoolInfo, error) {
			return []domain.PoolInfo{
				withReserves(pairPool(domain.ProtocolV2, 0x01, testTokenA, testTokenB, 10)),
				withReserves(pairPool(domain.ProtocolV2, 0x02, testTokenA, testTokenC, 20)),
			}, nil
		},
	}
	usecase := newPoolsUsecaseFixture(discoverer, config, nil)

	pools, err := usecase.GetCandidatePools(context.Background(), testChain(t), []domain.Protocol{domain.ProtocolV2}, testTokenA, testTokenB, domain.HooksInclusive, false)
	require.NoError(t, err)
	require.Len(t, pools, 1)
	require.Equal(t, common.BytesToAddress([]byte{0x01}), pools[0].Address)
}

func withReserves(pool domain.PoolInfo) domain.PoolInfo {
	pool.Reserve0 = uint256.NewInt(1)
	pool.Reserve1 = uint256.NewInt(1)
	return pool
}

func TestExpandProtocols(t *testing.T) {
	cases := []struct {
		name string
		in   []domain.Protocol
		want []domain.Protocol
	}{
		{name: "single", in: []domain.Protocol{domain.ProtocolV2}, want: []domain.Protocol{domain.ProtocolV2}},
		{name: "mixed expands to all", in: []domain.Protocol{domain.ProtocolMixed}, want: domain.AllPoolProtocols},
		{
			name: "mixed deduplicates",
			in:   []domain.Protocol{domain.ProtocolV3, domain.ProtocolMixed},
			want: []domain.Protocol{domain.ProtocolV3, domain.ProtocolV2, domain.ProtocolV4},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, expandProtocols(tc.in))
		})
	}
}

func TestRefreshPoolDetails_V2Reserves(t *testing.T) {
	pool := withReserves(pairPool(domain.ProtocolV2, 0x01, testTokenA, testTokenB, 10))

	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			require.Equal(t, pool.Address, to)
			require.Equal(t, getReservesSelector, data)
			ret := make([]byte, 96)
			ret[31] = 0x07
			ret[63] = 0x0b
			return ret, nil
		},
	}
	usecase := newPoolsUsecaseFixture(&mocks.PoolDiscovererMock{}, selectorConfig(), client)

	routes := []domain.Route{{
		Pools:      []domain.Pool{pool.Pool},
		TokenIn:    testTokenA,
		TokenOut:   testTokenB,
		Percentage: 100,
	}}

	refreshed, err := usecase.RefreshPoolDetails(context.Background(), testChain(t), routes)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(7), refreshed[0].Pools[0].Reserve0)
	require.Equal(t, uint256.NewInt(11), refreshed[0].Pools[0].Reserve1)

	// The input routes keep their snapshot state.
	require.Equal(t, uint256.NewInt(1), routes[0].Pools[0].Reserve0)
}

func TestRefreshPoolDetails_V3Slot0(t *testing.T) {
	pool := pairPool(domain.ProtocolV3, 0x02, testTokenA, testTokenB, 10)
	pool.Liquidity = uint256.NewInt(1)

	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			switch {
			case string(data) == string(slot0Selector):
				ret := make([]byte, 224)
				ret[31] = 0x42 // sqrtPriceX96
				// tick = -2, int24 sign-extended over the word
				for i := 32; i < 64; i++ {
					ret[i] = 0xff
				}
				ret[63] = 0xfe
				return ret, nil
			case string(data) == string(liquiditySelector):
				ret := make([]byte, 32)
				ret[31] = 0x09
				return ret, nil
			default:
				t.Fatalf("unexpected call data %x", data)
				return nil, nil
			}
		},
	}
	usecase := newPoolsUsecaseFixture(&mocks.PoolDiscovererMock{}, selectorConfig(), client)

	routes := []domain.Route{{
		Pools:      []domain.Pool{pool.Pool},
		TokenIn:    testTokenA,
		TokenOut:   testTokenB,
		Percentage: 100,
	}}

	refreshed, err := usecase.RefreshPoolDetails(context.Background(), testChain(t), routes)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(0x42), refreshed[0].Pools[0].SqrtPriceX96)
	require.Equal(t, int32(-2), refreshed[0].Pools[0].TickCurrent)
	require.Equal(t, uint256.NewInt(9), refreshed[0].Pools[0].Liquidity)
}

func TestRefreshPoolDetails_FailureKeepsSnapshot(t *testing.T) {
	pool := withReserves(pairPool(domain.ProtocolV2, 0x03, testTokenA, testTokenB, 10))

	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			return nil, context.DeadlineExceeded
		},
	}
	usecase := newPoolsUsecaseFixture(&mocks.PoolDiscovererMock{}, selectorConfig(), client)

	routes := []domain.Route{{
		Pools:      []domain.Pool{pool.Pool},
		TokenIn:    testTokenA,
		TokenOut:   testTokenB,
		Percentage: 100,
	}}

	refreshed, err := usecase.RefreshPoolDetails(context.Background(), testChain(t), routes)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(1), refreshed[0].Pools[0].Reserve0)
}
