package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mocks"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var (
	quoteTokenA = common.HexToAddress("0x1111111111111111111111111111111111111111")
	quoteTokenB = common.HexToAddress("0x2222222222222222222222222222222222222222")
	quoteTokenC = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func quoterChain(t *testing.T) domain.ChainInfo {
	t.Helper()
	chain, ok := domain.GetChain(domain.ChainMainnet)
	require.True(t, ok)
	return chain
}

func v2TestPool(a, b common.Address, reserveA, reserveB uint64, seed byte) domain.Pool {
	token0, token1 := domain.SortTokens(a, b)
	reserve0, reserve1 := reserveA, reserveB
	if token0 != a {
		reserve0, reserve1 = reserveB, reserveA
	}
	return domain.Pool{
		Protocol: domain.ProtocolV2,
		Address:  common.BytesToAddress([]byte{0xee, seed}),
		Token0:   token0,
		Token1:   token1,
		Reserve0: uint256.NewInt(reserve0),
		Reserve1: uint256.NewInt(reserve1),
	}
}

func v3TestPool(a, b common.Address, fee uint32, seed byte) domain.Pool {
	token0, token1 := domain.SortTokens(a, b)
	return domain.Pool{
		Protocol:     domain.ProtocolV3,
		Address:      common.BytesToAddress([]byte{0xdd, seed}),
		Token0:       token0,
		Token1:       token1,
		Fee:          fee,
		Liquidity:    uint256.NewInt(1_000_000),
		SqrtPriceX96: new(uint256.Int).Lsh(uint256.NewInt(1), 96),
	}
}

func v4TestPool(a, b common.Address, fee uint32, sqrtPriceX96 *uint256.Int, seed byte) domain.Pool {
	token0, token1 := domain.SortTokens(a, b)
	return domain.Pool{
		Protocol:     domain.ProtocolV4,
		Address:      common.BytesToAddress([]byte{0xcc, seed}),
		PoolID:       common.BytesToHash([]byte{0xcc, seed}),
		Token0:       token0,
		Token1:       token1,
		Fee:          fee,
		TickSpacing:  60,
		Liquidity:    uint256.NewInt(1_000_000),
		SqrtPriceX96: sqrtPriceX96,
	}
}

func testRoute(tokenIn, tokenOut common.Address, pools ...domain.Pool) domain.Route {
	return domain.Route{Pools: pools, TokenIn: tokenIn, TokenOut: tokenOut, Percentage: 100}
}

// quoterReturn encodes the QuoterV2 response tuple.
func quoterReturn(amount int64, ticks []uint32, gasEstimate int64) []byte {
	word := func(v int64) []byte { return common.LeftPadBytes(big.NewInt(v).Bytes(), 32) }

	n := int64(len(ticks))
	out := word(amount)
	out = append(out, word(128)...)          // sqrt price list offset
	out = append(out, word(128+32*(n+1))...) // ticks list offset
	out = append(out, word(gasEstimate)...)

	out = append(out, word(n)...)
	for range ticks {
		out = append(out, word(0)...)
	}
	out = append(out, word(n)...)
	for _, crossed := range ticks {
		out = append(out, word(int64(crossed))...)
	}
	return out
}

func newFetcher(client *mocks.ChainClientMock) mvc.QuoteFetcher {
	return NewQuoteFetcher(client, log.NewNopLogger())
}

func TestFetchQuotes_V2ExactInIsLocal(t *testing.T) {
	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			t.Fatal("v2 quoting must not reach the chain")
			return nil, nil
		},
	}
	fetcher := newFetcher(client)

	route := testRoute(quoteTokenA, quoteTokenB, v2TestPool(quoteTokenA, quoteTokenB, 1_000_000, 2_000_000, 1))
	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactIn, []domain.Route{route}, []*big.Int{big.NewInt(1000)})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, "1992", quotes[0].QuotedAmount.String())
	require.Equal(t, "1000", quotes[0].RequestedAmount.String())
}

func TestFetchQuotes_V2ExactOutRoundsUp(t *testing.T) {
	fetcher := newFetcher(&mocks.ChainClientMock{})

	route := testRoute(quoteTokenA, quoteTokenB, v2TestPool(quoteTokenA, quoteTokenB, 1_000_000, 2_000_000, 1))
	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactOut, []domain.Route{route}, []*big.Int{big.NewInt(1992)})
	require.NoError(t, err)
	require.Equal(t, "1000", quotes[0].QuotedAmount.String())
}

func TestFetchQuotes_V3ExactInCallsQuoter(t *testing.T) {
	chain := quoterChain(t)
	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chainID domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			require.Equal(t, quoterV2Address[domain.ChainMainnet], to)
			require.Equal(t, quoteExactInputSelector, data[:4])

			// (bytes path, uint256 amount): offset, amount, length, data.
			require.Equal(t, int64(1000), new(big.Int).SetBytes(data[36:68]).Int64())
			require.Equal(t, int64(43), new(big.Int).SetBytes(data[68:100]).Int64())
			path := data[100:143]
			require.Equal(t, quoteTokenA.Bytes(), path[:20])
			require.Equal(t, []byte{0x00, 0x0b, 0xb8}, path[20:23])
			require.Equal(t, quoteTokenB.Bytes(), path[23:43])

			return quoterReturn(5000, []uint32{3}, 80_000), nil
		},
	}
	fetcher := newFetcher(client)

	route := testRoute(quoteTokenA, quoteTokenB, v3TestPool(quoteTokenA, quoteTokenB, 3000, 1))
	quotes, err := fetcher.FetchQuotes(context.Background(), chain, domain.ExactIn, []domain.Route{route}, []*big.Int{big.NewInt(1000)})
	require.NoError(t, err)
	require.Equal(t, "5000", quotes[0].QuotedAmount.String())
	require.Equal(t, []uint32{3}, quotes[0].QuoterData.InitializedTicksCrossed)
	require.Equal(t, uint64(80_000), quotes[0].QuoterData.GasEstimate)
}

func TestFetchQuotes_V3SegmentBatchedIntoOneCall(t *testing.T) {
	calls := 0
	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			calls++
			// Two-hop path: 20 + 23 + 23 bytes.
			require.Equal(t, int64(66), new(big.Int).SetBytes(data[68:100]).Int64())
			return quoterReturn(7000, []uint32{2, 4}, 120_000), nil
		},
	}
	fetcher := newFetcher(client)

	route := testRoute(quoteTokenA, quoteTokenC,
		v3TestPool(quoteTokenA, quoteTokenB, 500, 1),
		v3TestPool(quoteTokenB, quoteTokenC, 3000, 2),
	)
	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactIn, []domain.Route{route}, []*big.Int{big.NewInt(1000)})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, []uint32{2, 4}, quotes[0].QuoterData.InitializedTicksCrossed)
}

func TestFetchQuotes_MixedRouteTickIndexing(t *testing.T) {
	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			// The V3 leg receives the V2 leg's output.
			require.Equal(t, int64(1992), new(big.Int).SetBytes(data[36:68]).Int64())
			return quoterReturn(4000, []uint32{5}, 90_000), nil
		},
	}
	fetcher := newFetcher(client)

	route := testRoute(quoteTokenA, quoteTokenC,
		v2TestPool(quoteTokenA, quoteTokenB, 1_000_000, 2_000_000, 1),
		v3TestPool(quoteTokenB, quoteTokenC, 3000, 2),
	)
	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactIn, []domain.Route{route}, []*big.Int{big.NewInt(1000)})
	require.NoError(t, err)
	require.Equal(t, "4000", quotes[0].QuotedAmount.String())
	require.Equal(t, []uint32{0, 5}, quotes[0].QuoterData.InitializedTicksCrossed)
}

func TestFetchQuotes_ExactOutReversesPath(t *testing.T) {
	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			require.Equal(t, quoteExactOutputSelector, data[:4])
			path := data[100:143]
			require.Equal(t, quoteTokenB.Bytes(), path[:20], "exact-output path starts at the output token")
			require.Equal(t, quoteTokenA.Bytes(), path[23:43])
			return quoterReturn(2000, []uint32{1}, 80_000), nil
		},
	}
	fetcher := newFetcher(client)

	route := testRoute(quoteTokenA, quoteTokenB, v3TestPool(quoteTokenA, quoteTokenB, 3000, 1))
	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactOut, []domain.Route{route}, []*big.Int{big.NewInt(1000)})
	require.NoError(t, err)
	require.Equal(t, "2000", quotes[0].QuotedAmount.String())
}

func TestFetchQuotes_ExactOutWalksBackwards(t *testing.T) {
	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			// The V2 tail needs 1000 in, which becomes the V3 target.
			require.Equal(t, quoteExactOutputSelector, data[:4])
			require.Equal(t, int64(1000), new(big.Int).SetBytes(data[36:68]).Int64())
			return quoterReturn(600, []uint32{2}, 80_000), nil
		},
	}
	fetcher := newFetcher(client)

	route := testRoute(quoteTokenA, quoteTokenC,
		v3TestPool(quoteTokenA, quoteTokenB, 3000, 1),
		v2TestPool(quoteTokenB, quoteTokenC, 1_000_000, 2_000_000, 2),
	)
	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactOut, []domain.Route{route}, []*big.Int{big.NewInt(1992)})
	require.NoError(t, err)
	require.Equal(t, "600", quotes[0].QuotedAmount.String())
	require.Equal(t, []uint32{2, 0}, quotes[0].QuoterData.InitializedTicksCrossed)
}

func TestFetchQuotes_V4MidPriceApproximation(t *testing.T) {
	fetcher := newFetcher(&mocks.ChainClientMock{})

	// sqrtPriceX96 = 2 << 96 prices token1 at 4x token0.
	sqrt := new(uint256.Int).Lsh(uint256.NewInt(2), 96)
	route := testRoute(quoteTokenA, quoteTokenB, v4TestPool(quoteTokenA, quoteTokenB, 3000, sqrt, 1))

	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactIn, []domain.Route{route}, []*big.Int{big.NewInt(1000)})
	require.NoError(t, err)
	// 1000 less the 0.3% fee is 997, at the mid price of 4.
	require.Equal(t, "3988", quotes[0].QuotedAmount.String())
}

func TestFetchQuotes_V4ExactOutInvertsAndGrossesUp(t *testing.T) {
	fetcher := newFetcher(&mocks.ChainClientMock{})

	sqrt := new(uint256.Int).Lsh(uint256.NewInt(2), 96)
	route := testRoute(quoteTokenA, quoteTokenB, v4TestPool(quoteTokenA, quoteTokenB, 3000, sqrt, 1))

	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactOut, []domain.Route{route}, []*big.Int{big.NewInt(3988)})
	require.NoError(t, err)
	// 997 at the mid price, grossed up for the fee and rounded up.
	require.Equal(t, "1001", quotes[0].QuotedAmount.String())
}

func TestFetchQuotes_SyntheticConnectorIsFree(t *testing.T) {
	chain := quoterChain(t)
	fetcher := newFetcher(&mocks.ChainClientMock{})

	connector := domain.Pool{
		Protocol:    domain.ProtocolV4,
		Token0:      domain.NativeAddress,
		Token1:      quoteTokenA,
		Fee:         0,
		TickSpacing: domain.FakeTickSpacing,
	}
	sqrt := new(uint256.Int).Lsh(uint256.NewInt(2), 96)
	route := testRoute(domain.NativeAddress, quoteTokenB,
		connector,
		v4TestPool(quoteTokenA, quoteTokenB, 3000, sqrt, 1),
	)

	quotes, err := fetcher.FetchQuotes(context.Background(), chain, domain.ExactIn, []domain.Route{route}, []*big.Int{big.NewInt(1000)})
	require.NoError(t, err)
	require.Equal(t, "3988", quotes[0].QuotedAmount.String())
}

func TestFetchQuotes_FailedRouteDoesNotFailBatch(t *testing.T) {
	client := &mocks.ChainClientMock{
		CallContractFunc: func(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
			return nil, errors.New("execution reverted")
		},
	}
	fetcher := newFetcher(client)

	good := testRoute(quoteTokenA, quoteTokenB, v2TestPool(quoteTokenA, quoteTokenB, 1_000_000, 2_000_000, 1))
	bad := testRoute(quoteTokenA, quoteTokenB, v3TestPool(quoteTokenA, quoteTokenB, 3000, 2))

	quotes, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactIn,
		[]domain.Route{good, bad}, []*big.Int{big.NewInt(1000), big.NewInt(1000)})
	require.NoError(t, err)
	require.Equal(t, "1992", quotes[0].QuotedAmount.String())
	require.Nil(t, quotes[1].QuotedAmount)
	require.Equal(t, "1000", quotes[1].RequestedAmount.String())
}

func TestFetchQuotes_LengthMismatch(t *testing.T) {
	fetcher := newFetcher(&mocks.ChainClientMock{})
	_, err := fetcher.FetchQuotes(context.Background(), quoterChain(t), domain.ExactIn,
		[]domain.Route{{}}, nil)
	require.Error(t, err)
}
