package domain_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
)

func TestBucketForUSD(t *testing.T) {
	testCases := []struct {
		usd    float64
		bucket domain.USDBucket
	}{
		{0, domain.USDBucket1},
		{0.5, domain.USDBucket1},
		{1, domain.USDBucket1},
		{1.01, domain.USDBucket10},
		{10, domain.USDBucket10},
		{99.99, domain.USDBucket100},
		{100, domain.USDBucket100},
		{1_000, domain.USDBucket1K},
		{9_999, domain.USDBucket10K},
		{100_000, domain.USDBucket100K},
		{1_000_000, domain.USDBucket1M},
		{1_000_001, domain.USDBucket10M},
		{50_000_000, domain.USDBucket10M},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.bucket, domain.BucketForUSD(tc.usd), "usd=%v", tc.usd)
	}
}

func TestBucketForUSD_NeighboringAmountsShareBucket(t *testing.T) {
	// Amounts within the same boundary pair land on one key so nearby trades
	// reuse cached routes.
	require.Equal(t, domain.BucketForUSD(150), domain.BucketForUSD(950))
	require.NotEqual(t, domain.BucketForUSD(950), domain.BucketForUSD(1_050))
}

func TestCachedRoutesKey_String(t *testing.T) {
	key := domain.CachedRoutesKey{
		Chain:     domain.ChainMainnet,
		TradeType: domain.ExactIn,
		TokenIn:   common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		TokenOut:  common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		Bucket:    domain.USDBucket1K,
	}

	require.Equal(t,
		"CACHEDROUTE#1#EXACT_IN#0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48#0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2#USD_1_000",
		key.String())

	// Addresses are lowercased in the key, so casing differences on input
	// cannot fragment the cache.
	mixed := key
	mixed.TokenIn = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	require.Equal(t, key.String(), mixed.String())
}

func TestFineBucketForUSD(t *testing.T) {
	require.Equal(t, "usd_0", domain.FineBucketForUSD(0))
	require.Equal(t, "usd_0", domain.FineBucketForUSD(-5))
	require.Equal(t, domain.FineBucketForUSD(110), domain.FineBucketForUSD(140))
	require.NotEqual(t, domain.FineBucketForUSD(100), domain.FineBucketForUSD(10_000))
}
