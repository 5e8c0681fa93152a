package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
)

func splitConfig(step, maxSplits int) domain.RouterConfig {
	return domain.RouterConfig{
		PercentageStep:      step,
		MaxSplits:           maxSplits,
		MaxSplitRoutes:      16,
		RouteSplitTimeoutMs: 5_000,
	}
}

// splitQuote builds a quote over a dedicated single-pool route.
func splitQuote(seed byte, percentage int, quoted int64) domain.Quote {
	route := domain.Route{
		Pools:      []domain.Pool{routePool(domain.ProtocolV3, routeWETH, routeUSDC, seed).Pool},
		TokenIn:    routeWETH,
		TokenOut:   routeUSDC,
		Percentage: percentage,
	}
	return domain.Quote{
		Route:           route,
		RequestedAmount: big.NewInt(quoted / 2),
		QuotedAmount:    big.NewInt(quoted),
	}
}

func TestNewBestSplitFinder_StepValidation(t *testing.T) {
	chain := mainnetChain(t)
	for _, step := range []int{0, 3, 7, 33, 101} {
		_, err := NewBestSplitFinder(splitConfig(step, 2), chain)
		require.Error(t, err, "step %d", step)
	}
	for _, step := range []int{5, 10, 20, 25, 50, 100} {
		_, err := NewBestSplitFinder(splitConfig(step, 2), chain)
		require.NoError(t, err, "step %d", step)
	}
}

func TestFindBestSplits_TwoWayCombinations(t *testing.T) {
	finder, err := NewBestSplitFinder(splitConfig(50, 2), mainnetChain(t))
	require.NoError(t, err)

	quotes := []domain.Quote{
		splitQuote(1, 100, 1000),
		splitQuote(2, 100, 990),
		splitQuote(1, 50, 500),
		splitQuote(2, 50, 490),
		splitQuote(3, 50, 480),
	}

	splits := finder.FindBestSplits(quotes, domain.ExactIn)

	// Two singletons plus the three distinct 50/50 pairings.
	require.Len(t, splits, 5)
	require.Len(t, splits[0].Quotes, 1)
	require.Equal(t, "1000", splits[0].TotalQuotedAmount().String())

	pairings := 0
	for _, split := range splits {
		if len(split.Quotes) == 2 {
			pairings++
			require.Equal(t, 100, split.Quotes[0].Route.Percentage+split.Quotes[1].Route.Percentage)
		}
	}
	require.Equal(t, 3, pairings)
}

func TestFindBestSplits_ExactOutPrefersSmallerInput(t *testing.T) {
	finder, err := NewBestSplitFinder(splitConfig(50, 2), mainnetChain(t))
	require.NoError(t, err)

	quotes := []domain.Quote{
		splitQuote(1, 100, 1000),
		splitQuote(1, 50, 450),
		splitQuote(2, 50, 460),
	}

	splits := finder.FindBestSplits(quotes, domain.ExactOut)

	require.NotEmpty(t, splits)
	require.Len(t, splits[0].Quotes, 2, "the 910 split input beats the 1000 singleton")
	require.Equal(t, "910", splits[0].TotalQuotedAmount().String())
}

func TestFindBestSplits_SharedPoolLegsNeverCombined(t *testing.T) {
	finder, err := NewBestSplitFinder(splitConfig(50, 2), mainnetChain(t))
	require.NoError(t, err)

	// Both 50% quotes run through the same pool.
	quotes := []domain.Quote{
		splitQuote(1, 100, 1000),
		splitQuote(2, 50, 500),
		splitQuote(2, 50, 490),
	}

	splits := finder.FindBestSplits(quotes, domain.ExactIn)
	for _, split := range splits {
		require.Len(t, split.Quotes, 1)
	}
}

func TestFindBestSplits_NativeAndWrappedLegsNeverCombined(t *testing.T) {
	chain := mainnetChain(t)
	finder, err := NewBestSplitFinder(splitConfig(50, 2), chain)
	require.NoError(t, err)

	wrappedLeg := splitQuote(1, 50, 500)

	nativeRoute := domain.Route{
		Pools:      []domain.Pool{routePool(domain.ProtocolV4, domain.NativeAddress, routeUSDC, 9).Pool},
		TokenIn:    domain.NativeAddress,
		TokenOut:   routeUSDC,
		Percentage: 50,
	}
	nativeLeg := domain.Quote{
		Route:           nativeRoute,
		RequestedAmount: big.NewInt(250),
		QuotedAmount:    big.NewInt(495),
	}

	// Neither leg covers 100% alone and the pairing is forbidden.
	splits := finder.FindBestSplits([]domain.Quote{wrappedLeg, nativeLeg}, domain.ExactIn)
	require.Empty(t, splits)
}

func TestFindBestSplits_DuplicateCombinationsCollapsed(t *testing.T) {
	finder, err := NewBestSplitFinder(splitConfig(50, 2), mainnetChain(t))
	require.NoError(t, err)

	quotes := []domain.Quote{
		splitQuote(1, 50, 500),
		splitQuote(2, 50, 490),
	}

	// (A@50, B@50) and (B@50, A@50) are the same combination.
	splits := finder.FindBestSplits(quotes, domain.ExactIn)
	require.Len(t, splits, 1)
	require.Len(t, splits[0].Quotes, 2)
}

func TestFindBestSplits_SingleSplitLevelOnly(t *testing.T) {
	finder, err := NewBestSplitFinder(splitConfig(100, 1), mainnetChain(t))
	require.NoError(t, err)

	quotes := []domain.Quote{
		splitQuote(1, 100, 1000),
		splitQuote(2, 100, 900),
	}

	splits := finder.FindBestSplits(quotes, domain.ExactIn)
	require.Len(t, splits, 2)
	for _, split := range splits {
		require.Len(t, split.Quotes, 1)
	}
}

func TestFindBestSplits_TrimKeepsSingletons(t *testing.T) {
	config := splitConfig(50, 2)
	config.MaxSplitRoutes = 1
	finder, err := NewBestSplitFinder(config, mainnetChain(t))
	require.NoError(t, err)

	quotes := []domain.Quote{
		splitQuote(1, 100, 1000),
		splitQuote(2, 100, 990),
		splitQuote(1, 50, 500),
		splitQuote(2, 50, 490),
		splitQuote(3, 50, 480),
	}

	splits := finder.FindBestSplits(quotes, domain.ExactIn)

	singletons := 0
	multi := 0
	for _, split := range splits {
		if len(split.Quotes) == 1 {
			singletons++
		} else {
			multi++
		}
	}
	require.Equal(t, 2, singletons, "full-size singletons survive trimming unconditionally")
	require.Equal(t, 1, multi)
}

func TestFindBestSplits_Timeout(t *testing.T) {
	config := splitConfig(5, 4)
	config.RouteSplitTimeoutMs = 0
	finder, err := NewBestSplitFinder(config, mainnetChain(t))
	require.NoError(t, err)
	finder.timeout = -time.Millisecond

	quotes := make([]domain.Quote, 0, 40)
	var seed byte = 1
	for p := 5; p <= 100; p += 5 {
		quotes = append(quotes, splitQuote(seed, p, int64(p*10)))
		seed++
		quotes = append(quotes, splitQuote(seed, p, int64(p*10-1)))
		seed++
	}

	// The deadline is already past, so only level 1 singletons survive.
	splits := finder.FindBestSplits(quotes, domain.ExactIn)
	for _, split := range splits {
		require.Len(t, split.Quotes, 1)
	}
}

func TestFindBestSplits_DropsUnquotedLegs(t *testing.T) {
	finder, err := NewBestSplitFinder(splitConfig(100, 1), mainnetChain(t))
	require.NoError(t, err)

	broken := splitQuote(1, 100, 1000)
	broken.QuotedAmount = nil
	zero := splitQuote(2, 100, 0)

	splits := finder.FindBestSplits([]domain.Quote{broken, zero, splitQuote(3, 100, 5)}, domain.ExactIn)
	require.Len(t, splits, 1)
	require.Equal(t, "5", splits[0].TotalQuotedAmount().String())
}
