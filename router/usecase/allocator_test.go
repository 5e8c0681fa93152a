package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
)

func TestAllocateRouteQuotes_Grid(t *testing.T) {
	routes := []domain.Route{
		{Pools: []domain.Pool{routePool(domain.ProtocolV3, routeWETH, routeUSDC, 1).Pool}, TokenIn: routeWETH, TokenOut: routeUSDC},
		{Pools: []domain.Pool{routePool(domain.ProtocolV2, routeWETH, routeUSDC, 2).Pool}, TokenIn: routeWETH, TokenOut: routeUSDC},
	}
	amount := big.NewInt(1000)

	allocated, amounts := AllocateRouteQuotes(routes, amount, 25)

	require.Len(t, allocated, 8)
	require.Len(t, amounts, 8)

	wantPercentages := []int{100, 75, 50, 25}
	wantAmounts := []int64{1000, 750, 500, 250}
	for routeIdx := 0; routeIdx < 2; routeIdx++ {
		for i, percentage := range wantPercentages {
			idx := routeIdx*4 + i
			require.Equal(t, percentage, allocated[idx].Percentage)
			require.Equal(t, wantAmounts[i], amounts[idx].Int64())
			require.Equal(t, routes[routeIdx].PoolKeys(), allocated[idx].PoolKeys())
		}
	}
}

func TestAllocateRouteQuotes_FullStepOnly(t *testing.T) {
	routes := []domain.Route{
		{Pools: []domain.Pool{routePool(domain.ProtocolV3, routeWETH, routeUSDC, 1).Pool}, TokenIn: routeWETH, TokenOut: routeUSDC},
	}

	allocated, amounts := AllocateRouteQuotes(routes, big.NewInt(999), 100)

	require.Len(t, allocated, 1)
	require.Equal(t, 100, allocated[0].Percentage)
	require.Equal(t, int64(999), amounts[0].Int64())
}

func TestAllocateRouteQuotes_RoundsDown(t *testing.T) {
	routes := []domain.Route{
		{Pools: []domain.Pool{routePool(domain.ProtocolV3, routeWETH, routeUSDC, 1).Pool}, TokenIn: routeWETH, TokenOut: routeUSDC},
	}

	_, amounts := AllocateRouteQuotes(routes, big.NewInt(101), 50)

	require.Equal(t, int64(101), amounts[0].Int64())
	require.Equal(t, int64(50), amounts[1].Int64())
}

func TestAllocateRouteQuotes_InvalidStepDefaultsToFull(t *testing.T) {
	routes := []domain.Route{
		{Pools: []domain.Pool{routePool(domain.ProtocolV3, routeWETH, routeUSDC, 1).Pool}, TokenIn: routeWETH, TokenOut: routeUSDC},
	}

	allocated, _ := AllocateRouteQuotes(routes, big.NewInt(100), 0)
	require.Len(t, allocated, 1)
	require.Equal(t, 100, allocated[0].Percentage)
}

func TestAllocateRouteQuotes_InputRoutesUntouched(t *testing.T) {
	routes := []domain.Route{
		{Pools: []domain.Pool{routePool(domain.ProtocolV3, routeWETH, routeUSDC, 1).Pool}, TokenIn: routeWETH, TokenOut: routeUSDC},
	}

	AllocateRouteQuotes(routes, big.NewInt(100), 50)
	require.Zero(t, routes[0].Percentage)
}
