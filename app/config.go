package main

import (
	"github.com/uniroute-labs/uniroute/domain"
)

// DefaultConfig defines the default config for the quote server.
var DefaultConfig = domain.Config{
	ServerAddress:             ":9092",
	ServerTimeoutDurationSecs: 20,

	LoggerFilename:     "uniroute.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	Router: &domain.RouterConfig{
		MaxHops:            3,
		MaxHopsExtended:    4,
		MinRoutesThreshold: 5,
		MaxExtendedRoutes:  24,

		PercentageStep: 5,
		MaxSplitRoutes: 3,
		MaxSplits:      2,

		RouteSplitTimeoutMs: 2_500,

		TopCandidates: 3,

		RouteCacheEnabled:        false,
		RouteCacheRefreshSeconds: 300, // 5 minutes
		RouteCacheTTLSeconds:     600, // 10 minutes
	},
	Pools: &domain.PoolsConfig{
		TopNDirectPairs:    3,
		TopNOneHopPairs:    5,
		TopNSecondHopPairs: 3,
		TopNPairs:          10,
		TopNWithBaseToken:  5,

		AllPoolsCacheTTLSeconds:  6 * 3600,
		TokenPairCacheTTLSeconds: 15 * 60,
	},
	Gas: &domain.GasConfig{
		OpStackEnabled:              true,
		ArbitrumEnabled:             true,
		ArbitrumApproximateCalldata: true,
		ArbitrumCalldataBytes:       1_500,
	},
	Simulator: &domain.SimulatorConfig{
		Enabled: false,
	},
}
