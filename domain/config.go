package domain

// Config defines the top-level config for the quote server.
type Config struct {
	// Storage defines the redis host and port.
	StorageHost string `mapstructure:"db-host"`
	StoragePort string `mapstructure:"db-port"`

	// Defines the web server configuration.
	ServerAddress             string `mapstructure:"server-address"`
	ServerTimeoutDurationSecs int    `mapstructure:"timeout-duration-secs"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// RPCEndpoints maps chain id to its JSON-RPC endpoint.
	RPCEndpoints map[ChainID]string `mapstructure:"rpc-endpoints"`

	// LambdaType distinguishes the async deployment from the synchronous one.
	// Async cache refresh is suppressed when running synchronously.
	LambdaType string `mapstructure:"lambda-type"`

	// IncludeBlockNumber controls whether responses carry the current block.
	IncludeBlockNumber bool `mapstructure:"include-block-number"`

	Router *RouterConfig `mapstructure:"router"`
	Pools  *PoolsConfig  `mapstructure:"pools"`
	Gas    *GasConfig    `mapstructure:"gas"`

	Simulator *SimulatorConfig `mapstructure:"simulator"`

	OTEL *OTELConfig `mapstructure:"otel"`

	CORS *CORSConfig `mapstructure:"cors"`
}

// CORSConfig defines the CORS handling for the web server.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// LambdaTypeSync is the value of LambdaType that disables async refresh.
const LambdaTypeSync = "sync"

// RouterConfig holds the route search and split optimisation parameters.
type RouterConfig struct {
	MaxHops            int `mapstructure:"max-hops"`
	MaxHopsExtended    int `mapstructure:"max-hops-extended"`
	MinRoutesThreshold int `mapstructure:"min-routes-threshold"`
	MaxExtendedRoutes  int `mapstructure:"max-extended-routes"`

	// PercentageStep is the split granularity; must divide 100 and be in [5, 100].
	PercentageStep int `mapstructure:"percentage-step"`
	MaxSplitRoutes int `mapstructure:"max-split-routes"`
	MaxSplits      int `mapstructure:"max-splits"`

	RouteSplitTimeoutMs int `mapstructure:"route-split-timeout-ms"`

	// Number of top candidates handed to the simulator.
	TopCandidates int `mapstructure:"top-candidates"`

	RouteCacheEnabled bool `mapstructure:"route-cache-enabled"`
	// Soft expiry: entries older than this trigger an async refresh.
	RouteCacheRefreshSeconds int `mapstructure:"route-cache-refresh-seconds"`
	// Hard expiry.
	RouteCacheTTLSeconds int `mapstructure:"route-cache-ttl-seconds"`

	SkipAsyncCacheUpdateCall bool `mapstructure:"skip-async-cache-update-call"`
}

// PoolsConfig holds the discovery and top-pool selection parameters.
type PoolsConfig struct {
	TopNDirectPairs    int `mapstructure:"top-n-direct-pairs"`
	TopNOneHopPairs    int `mapstructure:"top-n-one-hop-pairs"`
	TopNSecondHopPairs int `mapstructure:"top-n-second-hop-pairs"`
	TopNPairs          int `mapstructure:"top-n-pairs"`
	TopNWithBaseToken  int `mapstructure:"top-n-with-base-token"`

	// All-pools cache TTL (hours scale) and token-pair cache TTL (minutes scale).
	AllPoolsCacheTTLSeconds  int `mapstructure:"all-pools-cache-ttl-seconds"`
	TokenPairCacheTTLSeconds int `mapstructure:"token-pair-cache-ttl-seconds"`

	// S3 snapshot fallback.
	SnapshotBucket string `mapstructure:"snapshot-bucket"`
	SnapshotRegion string `mapstructure:"snapshot-region"`

	// Lowercase hex addresses excluded from V3 direct pairs.
	BlockedTokens []string `mapstructure:"blocked-tokens"`
	BlockedPools  []string `mapstructure:"blocked-pools"`

	// Tokens that cannot be routed through at all.
	UnsupportedTokens []string `mapstructure:"unsupported-tokens"`
}

// GasConfig holds the L1 data gas estimation parameters.
type GasConfig struct {
	OpStackEnabled  bool `mapstructure:"op-stack-enabled"`
	ArbitrumEnabled bool `mapstructure:"arbitrum-enabled"`

	// When true, Arbitrum calldata is approximated with a fixed byte count
	// instead of building the real trade calldata.
	ArbitrumApproximateCalldata bool `mapstructure:"arbitrum-approximate-calldata"`
	ArbitrumCalldataBytes       int  `mapstructure:"arbitrum-calldata-bytes"`
}

// SimulatorConfig holds the simulation parameters.
type SimulatorConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// OTELConfig holds the tracing and error reporting configuration.
type OTELConfig struct {
	DSN             string  `mapstructure:"dsn"`
	SampleRate      float64 `mapstructure:"sample-rate"`
	EnableTracing   bool    `mapstructure:"enable-tracing"`
	QuoteSampleRate float64 `mapstructure:"quote-sample-rate"`
	Environment     string  `mapstructure:"environment"`
}
