package usecase

import (
	"context"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var (
	quoteRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_quote_requests_total",
			Help: "Total number of quote requests by chain and intent",
		},
		[]string{"chain", "intent"},
	)
	routeCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_route_cache_total",
			Help: "Route cache lookup outcomes",
		},
		[]string{"chain", "outcome"},
	)
	simulationOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_simulation_outcomes_total",
			Help: "Candidate simulation outcomes",
		},
		[]string{"chain", "status"},
	)
	quoteNotionalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_quote_notional_total",
			Help: "Quote requests by fine-grained USD notional bucket",
		},
		[]string{"chain", "bucket"},
	)
	unhandledErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_unhandled_errors_total",
			Help: "Total number of unhandled quote pipeline errors",
		},
		[]string{"chain"},
	)
)

func init() {
	prometheus.MustRegister(
		quoteRequestsCounter,
		routeCacheCounter,
		simulationOutcomeCounter,
		quoteNotionalCounter,
		unhandledErrorCounter,
	)
}

// maxSlippageTolerance is the largest accepted slippage tolerance in percent.
const maxSlippageTolerance = 20

type routerUseCase struct {
	config domain.Config

	pools        mvc.PoolsUsecase
	quoteFetcher mvc.QuoteFetcher
	gasEstimator mvc.GasEstimator
	gasConverter mvc.GasConverter
	simulator    mvc.Simulator
	tokens       mvc.TokenProvider
	chainClient  mvc.ChainClient
	routesRepo   mvc.CachedRoutesRepository

	routeFinder *candidateRouteFinder
	logger      log.Logger
}

// NewRouterUsecase wires the quote pipeline.
func NewRouterUsecase(
	config domain.Config,
	pools mvc.PoolsUsecase,
	quoteFetcher mvc.QuoteFetcher,
	gasEstimator mvc.GasEstimator,
	gasConverter mvc.GasConverter,
	simulator mvc.Simulator,
	tokens mvc.TokenProvider,
	chainClient mvc.ChainClient,
	routesRepo mvc.CachedRoutesRepository,
	logger log.Logger,
) mvc.RouterUsecase {
	return &routerUseCase{
		config:       config,
		pools:        pools,
		quoteFetcher: quoteFetcher,
		gasEstimator: gasEstimator,
		gasConverter: gasConverter,
		simulator:    simulator,
		tokens:       tokens,
		chainClient:  chainClient,
		routesRepo:   routesRepo,
		routeFinder:  NewCandidateRouteFinder(*config.Router),
		logger:       logger.Named("router"),
	}
}

func (u *routerUseCase) GetQuote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	chain, err := u.validateRequest(req)
	if err != nil {
		return nil, err
	}
	quoteRequestsCounter.WithLabelValues(chain.Name, string(req.Intent)).Inc()

	logger := u.logger
	if req.RequestID != "" {
		logger = u.logger.Named(req.RequestID)
	}

	lookups, err := u.fetchRequestContext(ctx, chain, req)
	if err != nil {
		return nil, err
	}

	protocols, err := effectiveProtocols(req, lookups)
	if err != nil {
		return nil, err
	}

	// For EXACT_OUT the portion fee is taken from the output, so the routed
	// amount must cover the requested output plus the portion.
	amount := new(big.Int).Set(req.Amount)
	if req.TradeType == domain.ExactOut && req.PortionBips > 0 {
		amount.Mul(amount, big.NewInt(int64(10000+req.PortionBips)))
		amount.Quo(amount, big.NewInt(10000))
	}

	amountUSD := u.amountNotionalUSD(chain, req, lookups, amount)
	quoteNotionalCounter.WithLabelValues(chain.Name, domain.FineBucketForUSD(amountUSD)).Inc()
	bucket := domain.BucketForUSD(amountUSD)
	cacheKey := cachedRoutesKey(chain, req, bucket)

	// Fee-on-transfer restriction narrows the protocol set, which makes the
	// all-protocols cache entry inapplicable.
	useCache := cacheEligible(u.config, req) && protocolsCoverAll(protocols)

	routes, candidatePools, hitsCache, err := u.resolveRoutes(ctx, chain, req, protocols, cacheKey, useCache, logger)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, domain.ErrNoRouteFound
	}

	allocatedRoutes, amounts := AllocateRouteQuotes(routes, amount, u.config.Router.PercentageStep)
	quotes, err := u.quoteFetcher.FetchQuotes(ctx, chain, req.TradeType, allocatedRoutes, amounts)
	if err != nil {
		unhandledErrorCounter.WithLabelValues(chain.Name).Inc()
		logger.Error("quoter call failed", zap.Error(err))
		return nil, err
	}
	quotes = u.priceGas(ctx, chain, quotes, lookups.gasPrice, logger)
	if len(quotes) == 0 {
		return nil, domain.ErrNoRouteFound
	}

	splitFinder, err := NewBestSplitFinder(*u.config.Router, chain)
	if err != nil {
		return nil, err
	}
	splits := splitFinder.FindBestSplits(quotes, req.TradeType)
	if len(splits) == 0 {
		return nil, domain.ErrNoRouteFound
	}

	quoteToken := domain.WrapNative(chain, req.TokenOut)
	if req.TradeType == domain.ExactOut {
		quoteToken = domain.WrapNative(chain, req.TokenIn)
	}
	conversionPools := candidatePools
	if len(conversionPools) == 0 {
		conversionPools = poolsFromRoutes(routes)
	}
	u.convertGas(ctx, chain, quoteToken, conversionPools, splits, lookups.nativeUSDPrice)

	candidates := SelectTopQuotes(splits, req.TradeType, u.config.Router.TopCandidates)
	winner, params, simulation := u.simulateCandidates(ctx, chain, req, candidates, logger)
	if winner == nil {
		return nil, domain.ErrNoRouteFound
	}

	refreshed := u.refreshWinner(ctx, chain, *winner, logger)

	if !hitsCache && useCache && simulation.Status != domain.SimulationFailed {
		u.storeRoutes(ctx, cacheKey, *winner, logger)
	}

	return u.buildResponse(ctx, chain, req, refreshed, params, simulation, lookups, bucket, hitsCache)
}

// validateRequest applies the request-level invariants and resolves the chain.
func (u *routerUseCase) validateRequest(req domain.QuoteRequest) (domain.ChainInfo, error) {
	if req.TokenInChain != req.TokenOutChain {
		return domain.ChainInfo{}, domain.NewValidationError("tokenInChainId %d and tokenOutChainId %d must match", req.TokenInChain, req.TokenOutChain)
	}
	chain, ok := domain.GetChain(req.TokenInChain)
	if !ok {
		return domain.ChainInfo{}, domain.UnsupportedChainError{Chain: req.TokenInChain}
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return domain.ChainInfo{}, domain.NewValidationError("amount must be a positive integer")
	}
	if domain.WrapNative(chain, req.TokenIn) == domain.WrapNative(chain, req.TokenOut) {
		return domain.ChainInfo{}, domain.NewValidationError("tokenIn and tokenOut must be different")
	}
	if req.SlippageTolerance < 0 || req.SlippageTolerance > maxSlippageTolerance {
		return domain.ChainInfo{}, domain.NewValidationError("slippage tolerance %.2f outside [0, %d]", req.SlippageTolerance, maxSlippageTolerance)
	}
	if len(req.Protocols) > 0 && !hasConcreteProtocol(req.Protocols) {
		return domain.ChainInfo{}, domain.NewValidationError("mixed cannot be requested without at least one pool protocol")
	}
	return chain, nil
}

func hasConcreteProtocol(protocols []domain.Protocol) bool {
	for _, p := range protocols {
		if p != domain.ProtocolMixed {
			return true
		}
	}
	return false
}

// requestContext holds the per-request chain lookups fetched up front.
type requestContext struct {
	tokenIn  domain.TokenMetadata
	tokenOut domain.TokenMetadata

	gasPrice       *big.Int
	blockNumber    uint64
	nativeUSDPrice float64
}

// fetchRequestContext resolves token metadata, gas price and optionally the
// block number concurrently.
func (u *routerUseCase) fetchRequestContext(ctx context.Context, chain domain.ChainInfo, req domain.QuoteRequest) (requestContext, error) {
	var lookups requestContext

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		meta, err := u.tokens.GetToken(groupCtx, chain.ID, domain.WrapNative(chain, req.TokenIn))
		if err != nil {
			return err
		}
		lookups.tokenIn = meta
		return nil
	})
	group.Go(func() error {
		meta, err := u.tokens.GetToken(groupCtx, chain.ID, domain.WrapNative(chain, req.TokenOut))
		if err != nil {
			return err
		}
		lookups.tokenOut = meta
		return nil
	})
	// Every request prices gas: each leg gets gas details and the ranking
	// compares gas-adjusted amounts, so the fetch is unconditional.
	group.Go(func() error {
		gasPrice, err := u.chainClient.GasPrice(groupCtx, chain.ID)
		if err != nil {
			return err
		}
		lookups.gasPrice = gasPrice
		return nil
	})
	group.Go(func() error {
		lookups.nativeUSDPrice = u.tokens.NativeUSDPrice(groupCtx, chain.ID)
		return nil
	})
	if u.config.IncludeBlockNumber {
		group.Go(func() error {
			blockNumber, err := u.chainClient.BlockNumber(groupCtx, chain.ID)
			if err != nil {
				return err
			}
			lookups.blockNumber = blockNumber
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return requestContext{}, err
	}
	return lookups, nil
}

// effectiveProtocols applies the fee-on-transfer restriction: such tokens can
// only be routed through V2 pools.
func effectiveProtocols(req domain.QuoteRequest, lookups requestContext) ([]domain.Protocol, error) {
	protocols := req.Protocols
	if len(protocols) == 0 {
		protocols = domain.AllPoolProtocols
	}
	if !lookups.tokenIn.IsFeeOnTransfer() && !lookups.tokenOut.IsFeeOnTransfer() {
		return protocols, nil
	}
	for _, p := range protocols {
		if p == domain.ProtocolV2 {
			return []domain.Protocol{domain.ProtocolV2}, nil
		}
	}
	return nil, domain.ErrNoRouteFound
}

// amountNotionalUSD approximates the trade notional for bucketing. The
// wrapped native price is known; other tokens are treated as one dollar per
// whole token, which keeps keys stable even when pricing is unavailable.
func (u *routerUseCase) amountNotionalUSD(chain domain.ChainInfo, req domain.QuoteRequest, lookups requestContext, amount *big.Int) float64 {
	meta := lookups.tokenIn
	token := domain.WrapNative(chain, req.TokenIn)
	if req.TradeType == domain.ExactOut {
		meta = lookups.tokenOut
		token = domain.WrapNative(chain, req.TokenOut)
	}

	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(meta.Decimals)), nil))
	whole, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), scale).Float64()

	if token == chain.WrappedNative && lookups.nativeUSDPrice > 0 {
		return whole * lookups.nativeUSDPrice
	}
	return whole
}

func cachedRoutesKey(chain domain.ChainInfo, req domain.QuoteRequest, bucket domain.USDBucket) domain.CachedRoutesKey {
	tokenIn := req.TokenIn
	if req.TokenInIsNative {
		tokenIn = domain.NativeAddress
	}
	tokenOut := req.TokenOut
	if req.TokenOutIsNative {
		tokenOut = domain.NativeAddress
	}
	return domain.CachedRoutesKey{
		Chain:     chain.ID,
		TradeType: req.TradeType,
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		Bucket:    bucket,
	}
}

// cacheEligible reports whether the request may serve from and populate the
// route cache: fast intent, every protocol allowed and hooks unrestricted.
func cacheEligible(config domain.Config, req domain.QuoteRequest) bool {
	return config.Router.RouteCacheEnabled &&
		req.Intent == domain.QuoteIntentFast &&
		req.WantsAllProtocols() &&
		(req.Hooks == domain.HooksInclusive || req.Hooks == "")
}

func protocolsCoverAll(protocols []domain.Protocol) bool {
	seen := map[domain.Protocol]struct{}{}
	for _, p := range protocols {
		seen[p] = struct{}{}
	}
	for _, p := range domain.AllPoolProtocols {
		if _, ok := seen[p]; !ok {
			return false
		}
	}
	return true
}

// resolveRoutes returns the candidate routes, serving cache-eligible requests
// from the route cache and falling back to a full pool search. Routes that
// fail structural validation are dropped in both paths.
func (u *routerUseCase) resolveRoutes(ctx context.Context, chain domain.ChainInfo, req domain.QuoteRequest, protocols []domain.Protocol, cacheKey domain.CachedRoutesKey, useCache bool, logger log.Logger) ([]domain.Route, []domain.PoolInfo, bool, error) {
	if useCache {
		cached, found, err := u.routesRepo.GetRoutes(ctx, cacheKey)
		if err != nil {
			logger.Warn("route cache lookup failed", zap.String("key", cacheKey.String()), zap.Error(err))
		}
		if found && len(cached) > 0 {
			routeCacheCounter.WithLabelValues(chain.Name, "hit").Inc()
			return validRoutes(cached, logger), nil, true, nil
		}
		routeCacheCounter.WithLabelValues(chain.Name, "miss").Inc()
	}

	hooks := req.Hooks
	if hooks == "" {
		hooks = domain.HooksInclusive
	}
	pools, err := u.pools.GetCandidatePools(ctx, chain, protocols, req.TokenIn, req.TokenOut, hooks, req.Intent == domain.QuoteIntentFresh)
	if err != nil {
		unhandledErrorCounter.WithLabelValues(chain.Name).Inc()
		logger.Error("candidate pool discovery failed", zap.Error(err))
		return nil, nil, false, err
	}

	allowMixed := req.ForceMixed || req.HasProtocol(domain.ProtocolMixed)
	tokenIn := domain.WrapNative(chain, req.TokenIn)
	tokenOut := domain.WrapNative(chain, req.TokenOut)
	routes := u.routeFinder.FindCandidateRoutes(chain, pools, tokenIn, tokenOut, allowMixed)
	return validRoutes(routes, logger), pools, false, nil
}

func validRoutes(routes []domain.Route, logger log.Logger) []domain.Route {
	valid := routes[:0:0]
	for _, route := range routes {
		if err := route.Validate(); err != nil {
			logger.Warn("dropping invalid route", zap.String("route", route.String()), zap.Error(err))
			continue
		}
		valid = append(valid, route)
	}
	return valid
}

// priceGas attaches gas details to every successfully quoted sub-route and
// drops quotes without a usable amount.
func (u *routerUseCase) priceGas(ctx context.Context, chain domain.ChainInfo, quotes []domain.Quote, gasPrice *big.Int, logger log.Logger) []domain.Quote {
	priced := quotes[:0:0]
	for _, quote := range quotes {
		if quote.QuotedAmount == nil || quote.QuotedAmount.Sign() <= 0 {
			continue
		}
		details, err := u.gasEstimator.EstimateRouteGas(ctx, chain, quote, gasPrice, nil)
		if err != nil {
			logger.Warn("gas estimation failed", zap.String("route", quote.Route.String()), zap.Error(err))
			continue
		}
		quote.GasDetails = &details
		priced = append(priced, quote)
	}
	return priced
}

func (u *routerUseCase) convertGas(ctx context.Context, chain domain.ChainInfo, quoteToken common.Address, pools []domain.PoolInfo, splits []domain.QuoteSplit, nativeUSDPrice float64) {
	for i := range splits {
		for j := range splits[i].Quotes {
			quote := &splits[i].Quotes[j]
			if quote.GasDetails == nil {
				continue
			}
			converted := u.gasConverter.Convert(ctx, chain, quoteToken, pools, *quote.GasDetails, nativeUSDPrice)
			quote.GasDetails = &converted
		}
	}
}

func poolsFromRoutes(routes []domain.Route) []domain.PoolInfo {
	seen := map[string]struct{}{}
	var pools []domain.PoolInfo
	for _, route := range routes {
		for _, pool := range route.Pools {
			if _, ok := seen[pool.Key()]; ok {
				continue
			}
			seen[pool.Key()] = struct{}{}
			pools = append(pools, domain.PoolInfo{Pool: pool})
		}
	}
	return pools
}

// simulateCandidates builds calldata for the ranked candidates and simulates
// them in order. The first successful candidate wins; if every simulation
// fails the best candidate is returned with a failed status. Simulation is
// skipped entirely when disabled or no from-address is known.
func (u *routerUseCase) simulateCandidates(ctx context.Context, chain domain.ChainInfo, req domain.QuoteRequest, candidates []domain.QuoteSplit, logger log.Logger) (*domain.QuoteSplit, *domain.MethodParameters, domain.SimulationResult) {
	simulate := u.config.Simulator != nil && u.config.Simulator.Enabled && req.SimulateFromAddress != nil

	var (
		firstViable       *domain.QuoteSplit
		firstViableParams *domain.MethodParameters
		firstFailure      domain.SimulationResult
	)
	for i := range candidates {
		candidate := candidates[i]
		params, err := BuildMethodParameters(chain, candidate, req)
		if err != nil {
			logger.Warn("calldata build failed, skipping candidate", zap.String("route", routeString(candidate)), zap.Error(err))
			continue
		}

		if !simulate {
			simulationOutcomeCounter.WithLabelValues(chain.Name, string(domain.SimulationUnattempted)).Inc()
			return &candidate, &params, domain.SimulationResult{Status: domain.SimulationUnattempted}
		}

		result, err := u.simulator.Simulate(ctx, chain, params, *req.SimulateFromAddress)
		if err != nil {
			logger.Warn("simulation call failed", zap.String("route", routeString(candidate)), zap.Error(err))
			result = domain.SimulationResult{Status: domain.SimulationFailed, Failed: true, Description: err.Error()}
		}
		simulationOutcomeCounter.WithLabelValues(chain.Name, string(result.Status)).Inc()
		if result.Status == domain.SimulationSucceeded {
			return &candidate, &params, result
		}
		if firstViable == nil {
			firstViable = &candidate
			firstViableParams = &params
			firstFailure = result
		}
	}
	if firstViable == nil {
		return nil, nil, domain.SimulationResult{}
	}
	return firstViable, firstViableParams, firstFailure
}

// refreshWinner re-reads on-chain state for the winning split's pools so the
// response reflects current reserves and prices. Failures keep the snapshot.
func (u *routerUseCase) refreshWinner(ctx context.Context, chain domain.ChainInfo, winner domain.QuoteSplit, logger log.Logger) domain.QuoteSplit {
	routes := make([]domain.Route, 0, len(winner.Quotes))
	for _, quote := range winner.Quotes {
		routes = append(routes, quote.Route)
	}
	refreshed, err := u.pools.RefreshPoolDetails(ctx, chain, routes)
	if err != nil || len(refreshed) != len(routes) {
		logger.Warn("pool detail refresh failed", zap.Error(err))
		return winner
	}
	updated := domain.QuoteSplit{Quotes: append([]domain.Quote(nil), winner.Quotes...)}
	for i := range updated.Quotes {
		updated.Quotes[i].Route = refreshed[i]
	}
	return updated
}

// storeRoutes writes the winning routes back to the cache, percentages
// cleared so cached routes re-enter the split search unconstrained.
func (u *routerUseCase) storeRoutes(ctx context.Context, key domain.CachedRoutesKey, winner domain.QuoteSplit, logger log.Logger) {
	routes := make([]domain.Route, 0, len(winner.Quotes))
	for _, quote := range winner.Quotes {
		routes = append(routes, quote.Route.WithPercentage(0))
	}
	if err := u.routesRepo.SetRoutes(ctx, key, routes); err != nil {
		logger.Warn("route cache write failed", zap.String("key", key.String()), zap.Error(err))
	}
}

func (u *routerUseCase) buildResponse(ctx context.Context, chain domain.ChainInfo, req domain.QuoteRequest, winner domain.QuoteSplit, params *domain.MethodParameters, simulation domain.SimulationResult, lookups requestContext, bucket domain.USDBucket, hitsCache bool) (*domain.QuoteResponse, error) {
	totalQuoted := winner.TotalQuotedAmount()
	totalAdjusted := winner.TotalAdjustedAmount(req.TradeType)

	var portionAmount *big.Int
	if req.TradeType == domain.ExactIn && req.PortionBips > 0 {
		portionAmount = new(big.Int).Mul(totalQuoted, big.NewInt(int64(req.PortionBips)))
		portionAmount.Quo(portionAmount, big.NewInt(10000))
	}

	tokens := u.responseTokens(ctx, chain, req, winner, lookups)
	legs, err := buildRouteLegs(chain, req, winner, tokens, portionAmount)
	if err != nil {
		unhandledErrorCounter.WithLabelValues(chain.Name).Inc()
		return nil, err
	}

	gasCostQuote := new(big.Int)
	var gasCostUSD float64
	for _, quote := range winner.Quotes {
		if quote.GasDetails == nil {
			continue
		}
		if quote.GasDetails.GasCostQuoteToken != nil {
			gasCostQuote.Add(gasCostQuote, quote.GasDetails.GasCostQuoteToken)
		}
		gasCostUSD += quote.GasDetails.GasCostUSD
	}

	response := &domain.QuoteResponse{
		QuoteAmount:      totalQuoted.String(),
		QuoteGasAdjusted: totalAdjusted.String(),

		GasPriceWei:         bigString(lookups.gasPrice),
		GasUseEstimate:      strconv.FormatUint(winner.TotalGasUse(), 10),
		GasUseEstimateQuote: gasCostQuote.String(),
		GasUseEstimateUSD:   strconv.FormatFloat(gasCostUSD, 'f', 6, 64),

		RouteString: routeString(winner),
		Route:       legs,

		HitsCachedRoutes: hitsCache,

		SimulationStatus:      simulation.Status,
		SimulationError:       simulation.Failed,
		SimulationDescription: simulation.Description,

		MethodParameters: params,

		PriceImpact: priceImpact(winner, req.TradeType),

		QuoteID:   uuid.NewString(),
		USDBucket: string(bucket),
	}
	if portionAmount != nil {
		response.PortionAmount = portionAmount.String()
	}
	if u.config.IncludeBlockNumber && lookups.blockNumber > 0 {
		response.BlockNumber = strconv.FormatUint(lookups.blockNumber, 10)
	}
	return response, nil
}

// responseTokens gathers metadata for every token appearing in the winning
// split. Endpoint tokens come from the up-front lookups; intermediaries are
// resolved best effort and fall back to address-only entries.
func (u *routerUseCase) responseTokens(ctx context.Context, chain domain.ChainInfo, req domain.QuoteRequest, winner domain.QuoteSplit, lookups requestContext) map[common.Address]domain.TokenMetadata {
	tokens := map[common.Address]domain.TokenMetadata{
		domain.WrapNative(chain, req.TokenIn):  lookups.tokenIn,
		domain.WrapNative(chain, req.TokenOut): lookups.tokenOut,
	}
	if req.TokenInIsNative || req.TokenOutIsNative {
		native := lookups.tokenIn
		if req.TokenOutIsNative {
			native = lookups.tokenOut
		}
		native.Address = domain.NativeAddress
		tokens[domain.NativeAddress] = native
	}

	for _, quote := range winner.Quotes {
		path, err := quote.Route.Tokens()
		if err != nil {
			continue
		}
		for _, token := range path {
			if _, ok := tokens[token]; ok {
				continue
			}
			meta, err := u.tokens.GetToken(ctx, chain.ID, token)
			if err != nil {
				continue
			}
			tokens[token] = meta
		}
	}
	return tokens
}
