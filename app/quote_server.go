package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/chain"
	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
	"github.com/uniroute-labs/uniroute/middleware"

	poolsUseCase "github.com/uniroute-labs/uniroute/pools/usecase"
	quoterUseCase "github.com/uniroute-labs/uniroute/quoter/usecase"
	routerHttpDelivery "github.com/uniroute-labs/uniroute/router/delivery/http"
	routerredisrepo "github.com/uniroute-labs/uniroute/router/repository/redis"
	routerUseCase "github.com/uniroute-labs/uniroute/router/usecase"
	simulatorUseCase "github.com/uniroute-labs/uniroute/simulator/usecase"
	systemhttpdelivery "github.com/uniroute-labs/uniroute/system/delivery/http"
	tokensUseCase "github.com/uniroute-labs/uniroute/tokens/usecase"

	gasUseCase "github.com/uniroute-labs/uniroute/gas/usecase"
)

// QuoteServer defines an interface for the swap quote server.
// It wires the full quote pipeline behind the HTTP delivery layer.
type QuoteServer interface {
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type quoteServer struct {
	e           *echo.Echo
	address     string
	chainClient *chain.Client
	logger      log.Logger
}

// GetLogger implements QuoteServer.
func (s *quoteServer) GetLogger() log.Logger {
	return s.logger
}

// Shutdown implements QuoteServer.
func (s *quoteServer) Shutdown(ctx context.Context) error {
	s.chainClient.Close()
	return s.e.Shutdown(ctx)
}

// Start implements QuoteServer.
func (s *quoteServer) Start(context.Context) error {
	s.logger.Info("Starting quote server", zap.String("address", s.address))
	err := s.e.Start(s.address)
	if err != nil {
		return err
	}

	return nil
}

// NewQuoteServer creates a new quote server.
func NewQuoteServer(config domain.Config, logger log.Logger) (QuoteServer, error) {
	// Setup echo server
	e := echo.New()
	m := middleware.InitMiddleware(config.CORS)
	e.Use(m.CORS)
	e.Use(m.InstrumentMiddleware)
	if config.OTEL != nil && config.OTEL.EnableTracing {
		e.Use(m.TraceWithParamsMiddleware("uniroute"))
	}

	ctx := context.Background()

	// Create redis client and ensure that it is up.
	redisAddress := fmt.Sprintf("%s:%s", config.StorageHost, config.StoragePort)
	logger.Info("Pinging redis", zap.String("redis_address", redisAddress))
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	// Per-chain JSON-RPC access shared by every on-chain reader.
	chainClient, err := chain.NewClient(config.RPCEndpoints, logger)
	if err != nil {
		return nil, err
	}

	// Initialize router repository
	routerRepository := routerredisrepo.New(redisClient, config, logger)

	// Pool discovery: indexer snapshots from S3 where configured, with
	// deterministic direct-pool synthesis as fallback, a TTL cache on top
	// and protocol dispatch in front.
	directDiscoverer := poolsUseCase.NewDirectPoolDiscoverer()
	source := directDiscoverer
	if config.Pools.SnapshotBucket != "" {
		snapshot, err := poolsUseCase.NewSnapshotPoolDiscoverer(*config.Pools)
		if err != nil {
			return nil, err
		}
		source = poolsUseCase.NewFallbackPoolDiscoverer(snapshot, directDiscoverer, logger)
	}
	cachedDiscoverer := poolsUseCase.NewCachingPoolDiscoverer(source, *config.Pools)
	dispatcher := poolsUseCase.NewDispatchingPoolDiscoverer(map[domain.Protocol]mvc.PoolDiscoverer{
		domain.ProtocolV2: cachedDiscoverer,
		domain.ProtocolV3: cachedDiscoverer,
		domain.ProtocolV4: cachedDiscoverer,
	}, directDiscoverer)
	poolsUsecase := poolsUseCase.NewPoolsUsecase(*config.Pools, dispatcher, directDiscoverer, chainClient, logger)

	// Initialize the pipeline stages
	tokensProvider := tokensUseCase.NewTokenProvider(chainClient, logger)
	quoteFetcher := quoterUseCase.NewQuoteFetcher(chainClient, logger)
	gasEstimator := gasUseCase.NewGasEstimator(*config.Gas, chainClient, logger)
	gasConverter := gasUseCase.NewGasConverter(logger)
	tradeSimulator := simulatorUseCase.NewSimulator(chainClient, logger)

	routerUsecase := routerUseCase.NewRouterUsecase(
		config,
		poolsUsecase,
		quoteFetcher,
		gasEstimator,
		gasConverter,
		tradeSimulator,
		tokensProvider,
		chainClient,
		routerRepository,
		logger,
	)

	// HTTP handlers
	routerHttpDelivery.NewRouterHandler(e, routerUsecase, routerRepository, logger)
	systemhttpdelivery.NewSystemHandler(e, redisAddress, config, logger, chainClient)

	return &quoteServer{
		e:           e,
		address:     config.ServerAddress,
		chainClient: chainClient,
		logger:      logger,
	}, nil
}
