package usecase

import (
	"context"
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var _ mvc.GasEstimator = &gasEstimator{}

type gasEstimator struct {
	config      domain.GasConfig
	chainClient mvc.ChainClient
	logger      log.Logger
}

var (
	l1EstimateErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniroute_gas_l1_estimate_errors_total",
			Help: "Total number of L1 data gas estimation failures (degraded to zero contribution)",
		},
		[]string{"chain"},
	)
)

func init() {
	prometheus.MustRegister(l1EstimateErrorCounter)
}

// NewGasEstimator creates the two-part gas estimator: a closed-form L2
// execution formula plus the rollup L1 data component.
func NewGasEstimator(config domain.GasConfig, chainClient mvc.ChainClient, logger log.Logger) mvc.GasEstimator {
	return &gasEstimator{
		config:      config,
		chainClient: chainClient,
		logger:      logger,
	}
}

// EstimateRouteGas implements mvc.GasEstimator.
func (g *gasEstimator) EstimateRouteGas(ctx context.Context, chain domain.ChainInfo, quote domain.Quote, gasPriceWei *big.Int, calldata []byte) (domain.GasDetails, error) {
	gasUse, err := routeGasUse(chain, quote)
	if err != nil {
		return domain.GasDetails{}, err
	}

	routeGas := newGasDetails(gasPriceWei, gasUse)

	l1Gas, err := g.estimateL1Gas(ctx, chain, gasPriceWei, calldata)
	if err != nil {
		l1EstimateErrorCounter.WithLabelValues(chain.Name).Inc()
		g.logger.Error("l1 gas estimation failed, using zero contribution",
			zap.String("chain", chain.Name), zap.Error(err))
		l1Gas = domain.GasDetails{GasPriceWei: gasPriceWei, GasCostWei: new(big.Int)}
	}

	return domain.CombineGasDetails(routeGas, l1Gas), nil
}

// routeGasUse evaluates the closed-form L2 execution gas formula over the
// route structure. The synthetic native/wrapped connector pool is not a real
// swap and is excluded.
func routeGasUse(chain domain.ChainInfo, quote domain.Quote) (uint64, error) {
	pools := make([]domain.Pool, 0, len(quote.Route.Pools))
	for _, pool := range quote.Route.Pools {
		if pool.IsSynthetic() {
			continue
		}
		pools = append(pools, pool)
	}
	if len(pools) == 0 {
		return 0, nil
	}

	switch quote.Route.Protocol() {
	case domain.ProtocolV2:
		return v2GasUse(chain.Gas, len(pools)), nil
	case domain.ProtocolMixed:
		return mixedGasUse(chain, quote, pools), nil
	default:
		ticks := ticksCrossed(quote, 0, len(pools))
		return concentratedGasUse(chain.Gas, len(pools), ticks) + tokenOverhead(chain, quote.Route), nil
	}
}

func v2GasUse(constants domain.GasConstants, hops int) uint64 {
	return constants.BaseSwapCostV2 + constants.CostPerExtraHopV2*uint64(hops-1)
}

// concentratedGasUse is the V3/V4 formula; the two protocols share it.
func concentratedGasUse(constants domain.GasConstants, hops int, ticksCrossed uint64) uint64 {
	gas := constants.BaseSwapCost + constants.CostPerHop*uint64(hops)
	if hops == 1 {
		gas += constants.SingleHopOverhead
	}
	gas += constants.CostPerInitTick * ticksCrossed
	return gas
}

// mixedGasUse partitions the path into maximal monoprotocol runs and applies
// the protocol-specific formula to each run. For a route that happens to use
// a single protocol this reduces to the monoprotocol formula.
func mixedGasUse(chain domain.ChainInfo, quote domain.Quote, pools []domain.Pool) uint64 {
	var total uint64
	runStart := 0
	hasConcentratedRun := false
	for i := 1; i <= len(pools); i++ {
		if i < len(pools) && pools[i].Protocol == pools[runStart].Protocol {
			continue
		}
		runLen := i - runStart
		if pools[runStart].Protocol == domain.ProtocolV2 {
			total += v2GasUse(chain.Gas, runLen)
		} else {
			total += concentratedGasUse(chain.Gas, runLen, ticksCrossed(quote, runStart, i))
			hasConcentratedRun = true
		}
		runStart = i
	}
	if hasConcentratedRun {
		total += tokenOverhead(chain, quote.Route)
	}
	return total
}

// ticksCrossed sums max(0, ticks[i]-1) over the pool index range, reading
// the initialised-ticks-crossed list from the quoter response.
func ticksCrossed(quote domain.Quote, from, to int) uint64 {
	if quote.QuoterData == nil {
		return 0
	}
	var total uint64
	for i := from; i < to && i < len(quote.QuoterData.InitializedTicksCrossed); i++ {
		if crossed := quote.QuoterData.InitializedTicksCrossed[i]; crossed > 1 {
			total += uint64(crossed - 1)
		}
	}
	return total
}

// tokenOverhead charges the fixed surcharge for routes touching known
// expensive-transfer tokens.
func tokenOverhead(chain domain.ChainInfo, route domain.Route) uint64 {
	tokens, err := route.Tokens()
	if err != nil {
		return 0
	}
	return domain.TokenGasOverhead(chain.ID, tokens)
}

func newGasDetails(gasPriceWei *big.Int, gasUse uint64) domain.GasDetails {
	costWei := new(big.Int).Mul(gasPriceWei, new(big.Int).SetUint64(gasUse))
	return domain.GasDetails{
		GasPriceWei: gasPriceWei,
		GasCostWei:  costWei,
		GasUse:      gasUse,
		GasCostEth:  weiToEth(costWei),
	}
}

var weiPerEth = new(big.Float).SetFloat64(1e18)

func weiToEth(wei *big.Int) float64 {
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEth).Float64()
	return eth
}
