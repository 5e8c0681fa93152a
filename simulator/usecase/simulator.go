package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var _ mvc.Simulator = &simulator{}

// contractCaller is the subset of the chain client the simulator needs:
// calls carrying an explicit sender and value.
type contractCaller interface {
	CallContractFrom(ctx context.Context, chain domain.ChainID, from, to common.Address, value *big.Int, data []byte) ([]byte, error)
	EstimateGas(ctx context.Context, chain domain.ChainID, from, to common.Address, value *big.Int, data []byte) (uint64, error)
}

var simulationCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uniroute_simulations_total",
		Help: "Total number of candidate trade simulations by outcome",
	},
	[]string{"chain", "outcome"},
)

func init() {
	prometheus.MustRegister(simulationCounter)
}

type simulator struct {
	caller contractCaller
	logger log.Logger
}

// NewSimulator creates the eth_call based trade simulator. It replays the
// built Universal Router calldata under the caller's balances and approvals
// without submitting a transaction.
func NewSimulator(caller contractCaller, logger log.Logger) mvc.Simulator {
	return &simulator{
		caller: caller,
		logger: logger.Named("simulator"),
	}
}

// Simulate implements mvc.Simulator. A revert is a FAILED result, not an
// error: the pipeline falls back to the next candidate on failure.
func (s *simulator) Simulate(ctx context.Context, chain domain.ChainInfo, params domain.MethodParameters, from common.Address) (domain.SimulationResult, error) {
	to, value, calldata, err := decodeParams(params)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	if _, err := s.caller.CallContractFrom(ctx, chain.ID, from, to, value, calldata); err != nil {
		simulationCounter.WithLabelValues(chain.Name, "reverted").Inc()
		s.logger.Debug("simulation reverted",
			zap.String("chain", chain.Name), zap.String("from", from.Hex()), zap.Error(err))
		return domain.SimulationResult{
			Status:      domain.SimulationFailed,
			Failed:      true,
			Description: revertDescription(err),
		}, nil
	}

	result := domain.SimulationResult{Status: domain.SimulationSucceeded}

	// Gas is informational; an estimation failure after a clean call does
	// not fail the simulation.
	if gasUsed, err := s.caller.EstimateGas(ctx, chain.ID, from, to, value, calldata); err == nil {
		result.GasUsed = gasUsed
	}

	simulationCounter.WithLabelValues(chain.Name, "succeeded").Inc()
	return result, nil
}

func decodeParams(params domain.MethodParameters) (common.Address, *big.Int, []byte, error) {
	if !common.IsHexAddress(params.To) {
		return common.Address{}, nil, nil, fmt.Errorf("simulate: invalid to address %q", params.To)
	}
	calldata, err := hexutil.Decode(params.Calldata)
	if err != nil {
		return common.Address{}, nil, nil, fmt.Errorf("simulate: invalid calldata: %w", err)
	}
	value := new(big.Int)
	if params.Value != "" {
		value, err = hexutil.DecodeBig(params.Value)
		if err != nil {
			return common.Address{}, nil, nil, fmt.Errorf("simulate: invalid value: %w", err)
		}
	}
	return common.HexToAddress(params.To), value, calldata, nil
}

// revertDescription strips RPC noise down to the revert reason when the
// node surfaces one.
func revertDescription(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted"); idx >= 0 {
		return msg[idx:]
	}
	return msg
}
