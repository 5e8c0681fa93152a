package mvc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

// Simulator executes a candidate plan's calldata against current chain state
// without submitting it.
type Simulator interface {
	Simulate(ctx context.Context, chain domain.ChainInfo, params domain.MethodParameters, from common.Address) (domain.SimulationResult, error)
}
