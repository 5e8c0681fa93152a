package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

// SimulatorMock is a programmable mvc.Simulator.
type SimulatorMock struct {
	SimulateFunc func(ctx context.Context, chain domain.ChainInfo, params domain.MethodParameters, from common.Address) (domain.SimulationResult, error)

	SimulateCalls int
}

var _ mvc.Simulator = &SimulatorMock{}

func (m *SimulatorMock) Simulate(ctx context.Context, chain domain.ChainInfo, params domain.MethodParameters, from common.Address) (domain.SimulationResult, error) {
	m.SimulateCalls++
	if m.SimulateFunc != nil {
		return m.SimulateFunc(ctx, chain, params, from)
	}
	return domain.SimulationResult{Status: domain.SimulationSucceeded}, nil
}
