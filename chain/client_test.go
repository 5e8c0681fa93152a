package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/log"
)

func TestNewClient_RejectsUnknownChain(t *testing.T) {
	_, err := NewClient(map[domain.ChainID]string{
		domain.ChainID(999999): "http://localhost:8545",
	}, log.NewNopLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown chain")
}

func TestClient_UnconfiguredChainErrors(t *testing.T) {
	client, err := NewClient(nil, log.NewNopLogger())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.GasPrice(ctx, domain.ChainMainnet)
	require.Error(t, err)

	_, err = client.BlockNumber(ctx, domain.ChainMainnet)
	require.Error(t, err)

	_, err = client.CallContract(ctx, domain.ChainMainnet, domain.UniversalRouterAddress, nil)
	require.Error(t, err)

	_, err = client.CallContractFrom(ctx, domain.ChainMainnet, domain.NativeAddress, domain.UniversalRouterAddress, big.NewInt(0), nil)
	require.Error(t, err)
}
