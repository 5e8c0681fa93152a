package mvc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

// TokenProvider resolves token metadata including fee-on-transfer probing.
type TokenProvider interface {
	GetToken(ctx context.Context, chain domain.ChainID, address common.Address) (domain.TokenMetadata, error)

	// NativeUSDPrice returns the USD price of the chain's wrapped native
	// token, or 0 when unknown.
	NativeUSDPrice(ctx context.Context, chain domain.ChainID) float64
}

// ChainClient is the per-chain RPC access used by the pipeline.
type ChainClient interface {
	GasPrice(ctx context.Context, chain domain.ChainID) (*big.Int, error)
	BlockNumber(ctx context.Context, chain domain.ChainID) (uint64, error)
	CallContract(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error)
}
