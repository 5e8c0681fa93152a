package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
)

var _ mvc.ChainClient = &Client{}

// Client is the JSON-RPC access layer shared by the pipeline. One ethclient
// connection is held per configured chain; connections are established
// lazily by the underlying transport, so construction does not dial.
type Client struct {
	clients map[domain.ChainID]*ethclient.Client
	logger  log.Logger
}

// NewClient builds a client for every configured RPC endpoint. Endpoints
// for chains outside the chain table are rejected at startup rather than
// silently ignored.
func NewClient(endpoints map[domain.ChainID]string, logger log.Logger) (*Client, error) {
	clients := make(map[domain.ChainID]*ethclient.Client, len(endpoints))
	for chainID, endpoint := range endpoints {
		if !domain.IsChainSupported(chainID) {
			return nil, fmt.Errorf("rpc endpoint configured for unknown chain %d", chainID)
		}
		client, err := ethclient.Dial(endpoint)
		if err != nil {
			return nil, fmt.Errorf("dial chain %d: %w", chainID, err)
		}
		logger.Info("connected chain rpc", zap.Uint64("chain_id", uint64(chainID)))
		clients[chainID] = client
	}
	return &Client{clients: clients, logger: logger}, nil
}

func (c *Client) client(chain domain.ChainID) (*ethclient.Client, error) {
	client, ok := c.clients[chain]
	if !ok {
		return nil, fmt.Errorf("no rpc endpoint configured for chain %d: %w", chain, domain.ErrInternalServerError)
	}
	return client, nil
}

// GasPrice implements mvc.ChainClient.
func (c *Client) GasPrice(ctx context.Context, chain domain.ChainID) (*big.Int, error) {
	client, err := c.client(chain)
	if err != nil {
		return nil, err
	}
	return client.SuggestGasPrice(ctx)
}

// BlockNumber implements mvc.ChainClient.
func (c *Client) BlockNumber(ctx context.Context, chain domain.ChainID) (uint64, error) {
	client, err := c.client(chain)
	if err != nil {
		return 0, err
	}
	return client.BlockNumber(ctx)
}

// CallContract implements mvc.ChainClient. The call runs against the latest
// block with no sender and no value attached.
func (c *Client) CallContract(ctx context.Context, chain domain.ChainID, to common.Address, data []byte) ([]byte, error) {
	client, err := c.client(chain)
	if err != nil {
		return nil, err
	}
	return client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// CallContractFrom executes a call with an explicit sender and attached
// value. The simulator uses it to replay trade calldata under the caller's
// balances and approvals.
func (c *Client) CallContractFrom(ctx context.Context, chain domain.ChainID, from, to common.Address, value *big.Int, data []byte) ([]byte, error) {
	client, err := c.client(chain)
	if err != nil {
		return nil, err
	}
	return client.CallContract(ctx, ethereum.CallMsg{From: from, To: &to, Value: value, Data: data}, nil)
}

// EstimateGas returns the node's gas estimate for the given call.
func (c *Client) EstimateGas(ctx context.Context, chain domain.ChainID, from, to common.Address, value *big.Int, data []byte) (uint64, error) {
	client, err := c.client(chain)
	if err != nil {
		return 0, err
	}
	return client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Value: value, Data: data})
}

// Close releases all underlying connections.
func (c *Client) Close() {
	for _, client := range c.clients {
		client.Close()
	}
}
