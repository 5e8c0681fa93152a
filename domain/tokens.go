package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// TokenMetadata describes an ERC-20 token as needed by routing and response
// assembly. Buy/sell fee bps are non-zero for fee-on-transfer tokens.
type TokenMetadata struct {
	Chain    ChainID        `json:"chainId"`
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`

	BuyFeeBps  uint16 `json:"buyFeeBps,omitempty"`
	SellFeeBps uint16 `json:"sellFeeBps,omitempty"`
}

// IsFeeOnTransfer reports whether the token charges an implicit transfer fee.
func (t TokenMetadata) IsFeeOnTransfer() bool {
	return t.BuyFeeBps > 0 || t.SellFeeBps > 0
}

// SimulationResult reports the outcome of one candidate simulation.
type SimulationResult struct {
	Status      SimulationStatus `json:"status"`
	Failed      bool             `json:"failed"`
	Description string           `json:"description,omitempty"`
	GasUsed     uint64           `json:"gasUsed,omitempty"`
}

// CacheKeyInspection is the result of the admin cache key inspection call.
type CacheKeyInspection struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value,omitempty"`
}
