package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteRequest is the validated, internal form of a quote RPC request.
type QuoteRequest struct {
	TokenIn       common.Address
	TokenInChain  ChainID
	TokenOut      common.Address
	TokenOutChain ChainID

	// TokenInIsNative / TokenOutIsNative are set when the caller passed the
	// native currency (zero address or the "ETH" alias).
	TokenInIsNative  bool
	TokenOutIsNative bool

	Amount    *big.Int
	TradeType TradeType
	Intent    QuoteIntent

	Protocols  []Protocol
	ForceMixed bool
	Hooks      HooksOption

	Recipient         *common.Address
	SlippageTolerance float64
	DeadlineSeconds   int

	PortionBips      uint16
	PortionRecipient *common.Address

	Permit2Signature string
	Permit2Nonce     string

	SimulateFromAddress *common.Address

	DebugLogs bool

	RequestID string
}

// WantsAllProtocols reports whether the request covers every protocol,
// the precondition for serving and populating the route cache.
func (r QuoteRequest) WantsAllProtocols() bool {
	seen := map[Protocol]struct{}{}
	for _, p := range r.Protocols {
		seen[p] = struct{}{}
	}
	for _, p := range AllPoolProtocols {
		if _, ok := seen[p]; !ok {
			return false
		}
	}
	return true
}

// HasProtocol reports whether the request includes the given protocol.
func (r QuoteRequest) HasProtocol(p Protocol) bool {
	for _, candidate := range r.Protocols {
		if candidate == p {
			return true
		}
	}
	return false
}
