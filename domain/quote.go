package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// TradeType fixes the amount on the input or the output side of the trade.
type TradeType int

const (
	ExactIn TradeType = iota
	ExactOut
)

func (t TradeType) String() string {
	if t == ExactOut {
		return "EXACT_OUT"
	}
	return "EXACT_IN"
}

// ParseTradeType parses "EXACT_IN" or "EXACT_OUT" (case-insensitive).
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ToUpper(s) {
	case "EXACT_IN", "":
		return ExactIn, nil
	case "EXACT_OUT":
		return ExactOut, nil
	}
	return ExactIn, fmt.Errorf("unknown trade type %q", s)
}

// QuoteIntent selects between the cached fast path and a fresh computation.
type QuoteIntent string

const (
	QuoteIntentFast  QuoteIntent = "FAST"
	QuoteIntentFresh QuoteIntent = "FRESH"
)

// QuoterData is the opaque per-protocol quoter response attached to a quote.
// For V3/V4 it carries the initialised-ticks-crossed list consumed by the
// gas estimator.
type QuoterData struct {
	InitializedTicksCrossed []uint32       `json:"initializedTicksCrossed,omitempty"`
	SqrtPriceX96AfterList   []*uint256.Int `json:"sqrtPriceX96AfterList,omitempty"`
	GasEstimate             uint64         `json:"gasEstimate,omitempty"`
}

// GasDetails carries the gas model output for one route.
type GasDetails struct {
	GasPriceWei *big.Int `json:"gasPriceWei"`
	GasCostWei  *big.Int `json:"gasCostWei"`
	GasUse      uint64   `json:"gasUse"`
	GasCostEth  float64  `json:"gasCostEth"`

	// Populated by the gas converter.
	GasCostQuoteToken *big.Int `json:"gasCostQuoteToken,omitempty"`
	GasCostUSD        float64  `json:"gasCostUSD,omitempty"`
}

// CombineGasDetails sums the L2 execution component with the L1 data
// component of a rollup trade. The gas price is taken from the route
// component.
func CombineGasDetails(routeGas, l1Gas GasDetails) GasDetails {
	combined := GasDetails{
		GasPriceWei: routeGas.GasPriceWei,
		GasUse:      routeGas.GasUse + l1Gas.GasUse,
		GasCostEth:  routeGas.GasCostEth + l1Gas.GasCostEth,
		GasCostWei:  new(big.Int),
	}
	if routeGas.GasCostWei != nil {
		combined.GasCostWei.Add(combined.GasCostWei, routeGas.GasCostWei)
	}
	if l1Gas.GasCostWei != nil {
		combined.GasCostWei.Add(combined.GasCostWei, l1Gas.GasCostWei)
	}
	return combined
}

// Quote is a route priced for a specific portion of the requested amount.
// QuotedAmount is the output amount for EXACT_IN trades and the required
// input amount for EXACT_OUT trades.
type Quote struct {
	Route Route `json:"route"`

	RequestedAmount *big.Int `json:"requestedAmount"`
	QuotedAmount    *big.Int `json:"quotedAmount"`

	GasDetails *GasDetails `json:"gasDetails,omitempty"`
	QuoterData *QuoterData `json:"quoterData,omitempty"`
}

// AdjustedAmount returns the gas-adjusted quoted amount: output minus gas for
// EXACT_IN, input plus gas for EXACT_OUT. Falls back to the raw amount when
// no converted gas cost is available.
func (q Quote) AdjustedAmount(tradeType TradeType) *big.Int {
	if q.QuotedAmount == nil {
		return nil
	}
	if q.GasDetails == nil || q.GasDetails.GasCostQuoteToken == nil {
		return new(big.Int).Set(q.QuotedAmount)
	}
	if tradeType == ExactOut {
		return new(big.Int).Add(q.QuotedAmount, q.GasDetails.GasCostQuoteToken)
	}
	return new(big.Int).Sub(q.QuotedAmount, q.GasDetails.GasCostQuoteToken)
}

// QuoteSplit is an ordered set of quotes whose route percentages sum to 100.
type QuoteSplit struct {
	Quotes []Quote `json:"quotes"`
}

// TotalQuotedAmount sums the quoted amounts of all legs.
func (s QuoteSplit) TotalQuotedAmount() *big.Int {
	total := new(big.Int)
	for _, quote := range s.Quotes {
		if quote.QuotedAmount != nil {
			total.Add(total, quote.QuotedAmount)
		}
	}
	return total
}

// TotalAdjustedAmount sums the gas-adjusted amounts of all legs.
func (s QuoteSplit) TotalAdjustedAmount(tradeType TradeType) *big.Int {
	total := new(big.Int)
	for _, quote := range s.Quotes {
		if adjusted := quote.AdjustedAmount(tradeType); adjusted != nil {
			total.Add(total, adjusted)
		}
	}
	return total
}

// TotalGasUse sums the gas use estimates of all legs.
func (s QuoteSplit) TotalGasUse() uint64 {
	var total uint64
	for _, quote := range s.Quotes {
		if quote.GasDetails != nil {
			total += quote.GasDetails.GasUse
		}
	}
	return total
}

// Validate checks the split invariants: percentages positive and summing to
// 100, no pool shared between legs, and no native-touching leg combined with
// a wrapped-native-touching leg.
func (s QuoteSplit) Validate(wrappedNative common.Address) error {
	total := 0
	seenPools := map[string]struct{}{}
	involvesNative := false
	involvesWrapped := false
	for _, quote := range s.Quotes {
		if quote.Route.Percentage <= 0 {
			return fmt.Errorf("split: non-positive percentage %d", quote.Route.Percentage)
		}
		total += quote.Route.Percentage
		for _, key := range quote.Route.PoolKeys() {
			if _, ok := seenPools[key]; ok {
				return fmt.Errorf("split: pool %s used by more than one leg", key)
			}
			seenPools[key] = struct{}{}
		}
		if quote.Route.InvolvesToken(NativeAddress) || IsNative(quote.Route.TokenIn) || IsNative(quote.Route.TokenOut) {
			involvesNative = true
		} else if quote.Route.InvolvesToken(wrappedNative) {
			involvesWrapped = true
		}
	}
	if total != 100 {
		return fmt.Errorf("split: percentages sum to %d, want 100", total)
	}
	if involvesNative && involvesWrapped {
		return fmt.Errorf("split: mixes native and wrapped-native legs")
	}
	return nil
}

// SimulationStatus reports the outcome of simulating a quote plan.
type SimulationStatus string

const (
	SimulationUnattempted SimulationStatus = "UNATTEMPTED"
	SimulationSucceeded   SimulationStatus = "SUCCEEDED"
	SimulationFailed      SimulationStatus = "FAILED"
)

// MethodParameters is the submission-ready call description for a plan.
type MethodParameters struct {
	To       string `json:"to"`
	Calldata string `json:"calldata"`
	Value    string `json:"value"`
}
