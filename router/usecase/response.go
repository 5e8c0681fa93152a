package usecase

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
)

// buildRouteLegs renders the winning split's legs as response pool
// descriptors with per-leg (tokenIn, tokenOut) orientation. Synthetic
// native/wrapped connector pools are omitted. amountIn is set only on each
// leg's first pool and amountOut only on its last.
func buildRouteLegs(chain domain.ChainInfo, request domain.QuoteRequest, split domain.QuoteSplit, tokens map[common.Address]domain.TokenMetadata, portionAmount *big.Int) ([][]domain.PoolInRoute, error) {
	portions := allocatePortion(portionAmount, split)
	legs := make([][]domain.PoolInRoute, 0, len(split.Quotes))
	for i, quote := range split.Quotes {
		leg, err := buildLeg(chain, request, quote, tokens, portions[i])
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// allocatePortion distributes the portion across the split's legs pro-rata
// to their quoted amounts so the displayed outputs net the fee exactly once
// in total. The rounding remainder lands on the last leg.
func allocatePortion(portionAmount *big.Int, split domain.QuoteSplit) []*big.Int {
	shares := make([]*big.Int, len(split.Quotes))
	if portionAmount == nil || portionAmount.Sign() <= 0 || len(split.Quotes) == 0 {
		return shares
	}
	total := new(big.Int)
	for _, quote := range split.Quotes {
		if quote.QuotedAmount != nil {
			total.Add(total, quote.QuotedAmount)
		}
	}
	if total.Sign() <= 0 {
		return shares
	}
	allocated := new(big.Int)
	for i, quote := range split.Quotes {
		if i == len(split.Quotes)-1 {
			shares[i] = new(big.Int).Sub(portionAmount, allocated)
			break
		}
		share := new(big.Int)
		if quote.QuotedAmount != nil {
			share.Mul(portionAmount, quote.QuotedAmount)
			share.Quo(share, total)
		}
		shares[i] = share
		allocated.Add(allocated, share)
	}
	return shares
}

func buildLeg(chain domain.ChainInfo, request domain.QuoteRequest, quote domain.Quote, tokens map[common.Address]domain.TokenMetadata, portionAmount *big.Int) ([]domain.PoolInRoute, error) {
	path, err := quote.Route.Tokens()
	if err != nil {
		return nil, err
	}

	amountIn, amountOut := legAmounts(quote, request.TradeType, portionAmount)

	leg := make([]domain.PoolInRoute, 0, len(quote.Route.Pools))
	for i, pool := range quote.Route.Pools {
		if pool.IsSynthetic() {
			continue
		}
		tokenIn := orientToken(chain, request, path, i)
		tokenOut := path[i+1]

		entry := domain.PoolInRoute{
			Type:     string(pool.Protocol) + "-pool",
			Address:  strings.ToLower(pool.Address.Hex()),
			TokenIn:  tokenInRoute(chain, tokenIn, tokens),
			TokenOut: tokenInRoute(chain, tokenOut, tokens),
		}
		switch pool.Protocol {
		case domain.ProtocolV2:
			entry.Reserve0 = uintString(pool.Reserve0)
			entry.Reserve1 = uintString(pool.Reserve1)
		case domain.ProtocolV3:
			entry.Fee = strconv.FormatUint(uint64(pool.Fee), 10)
			entry.Liquidity = uintString(pool.Liquidity)
			entry.TickCurrent = strconv.FormatInt(int64(pool.TickCurrent), 10)
			entry.SqrtPriceX96 = uintString(pool.SqrtPriceX96)
			entry.SqrtRatioX96 = entry.SqrtPriceX96
		case domain.ProtocolV4:
			entry.Fee = strconv.FormatUint(uint64(pool.Fee), 10)
			entry.Liquidity = uintString(pool.Liquidity)
			entry.TickCurrent = strconv.FormatInt(int64(pool.TickCurrent), 10)
			entry.SqrtPriceX96 = uintString(pool.SqrtPriceX96)
			entry.SqrtRatioX96 = entry.SqrtPriceX96
			entry.TickSpacing = strconv.FormatInt(int64(pool.TickSpacing), 10)
			entry.Hooks = strings.ToLower(pool.Hooks.Hex())
		}
		if len(leg) == 0 {
			entry.AmountIn = bigString(amountIn)
		}
		leg = append(leg, entry)
	}
	if len(leg) == 0 {
		return nil, fmt.Errorf("route has no real pools")
	}
	leg[len(leg)-1].AmountOut = bigString(amountOut)
	return leg, nil
}

// legAmounts returns the first-leg input and last-leg output for display.
// On EXACT_IN the leg's share of the portion is subtracted from the reported
// output so the user sees the net amount; the routed quote itself is
// untouched.
func legAmounts(quote domain.Quote, tradeType domain.TradeType, portionAmount *big.Int) (amountIn, amountOut *big.Int) {
	if tradeType == domain.ExactOut {
		return quote.QuotedAmount, quote.RequestedAmount
	}
	amountOut = quote.QuotedAmount
	if portionAmount != nil && portionAmount.Sign() > 0 && quote.QuotedAmount != nil {
		amountOut = new(big.Int).Sub(quote.QuotedAmount, portionAmount)
	}
	return quote.RequestedAmount, amountOut
}

// orientToken resolves the display token at path position i. The first pool
// shows the caller's tokenIn; when that is native and the route has more than
// one real pool, the wrapped form is disambiguated by inspecting which token
// of the first pool continues into the second.
func orientToken(chain domain.ChainInfo, request domain.QuoteRequest, path []common.Address, i int) common.Address {
	token := path[i]
	if i == 0 && request.TokenInIsNative {
		if len(path) > 2 && token == chain.WrappedNative {
			return chain.WrappedNative
		}
		if token == domain.NativeAddress || token == chain.WrappedNative {
			return domain.NativeAddress
		}
	}
	return token
}

func tokenInRoute(chain domain.ChainInfo, token common.Address, tokens map[common.Address]domain.TokenMetadata) domain.TokenInRoute {
	meta, ok := tokens[token]
	if !ok {
		return domain.TokenInRoute{
			Address: strings.ToLower(token.Hex()),
			ChainID: chain.ID,
		}
	}
	return domain.TokenInRoute{
		Address:    strings.ToLower(token.Hex()),
		ChainID:    chain.ID,
		Symbol:     meta.Symbol,
		Decimals:   meta.Decimals,
		BuyFeeBps:  meta.BuyFeeBps,
		SellFeeBps: meta.SellFeeBps,
	}
}

// routeString renders every leg of the split on one line.
func routeString(split domain.QuoteSplit) string {
	legs := make([]string, 0, len(split.Quotes))
	for _, quote := range split.Quotes {
		legs = append(legs, quote.Route.String())
	}
	return strings.Join(legs, " + ")
}

// priceImpact estimates the execution price deviation from the pool mid
// prices in percent, clamped to [-100, 100]. Empty when no mid price can be
// derived.
func priceImpact(split domain.QuoteSplit, tradeType domain.TradeType) string {
	requested := new(big.Float)
	ideal := new(big.Float)
	quoted := new(big.Float)
	for _, quote := range split.Quotes {
		if quote.RequestedAmount == nil || quote.QuotedAmount == nil {
			return ""
		}
		mid, ok := routeMidRatio(quote.Route)
		if !ok {
			return ""
		}
		legRequested := new(big.Float).SetInt(quote.RequestedAmount)
		requested.Add(requested, legRequested)
		ideal.Add(ideal, new(big.Float).Mul(legRequested, mid))
		quoted.Add(quoted, new(big.Float).SetInt(quote.QuotedAmount))
	}
	if ideal.Sign() == 0 || quoted.Sign() == 0 {
		return ""
	}

	var impact *big.Float
	if tradeType == domain.ExactOut {
		// Larger required input than the mid price implies is positive impact.
		impact = new(big.Float).Quo(new(big.Float).Sub(quoted, ideal), ideal)
	} else {
		impact = new(big.Float).Quo(new(big.Float).Sub(ideal, quoted), ideal)
	}
	impact.Mul(impact, big.NewFloat(100))

	value, _ := impact.Float64()
	if value > 100 {
		value = 100
	}
	if value < -100 {
		value = -100
	}
	return strconv.FormatFloat(value, 'f', 4, 64)
}

var q192Float = new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 192))

// routeMidRatio multiplies the mid prices of all pools along the route in
// path direction, in raw token units.
func routeMidRatio(route domain.Route) (*big.Float, bool) {
	tokens, err := route.Tokens()
	if err != nil {
		return nil, false
	}
	ratio := big.NewFloat(1)
	for i, pool := range route.Pools {
		if pool.IsSynthetic() {
			continue
		}
		mid, ok := poolMidRatio(pool, tokens[i])
		if !ok {
			return nil, false
		}
		ratio.Mul(ratio, mid)
	}
	return ratio, true
}

// poolMidRatio is the pool's tokenOut-per-tokenIn mid price for the given
// input token.
func poolMidRatio(pool domain.Pool, tokenIn common.Address) (*big.Float, bool) {
	if pool.Protocol == domain.ProtocolV2 {
		if pool.Reserve0 == nil || pool.Reserve1 == nil || pool.Reserve0.IsZero() || pool.Reserve1.IsZero() {
			return nil, false
		}
		reserveIn := new(big.Float).SetInt(pool.Reserve0.ToBig())
		reserveOut := new(big.Float).SetInt(pool.Reserve1.ToBig())
		if pool.Token1 == tokenIn {
			reserveIn, reserveOut = reserveOut, reserveIn
		}
		return new(big.Float).Quo(reserveOut, reserveIn), true
	}

	if pool.SqrtPriceX96 == nil || pool.SqrtPriceX96.IsZero() {
		return nil, false
	}
	sqrt := new(big.Float).SetInt(pool.SqrtPriceX96.ToBig())
	price := new(big.Float).Mul(sqrt, sqrt)
	price.Quo(price, q192Float)
	if pool.Token0 == tokenIn {
		return price, true
	}
	return new(big.Float).Quo(big.NewFloat(1), price), true
}

func bigString(value *big.Int) string {
	if value == nil {
		return ""
	}
	return value.String()
}

func uintString(value interface{ ToBig() *big.Int }) string {
	if value == nil {
		return ""
	}
	return value.ToBig().String()
}
