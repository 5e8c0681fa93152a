package domain

// TokenInRoute describes one endpoint token of a pool leg in the response.
type TokenInRoute struct {
	Address    string  `json:"address"`
	ChainID    ChainID `json:"chainId"`
	Symbol     string  `json:"symbol,omitempty"`
	Decimals   uint8   `json:"decimals"`
	BuyFeeBps  uint16  `json:"buyFeeBps,omitempty"`
	SellFeeBps uint16  `json:"sellFeeBps,omitempty"`
}

// PoolInRoute is the response projection of one pool leg with correct
// (tokenIn, tokenOut) orientation.
type PoolInRoute struct {
	Type     string       `json:"type"`
	Address  string       `json:"address"`
	TokenIn  TokenInRoute `json:"tokenIn"`
	TokenOut TokenInRoute `json:"tokenOut"`

	// V2
	Reserve0 string `json:"reserve0,omitempty"`
	Reserve1 string `json:"reserve1,omitempty"`

	// V3 / V4
	Fee          string `json:"fee,omitempty"`
	Liquidity    string `json:"liquidity,omitempty"`
	TickCurrent  string `json:"tickCurrent,omitempty"`
	SqrtPriceX96 string `json:"sqrtPriceX96,omitempty"`
	// Duplicate of SqrtPriceX96 kept for client compatibility.
	SqrtRatioX96 string `json:"sqrtRatioX96,omitempty"`

	// V4
	TickSpacing string `json:"tickSpacing,omitempty"`
	Hooks       string `json:"hooks,omitempty"`

	// AmountIn is populated only on the first leg of a split route;
	// AmountOut only on the last leg.
	AmountIn  string `json:"amountIn,omitempty"`
	AmountOut string `json:"amountOut,omitempty"`
}

// QuoteResponse is the wire shape of a successful quote.
type QuoteResponse struct {
	BlockNumber      string `json:"blockNumber,omitempty"`
	QuoteAmount      string `json:"quote"`
	QuoteGasAdjusted string `json:"quoteGasAdjusted"`

	GasPriceWei         string `json:"gasPriceWei"`
	GasUseEstimate      string `json:"gasUseEstimate"`
	GasUseEstimateQuote string `json:"gasUseEstimateQuote"`
	GasUseEstimateUSD   string `json:"gasUseEstimateUSD"`

	RouteString string          `json:"routeString"`
	Route       [][]PoolInRoute `json:"route"`

	HitsCachedRoutes bool `json:"hitsCachedRoutes"`

	SimulationStatus      SimulationStatus `json:"simulationStatus"`
	SimulationError       bool             `json:"simulationError"`
	SimulationDescription string           `json:"simulationDescription,omitempty"`

	MethodParameters *MethodParameters `json:"methodParameters,omitempty"`

	PortionAmount string `json:"portionAmount,omitempty"`
	PriceImpact   string `json:"priceImpact,omitempty"`

	QuoteID   string `json:"quoteId"`
	USDBucket string `json:"usdBucket"`
}
