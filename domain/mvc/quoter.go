package mvc

import (
	"context"
	"math/big"

	"github.com/uniroute-labs/uniroute/domain"
)

// QuoteFetcher returns per-sub-route quoted amounts from an on-chain quoter.
// routes and amounts are parallel slices: amounts[i] is the portion of the
// requested amount assigned to routes[i] per its percentage.
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, chain domain.ChainInfo, tradeType domain.TradeType, routes []domain.Route, amounts []*big.Int) ([]domain.Quote, error)
}
