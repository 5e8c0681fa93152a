package mocks

import (
	"context"
	"math/big"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

// QuoteFetcherMock is a programmable mvc.QuoteFetcher.
type QuoteFetcherMock struct {
	FetchQuotesFunc func(ctx context.Context, chain domain.ChainInfo, tradeType domain.TradeType, routes []domain.Route, amounts []*big.Int) ([]domain.Quote, error)

	FetchQuotesCalls int
}

var _ mvc.QuoteFetcher = &QuoteFetcherMock{}

func (m *QuoteFetcherMock) FetchQuotes(ctx context.Context, chain domain.ChainInfo, tradeType domain.TradeType, routes []domain.Route, amounts []*big.Int) ([]domain.Quote, error) {
	m.FetchQuotesCalls++
	if m.FetchQuotesFunc != nil {
		return m.FetchQuotesFunc(ctx, chain, tradeType, routes, amounts)
	}
	return nil, nil
}
