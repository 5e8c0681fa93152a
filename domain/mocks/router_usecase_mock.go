package mocks

import (
	"context"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

// RouterUsecaseMock is a programmable mvc.RouterUsecase.
type RouterUsecaseMock struct {
	GetQuoteFunc func(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error)

	GetQuoteCalls int
}

var _ mvc.RouterUsecase = &RouterUsecaseMock{}

func (m *RouterUsecaseMock) GetQuote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	m.GetQuoteCalls++
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, req)
	}
	return nil, domain.ErrNoRouteFound
}
