package mocks

import (
	"context"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

// CachedRoutesRepositoryMock is a programmable mvc.CachedRoutesRepository.
type CachedRoutesRepositoryMock struct {
	GetRoutesFunc  func(ctx context.Context, key domain.CachedRoutesKey) ([]domain.Route, bool, error)
	SetRoutesFunc  func(ctx context.Context, key domain.CachedRoutesKey, routes []domain.Route) error
	DeleteKeyFunc  func(ctx context.Context, rawKey string) error
	InspectKeyFunc func(ctx context.Context, rawKey string) (domain.CacheKeyInspection, error)

	GetRoutesCalls int
	SetRoutesCalls int
}

var _ mvc.CachedRoutesRepository = &CachedRoutesRepositoryMock{}

func (m *CachedRoutesRepositoryMock) GetRoutes(ctx context.Context, key domain.CachedRoutesKey) ([]domain.Route, bool, error) {
	m.GetRoutesCalls++
	if m.GetRoutesFunc != nil {
		return m.GetRoutesFunc(ctx, key)
	}
	return nil, false, nil
}

func (m *CachedRoutesRepositoryMock) SetRoutes(ctx context.Context, key domain.CachedRoutesKey, routes []domain.Route) error {
	m.SetRoutesCalls++
	if m.SetRoutesFunc != nil {
		return m.SetRoutesFunc(ctx, key, routes)
	}
	return nil
}

func (m *CachedRoutesRepositoryMock) DeleteKey(ctx context.Context, rawKey string) error {
	if m.DeleteKeyFunc != nil {
		return m.DeleteKeyFunc(ctx, rawKey)
	}
	return nil
}

func (m *CachedRoutesRepositoryMock) InspectKey(ctx context.Context, rawKey string) (domain.CacheKeyInspection, error) {
	if m.InspectKeyFunc != nil {
		return m.InspectKeyFunc(ctx, rawKey)
	}
	return domain.CacheKeyInspection{Type: "none"}, nil
}
