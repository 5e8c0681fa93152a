package mvc

import (
	"context"

	"github.com/uniroute-labs/uniroute/domain"
)

// RouterUsecase orchestrates the quote pipeline.
type RouterUsecase interface {
	// GetQuote runs the full pipeline for a validated request.
	GetQuote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error)
}

// CachedRoutesRepository is the hot route cache keyed by
// (chain, direction, pair, USD bucket).
type CachedRoutesRepository interface {
	// GetRoutes returns the cached routes for the key and whether the key
	// was present. A soft-expired but hard-live entry is returned
	// immediately while an asynchronous refresh is triggered at most once.
	GetRoutes(ctx context.Context, key domain.CachedRoutesKey) ([]domain.Route, bool, error)

	// SetRoutes stores the winning routes for the key.
	SetRoutes(ctx context.Context, key domain.CachedRoutesKey, routes []domain.Route) error

	// DeleteKey removes a raw cache key. Admin use.
	DeleteKey(ctx context.Context, rawKey string) error

	// InspectKey reports the Redis type and value stored under a raw key.
	InspectKey(ctx context.Context, rawKey string) (domain.CacheKeyInspection, error)
}
