package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mocks"
	"github.com/uniroute-labs/uniroute/log"
)

func newTestServer(router *mocks.RouterUsecaseMock, cache *mocks.CachedRoutesRepositoryMock) *echo.Echo {
	e := echo.New()
	NewRouterHandler(e, router, cache, log.NewNopLogger())
	return e
}

const quoteQuery = "/router/quote?tokenInAddress=0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2&tokenInChainId=1" +
	"&tokenOutAddress=0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48&tokenOutChainId=1" +
	"&amount=1000000000000000000&type=exactIn"

func TestGetQuote_OK(t *testing.T) {
	router := &mocks.RouterUsecaseMock{
		GetQuoteFunc: func(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
			require.Equal(t, domain.ChainMainnet, req.TokenInChain)
			return &domain.QuoteResponse{QuoteAmount: "2500000000", QuoteID: "q-1"}, nil
		},
	}
	e := newTestServer(router, &mocks.CachedRoutesRepositoryMock{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, quoteQuery, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var response domain.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "2500000000", response.QuoteAmount)
	require.Equal(t, 1, router.GetQuoteCalls)
}

func TestGetQuote_BadParams(t *testing.T) {
	router := &mocks.RouterUsecaseMock{}
	e := newTestServer(router, &mocks.CachedRoutesRepositoryMock{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/router/quote?tokenInAddress=bogus", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, router.GetQuoteCalls, "invalid params must not reach the usecase")
}

func TestGetQuote_NoRouteIs404(t *testing.T) {
	router := &mocks.RouterUsecaseMock{
		GetQuoteFunc: func(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
			return nil, domain.ErrNoRouteFound
		},
	}
	e := newTestServer(router, &mocks.CachedRoutesRepositoryMock{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, quoteQuery, nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var response domain.ResponseError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, http.StatusNotFound, response.Code)
}

func TestGetQuote_UnsupportedChainIs400(t *testing.T) {
	router := &mocks.RouterUsecaseMock{
		GetQuoteFunc: func(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
			return nil, domain.UnsupportedChainError{Chain: req.TokenInChain}
		},
	}
	e := newTestServer(router, &mocks.CachedRoutesRepositoryMock{})

	target := "/router/quote?tokenInAddress=0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2&tokenInChainId=5" +
		"&tokenOutAddress=0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48&tokenOutChainId=5" +
		"&amount=100&type=exactIn"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCachedRoutes(t *testing.T) {
	cache := &mocks.CachedRoutesRepositoryMock{
		GetRoutesFunc: func(ctx context.Context, key domain.CachedRoutesKey) ([]domain.Route, bool, error) {
			require.Equal(t, domain.USDBucket1K, key.Bucket)
			return []domain.Route{{}}, true, nil
		},
	}
	e := newTestServer(&mocks.RouterUsecaseMock{}, cache)

	target := "/router/cached-routes?chainId=1&tokenInAddress=0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2" +
		"&tokenOutAddress=0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48&type=exactIn&bucket=USD_1_000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, cache.GetRoutesCalls)
}

func TestDeleteCachedRoutes(t *testing.T) {
	var deleted string
	cache := &mocks.CachedRoutesRepositoryMock{
		DeleteKeyFunc: func(ctx context.Context, rawKey string) error {
			deleted = rawKey
			return nil
		},
	}
	e := newTestServer(&mocks.RouterUsecaseMock{}, cache)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/router/cached-routes?key=CACHEDROUTE%231%23EXACT_IN%23a%23b%23USD_1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "CACHEDROUTE#1#EXACT_IN#a#b#USD_1", deleted)
}

func TestInspectCacheKey(t *testing.T) {
	cache := &mocks.CachedRoutesRepositoryMock{
		InspectKeyFunc: func(ctx context.Context, rawKey string) (domain.CacheKeyInspection, error) {
			return domain.CacheKeyInspection{Type: "string", Value: "payload"}, nil
		},
	}
	e := newTestServer(&mocks.RouterUsecaseMock{}, cache)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/router/cache-key?key=somekey", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var inspection domain.CacheKeyInspection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inspection))
	require.Equal(t, "string", inspection.Type)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/router/cache-key", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
