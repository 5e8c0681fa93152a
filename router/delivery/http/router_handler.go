package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
	"github.com/uniroute-labs/uniroute/log"
	"github.com/uniroute-labs/uniroute/router/types"
)

// RouterHandler represent the httphandler for the router
type RouterHandler struct {
	RUsecase mvc.RouterUsecase
	CRepo    mvc.CachedRoutesRepository
	logger   log.Logger
}

const routerResource = "/router"

func formatRouterResource(resource string) string {
	return routerResource + resource
}

// NewRouterHandler will initialize the router/ resources endpoint
func NewRouterHandler(e *echo.Echo, us mvc.RouterUsecase, cachedRoutes mvc.CachedRoutesRepository, logger log.Logger) {
	handler := &RouterHandler{
		RUsecase: us,
		CRepo:    cachedRoutes,
		logger:   logger,
	}
	e.GET(formatRouterResource("/quote"), handler.GetQuote)
	e.GET(formatRouterResource("/cached-routes"), handler.GetCachedRoutes)
	e.DELETE(formatRouterResource("/cached-routes"), handler.DeleteCachedRoutes)
	e.GET(formatRouterResource("/cache-key"), handler.InspectCacheKey)
}

// @Summary Swap Quote
// @Description returns the best single or split route for the given pair,
// amount and trade direction, including gas estimates and submission-ready
// method parameters.
// @ID get-quote
// @Produce json
// @Param tokenInAddress query string true "Input token address, or ETH for the native currency."
// @Param tokenInChainId query int true "Input token chain id."
// @Param tokenOutAddress query string true "Output token address, or ETH for the native currency."
// @Param tokenOutChainId query int true "Output token chain id. Must equal tokenInChainId."
// @Param amount query string true "Raw token amount to swap (input for exactIn, output for exactOut)."
// @Param type query string true "exactIn or exactOut."
// @Param protocols query string false "Comma-separated protocols, e.g. v2,v3,v4,mixed. All by default."
// @Param intent query string false "FAST (cached routes allowed) or FRESH. FAST by default."
// @Success 200 {object} domain.QuoteResponse "The computed best quote"
// @Router /router/quote [get]
func (a *RouterHandler) GetQuote(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := types.ParseQuoteRequest(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	quote, err := a.RUsecase.GetQuote(ctx, req)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	return c.JSON(http.StatusOK, quote)
}

// GetCachedRoutes returns the cached routes stored for the given pair,
// direction and USD bucket. Admin use.
func (a *RouterHandler) GetCachedRoutes(c echo.Context) error {
	ctx := c.Request().Context()

	key, err := types.ParseCachedRoutesKey(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	routes, found, err := a.CRepo.GetRoutes(ctx, key)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}
	if !found {
		err := domain.ErrNoRouteFound
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"key":    key.String(),
		"routes": routes,
	})
}

// DeleteCachedRoutes removes the cache entry under the given raw key. Admin
// use.
func (a *RouterHandler) DeleteCachedRoutes(c echo.Context) error {
	ctx := c.Request().Context()

	key := c.QueryParam("key")
	if key == "" {
		err := domain.NewValidationError("key is required")
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	if err := a.CRepo.DeleteKey(ctx, key); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"deleted": key})
}

// InspectCacheKey reports the redis type and value stored under a raw key.
// Admin use.
func (a *RouterHandler) InspectCacheKey(c echo.Context) error {
	ctx := c.Request().Context()

	key := c.QueryParam("key")
	if key == "" {
		err := domain.NewValidationError("key is required")
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	inspection, err := a.CRepo.InspectKey(ctx, key)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Code: domain.GetStatusCode(err), Message: err.Error()})
	}

	return c.JSON(http.StatusOK, inspection)
}
