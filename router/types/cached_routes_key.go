package types

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uniroute-labs/uniroute/domain"
)

// ParseCachedRoutesKey builds the structured route cache key from the admin
// query parameters.
func ParseCachedRoutesKey(c echo.Context) (domain.CachedRoutesKey, error) {
	var key domain.CachedRoutesKey

	chain, err := parseChainID(c.QueryParam("chainId"), "chainId")
	if err != nil {
		return key, err
	}
	key.Chain = chain

	tokenIn, _, err := parseTokenAddress(c.QueryParam("tokenInAddress"), "tokenInAddress")
	if err != nil {
		return key, err
	}
	tokenOut, _, err := parseTokenAddress(c.QueryParam("tokenOutAddress"), "tokenOutAddress")
	if err != nil {
		return key, err
	}
	key.TokenIn = tokenIn
	key.TokenOut = tokenOut

	key.TradeType, err = parseTradeType(c.QueryParam("type"))
	if err != nil {
		return key, err
	}

	bucket := strings.ToUpper(c.QueryParam("bucket"))
	switch domain.USDBucket(bucket) {
	case domain.USDBucket1, domain.USDBucket10, domain.USDBucket100, domain.USDBucket1K,
		domain.USDBucket10K, domain.USDBucket100K, domain.USDBucket1M, domain.USDBucket10M:
		key.Bucket = domain.USDBucket(bucket)
	default:
		return key, domain.NewValidationError("bucket %q is not a known USD bucket", c.QueryParam("bucket"))
	}

	return key, nil
}
