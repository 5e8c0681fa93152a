package types

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain"
)

func requestContext(t *testing.T, params map[string]string) echo.Context {
	t.Helper()
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	req := httptest.NewRequest(http.MethodGet, "/quote?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func baseParams() map[string]string {
	return map[string]string{
		"tokenInAddress":  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		"tokenInChainId":  "1",
		"tokenOutAddress": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"tokenOutChainId": "1",
		"amount":          "1000000000000000000",
		"type":            "exactIn",
	}
}

func TestParseQuoteRequest_Minimal(t *testing.T) {
	req, err := ParseQuoteRequest(requestContext(t, baseParams()))
	require.NoError(t, err)

	require.Equal(t, domain.ChainMainnet, req.TokenInChain)
	require.Equal(t, domain.ExactIn, req.TradeType)
	require.Equal(t, domain.QuoteIntentFast, req.Intent)
	require.Equal(t, domain.HooksInclusive, req.Hooks)
	require.False(t, req.TokenInIsNative)
	require.Equal(t, "1000000000000000000", req.Amount.String())
	require.Empty(t, req.Protocols)
}

func TestParseQuoteRequest_NativeAlias(t *testing.T) {
	params := baseParams()
	params["tokenInAddress"] = "ETH"
	req, err := ParseQuoteRequest(requestContext(t, params))
	require.NoError(t, err)
	require.True(t, req.TokenInIsNative)
	require.Equal(t, domain.NativeAddress, req.TokenIn)

	params["tokenInAddress"] = "0x0000000000000000000000000000000000000000"
	req, err = ParseQuoteRequest(requestContext(t, params))
	require.NoError(t, err)
	require.True(t, req.TokenInIsNative)
}

func TestParseQuoteRequest_TradeTypeForms(t *testing.T) {
	tests := map[string]domain.TradeType{
		"exactIn":   domain.ExactIn,
		"exactOut":  domain.ExactOut,
		"EXACT_IN":  domain.ExactIn,
		"EXACT_OUT": domain.ExactOut,
		"":          domain.ExactIn,
	}
	for value, want := range tests {
		params := baseParams()
		params["type"] = value
		req, err := ParseQuoteRequest(requestContext(t, params))
		require.NoError(t, err, value)
		require.Equal(t, want, req.TradeType, value)
	}
}

func TestParseQuoteRequest_Protocols(t *testing.T) {
	params := baseParams()
	params["protocols"] = "v2,v3,v4,mixed"
	req, err := ParseQuoteRequest(requestContext(t, params))
	require.NoError(t, err)
	require.Equal(t, []domain.Protocol{domain.ProtocolV2, domain.ProtocolV3, domain.ProtocolV4, domain.ProtocolMixed}, req.Protocols)
	require.True(t, req.WantsAllProtocols())

	params["protocols"] = "v5"
	_, err = ParseQuoteRequest(requestContext(t, params))
	require.Error(t, err)
	var validationErr domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseQuoteRequest_SlippageBounds(t *testing.T) {
	params := baseParams()
	params["slippageTolerance"] = "20"
	req, err := ParseQuoteRequest(requestContext(t, params))
	require.NoError(t, err)
	require.Equal(t, 20.0, req.SlippageTolerance)

	params["slippageTolerance"] = "20.5"
	_, err = ParseQuoteRequest(requestContext(t, params))
	require.Error(t, err)
}

func TestParseQuoteRequest_AmountValidation(t *testing.T) {
	for _, amount := range []string{"", "0", "-5", "1.5", "abc"} {
		params := baseParams()
		params["amount"] = amount
		_, err := ParseQuoteRequest(requestContext(t, params))
		require.Error(t, err, "amount %q", amount)
		require.Equal(t, http.StatusBadRequest, domain.GetStatusCode(err))
	}
}

func TestParseQuoteRequest_PortionBips(t *testing.T) {
	params := baseParams()
	params["portionBips"] = "25"
	params["portionRecipient"] = "0x000000000000000000000000000000000000dEaD"
	req, err := ParseQuoteRequest(requestContext(t, params))
	require.NoError(t, err)
	require.Equal(t, uint16(25), req.PortionBips)
	require.NotNil(t, req.PortionRecipient)

	params["portionBips"] = "10001"
	_, err = ParseQuoteRequest(requestContext(t, params))
	require.Error(t, err)
}

func TestParseQuoteRequest_InvalidAddress(t *testing.T) {
	params := baseParams()
	params["tokenOutAddress"] = "0x123"
	_, err := ParseQuoteRequest(requestContext(t, params))
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, domain.GetStatusCode(err))
}

func TestParseQuoteRequest_IntentAndHooks(t *testing.T) {
	params := baseParams()
	params["intent"] = "FRESH"
	params["hooksOptions"] = "NO_HOOKS"
	req, err := ParseQuoteRequest(requestContext(t, params))
	require.NoError(t, err)
	require.Equal(t, domain.QuoteIntentFresh, req.Intent)
	require.Equal(t, domain.NoHooks, req.Hooks)

	params["intent"] = "SLOW"
	_, err = ParseQuoteRequest(requestContext(t, params))
	require.Error(t, err)
}
