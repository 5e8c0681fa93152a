package types

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	"github.com/uniroute-labs/uniroute/domain"
)

// nativeAlias is the symbolic token address accepted for the native currency.
const nativeAlias = "ETH"

const maxSlippageTolerance = 20

// ParseQuoteRequest validates the quote query parameters and produces the
// internal request form. All failures map to 400-class validation errors.
func ParseQuoteRequest(c echo.Context) (domain.QuoteRequest, error) {
	var req domain.QuoteRequest

	tokenIn, tokenInIsNative, err := parseTokenAddress(c.QueryParam("tokenInAddress"), "tokenInAddress")
	if err != nil {
		return req, err
	}
	tokenOut, tokenOutIsNative, err := parseTokenAddress(c.QueryParam("tokenOutAddress"), "tokenOutAddress")
	if err != nil {
		return req, err
	}
	req.TokenIn = tokenIn
	req.TokenInIsNative = tokenInIsNative
	req.TokenOut = tokenOut
	req.TokenOutIsNative = tokenOutIsNative

	req.TokenInChain, err = parseChainID(c.QueryParam("tokenInChainId"), "tokenInChainId")
	if err != nil {
		return req, err
	}
	req.TokenOutChain, err = parseChainID(c.QueryParam("tokenOutChainId"), "tokenOutChainId")
	if err != nil {
		return req, err
	}

	amountStr := c.QueryParam("amount")
	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok || amount.Sign() <= 0 {
		return req, domain.NewValidationError("amount %q must be a positive integer", amountStr)
	}
	req.Amount = amount

	req.TradeType, err = parseTradeType(c.QueryParam("type"))
	if err != nil {
		return req, err
	}

	req.Intent, err = parseIntent(c.QueryParam("intent"))
	if err != nil {
		return req, err
	}

	if protocolsStr := c.QueryParam("protocols"); protocolsStr != "" {
		req.Protocols, err = domain.ParseProtocols(protocolsStr)
		if err != nil {
			return req, domain.NewValidationError("%s", err.Error())
		}
	}

	req.Hooks, err = parseHooksOption(c.QueryParam("hooksOptions"))
	if err != nil {
		return req, err
	}

	if forceMixed := c.QueryParam("forceMixedRoutes"); forceMixed != "" {
		req.ForceMixed, err = strconv.ParseBool(forceMixed)
		if err != nil {
			return req, domain.NewValidationError("forceMixedRoutes %q is not a boolean", forceMixed)
		}
	}

	req.Recipient, err = parseOptionalAddress(c.QueryParam("recipient"), "recipient")
	if err != nil {
		return req, err
	}

	if slippage := c.QueryParam("slippageTolerance"); slippage != "" {
		req.SlippageTolerance, err = strconv.ParseFloat(slippage, 64)
		if err != nil {
			return req, domain.NewValidationError("slippageTolerance %q is not a number", slippage)
		}
		if req.SlippageTolerance < 0 || req.SlippageTolerance > maxSlippageTolerance {
			return req, domain.NewValidationError("slippageTolerance %s outside [0, %d]", slippage, maxSlippageTolerance)
		}
	}

	if deadline := c.QueryParam("deadline"); deadline != "" {
		req.DeadlineSeconds, err = strconv.Atoi(deadline)
		if err != nil || req.DeadlineSeconds <= 0 {
			return req, domain.NewValidationError("deadline %q must be a positive number of seconds", deadline)
		}
	}

	if portionBips := c.QueryParam("portionBips"); portionBips != "" {
		bips, err := strconv.ParseUint(portionBips, 10, 16)
		if err != nil || bips > 10000 {
			return req, domain.NewValidationError("portionBips %q must be in [0, 10000]", portionBips)
		}
		req.PortionBips = uint16(bips)
	}
	req.PortionRecipient, err = parseOptionalAddress(c.QueryParam("portionRecipient"), "portionRecipient")
	if err != nil {
		return req, err
	}

	req.SimulateFromAddress, err = parseOptionalAddress(c.QueryParam("simulateFromAddress"), "simulateFromAddress")
	if err != nil {
		return req, err
	}

	req.Permit2Signature = c.QueryParam("permitSignature")
	req.Permit2Nonce = c.QueryParam("permitNonce")

	if debug := c.QueryParam("debugRouting"); debug != "" {
		req.DebugLogs, _ = strconv.ParseBool(debug)
	}
	req.RequestID = c.Request().Header.Get(echo.HeaderXRequestID)

	return req, nil
}

// parseTokenAddress resolves a token parameter, accepting the "ETH" alias and
// the zero address as the native currency.
func parseTokenAddress(value, name string) (common.Address, bool, error) {
	if value == "" {
		return common.Address{}, false, domain.NewValidationError("%s is required", name)
	}
	if strings.EqualFold(value, nativeAlias) {
		return domain.NativeAddress, true, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, false, domain.NewValidationError("%s %q is not a valid address", name, value)
	}
	addr := common.HexToAddress(value)
	if domain.IsNative(addr) {
		return domain.NativeAddress, true, nil
	}
	return addr, false, nil
}

func parseOptionalAddress(value, name string) (*common.Address, error) {
	if value == "" {
		return nil, nil
	}
	if !common.IsHexAddress(value) {
		return nil, domain.NewValidationError("%s %q is not a valid address", name, value)
	}
	addr := common.HexToAddress(value)
	return &addr, nil
}

func parseChainID(value, name string) (domain.ChainID, error) {
	if value == "" {
		return 0, domain.NewValidationError("%s is required", name)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("%s %q is not a chain id", name, value)
	}
	return domain.ChainID(id), nil
}

// parseTradeType accepts both the canonical EXACT_IN/EXACT_OUT forms and the
// camel-case aliases used by older clients.
func parseTradeType(value string) (domain.TradeType, error) {
	switch value {
	case "exactIn":
		return domain.ExactIn, nil
	case "exactOut":
		return domain.ExactOut, nil
	}
	tradeType, err := domain.ParseTradeType(value)
	if err != nil {
		return domain.ExactIn, domain.NewValidationError("%s", err.Error())
	}
	return tradeType, nil
}

func parseIntent(value string) (domain.QuoteIntent, error) {
	switch strings.ToUpper(value) {
	case "", string(domain.QuoteIntentFast):
		return domain.QuoteIntentFast, nil
	case string(domain.QuoteIntentFresh):
		return domain.QuoteIntentFresh, nil
	}
	return "", domain.NewValidationError("intent %q must be FAST or FRESH", value)
}

func parseHooksOption(value string) (domain.HooksOption, error) {
	switch strings.ToUpper(value) {
	case "", string(domain.HooksInclusive):
		return domain.HooksInclusive, nil
	case string(domain.HooksOnly):
		return domain.HooksOnly, nil
	case string(domain.NoHooks):
		return domain.NoHooks, nil
	}
	return "", domain.NewValidationError("hooksOptions %q must be HOOKS_INCLUSIVE, HOOKS_ONLY or NO_HOOKS", value)
}
