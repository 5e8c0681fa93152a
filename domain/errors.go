package domain

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInternalServerError will throw if any internal server error happens
	ErrInternalServerError = errors.New("internal server error")
	// ErrNoRouteFound will throw if no valid route survived the pipeline
	ErrNoRouteFound = errors.New("no route found")
	// ErrBadParamInput will throw if the given request params are not valid
	ErrBadParamInput = errors.New("given param is not valid")
)

// ValidationError is the 400-class error for request validation failures.
// The message is surfaced verbatim to the client.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NewValidationError constructs a validation error with a formatted message.
func NewValidationError(format string, args ...interface{}) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedChainError indicates a chain id outside the chain table.
type UnsupportedChainError struct {
	Chain ChainID
}

func (e UnsupportedChainError) Error() string {
	return fmt.Sprintf("unsupported chain id %d", e.Chain)
}

// TokenNotFoundError indicates a token whose metadata could not be resolved.
type TokenNotFoundError struct {
	Chain ChainID
	Token common.Address
}

func (e TokenNotFoundError) Error() string {
	return fmt.Sprintf("token %s not found on chain %d", e.Token, e.Chain)
}

// GetStatusCode returns the HTTP status code for the given error.
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var validationErr ValidationError
	var unsupportedChainErr UnsupportedChainError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &unsupportedChainErr), errors.Is(err, ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoRouteFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represents the response error struct.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
