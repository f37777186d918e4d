package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promoarcade/snakesladders/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeAlreadyCompleted    = "ALREADY_COMPLETED"
	CodeNoRollsRemaining    = "NO_ROLLS_REMAINING"
	CodeInvalidGrantAmount  = "INVALID_GRANT_AMOUNT"
	CodeNoGrantHistory      = "NO_GRANT_HISTORY"
	CodePrizeConfigNotFound = "PRIZE_CONFIG_NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeIncorrectPassword   = "INCORRECT_PASSWORD"
	CodePasswordTooWeak     = "PASSWORD_TOO_WEAK"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrAlreadyCompleted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyCompleted, "Game is already completed"}}
	case errors.Is(err, model.ErrNoRollsRemaining):
		return &httpError{http.StatusConflict, APIError{CodeNoRollsRemaining, "No rolls remaining"}}
	case errors.Is(err, model.ErrInvalidGrantAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGrantAmount, "Grant amount must be non-zero"}}
	case errors.Is(err, model.ErrNoGrantHistory):
		return &httpError{http.StatusNotFound, APIError{CodeNoGrantHistory, "No grant history for area"}}
	case errors.Is(err, model.ErrPrizeConfigNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePrizeConfigNotFound, "Prize config not found"}}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid credentials"}}
	case errors.Is(err, model.ErrIncorrectPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeIncorrectPassword, "Current password is incorrect"}}
	case errors.Is(err, model.ErrPasswordTooWeak):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooWeak, "Password does not meet minimum length"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
