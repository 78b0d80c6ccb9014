package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrLoginRequired is returned when no session principal is present.
	ErrLoginRequired = errors.New("login required")
	// ErrForbidden is returned when the session role or ownership does not allow the operation.
	ErrForbidden = errors.New("you're not allowed here")
	// ErrInvalidCredentials is returned on unknown username or wrong password, indistinguishably.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountNotActive is returned when credentials match but the account is not Active.
	ErrAccountNotActive = errors.New("account is inactive or suspended")
	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrAccountExists is returned when a registration insert loses a race
	// against a concurrent duplicate and the unique index fires.
	ErrAccountExists = errors.New("username or email already exists")
	// ErrInvalidRole is returned when registration requests a role outside the allowed set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrMissingFields is returned when required request fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCardNumber is returned when the card number is not 13-19 digits.
	ErrInvalidCardNumber = errors.New("invalid card number")
	// ErrInvalidCVV is returned when the CVV is not 3-4 digits.
	ErrInvalidCVV = errors.New("invalid CVV")
	// ErrInvalidExpiry is returned when the expiry is not a future MM/YY date.
	ErrInvalidExpiry = errors.New("invalid expiry date")
	// ErrInvalidAmount is returned when a charge amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrMerchantNotFound is returned when a referenced merchant does not exist.
	ErrMerchantNotFound = errors.New("merchant not found")
	// ErrCustomerNotFound is returned when a referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCardNotFound is returned when a referenced card does not exist or is inactive.
	ErrCardNotFound = errors.New("card not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unmapped is a
// store-layer failure and surfaces as a generic 500 so driver internals
// never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrLoginRequired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "LOGIN_REQUIRED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrAccountNotActive):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_NOT_ACTIVE")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrAccountExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ACCOUNT_EXISTS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidCardNumber):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CARD_NUMBER")
	case errors.Is(err, ErrInvalidCVV):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CVV")
	case errors.Is(err, ErrInvalidExpiry):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_EXPIRY")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMerchantNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MERCHANT_NOT_FOUND")
	case errors.Is(err, ErrCustomerNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CUSTOMER_NOT_FOUND")
	case errors.Is(err, ErrCardNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CARD_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
