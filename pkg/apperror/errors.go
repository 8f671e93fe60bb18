package apperror

import (
	"fmt"
	"net/http"
)

// Kind classifies a failure independently of the transport that reports it.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindTooManyRequests
)

var kindStatus = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindBadRequest:      http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindNotFound:        http.StatusNotFound,
	KindTooManyRequests: http.StatusTooManyRequests,
}

var kindLabel = map[Kind]string{
	KindInternal:        "Internal Server Error",
	KindBadRequest:      "Bad Request",
	KindUnauthorized:    "Unauthorized",
	KindNotFound:        "Not Found",
	KindTooManyRequests: "Too Many Requests",
}

// Status returns the HTTP status code for a kind. Unknown kinds map to 500.
func Status(k Kind) int {
	if s, ok := kindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// String returns the short human label for a kind.
func (k Kind) String() string {
	if l, ok := kindLabel[k]; ok {
		return l
	}
	return kindLabel[KindInternal]
}

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Kind      Kind
	Code      string
	Class     string // overrides Kind.String() in the "error" field
	Title     string
	Message   string
	Details   any
	DebugInfo string
	Err       error // wrapped internal error, not exposed to the client
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus is shorthand for Status(e.Kind).
func (e *AppError) HTTPStatus() int {
	return Status(e.Kind)
}

// Label is the value rendered in the "error" field.
func (e *AppError) Label() string {
	if e.Class != "" {
		return e.Class
	}
	return e.Kind.String()
}

// New creates a new AppError.
func New(kind Kind, code string, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(kind Kind, code string, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithDebugInfo returns a copy of e carrying a debug hint.
func (e *AppError) WithDebugInfo(info string) *AppError {
	cp := *e
	cp.DebugInfo = info
	return &cp
}

// ---- Authentication & Authorization ----

const (
	titleAuthentication = "Authentication Error"
	titleAuthorization  = "Authorization Error"
	classAccessDenied   = "Access Denied"
)

func ErrMissingAuthorization() *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    "missing_authorization_header",
		Class:   classAccessDenied,
		Title:   titleAuthentication,
		Message: "Authorization header missing or invalid",
		Details: "Bearer token required",
	}
}

// ErrInvalidToken reports a token that failed verification. details may be
// nil, a string or a structured diagnostic value.
func ErrInvalidToken(details any) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    "invalid_token",
		Class:   classAccessDenied,
		Title:   titleAuthentication,
		Message: "Invalid or expired token",
		Details: details,
	}
}

func ErrInsufficientPermissions() *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    "insufficient_permissions",
		Class:   classAccessDenied,
		Title:   titleAuthorization,
		Message: "Insufficient permissions",
		Details: "You are not authorized to access this endpoint",
	}
}

func ErrAuthenticationRequired() *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    "authentication_required",
		Class:   classAccessDenied,
		Title:   titleAuthentication,
		Message: "User not authenticated",
		Details: "Authentication required",
	}
}

func ErrGenericAuthentication() *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    "generic_authentication_error",
		Class:   classAccessDenied,
		Title:   titleAuthentication,
		Message: "Authorization Access",
		Details: "Something went wrong with authentication",
	}
}

// ---- Routing ----

func ErrEndpointNotFound() *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    "generic_authentication_error",
		Class:   "Endpoint Not Found",
		Title:   titleAuthentication,
		Message: "Access Denied",
		Details: "Something went wrong with authentication",
	}
}

// ---- Wallet ----

func ErrWalletExists(userID int64) *AppError {
	return New(KindBadRequest, "wallet_exists", fmt.Sprintf("Wallet already exists for user ID: %d", userID))
}

func ErrInvalidUserID() *AppError {
	return New(KindBadRequest, "invalid_user_id", "User ID must be positive")
}

func ErrInvalidPin() *AppError {
	return New(KindBadRequest, "invalid_pin", "PIN must be at least 4 digits")
}

func ErrWalletNotFound() *AppError {
	return New(KindNotFound, "wallet_not_found", "Wallet not found")
}

// ---- Rate Limiting ----

func ErrRateLimitExceeded() *AppError {
	return New(KindTooManyRequests, "rate_limit_exceeded", "Rate limit exceeded")
}

// ---- System ----

// InternalError wraps an internal error as a generic 500.
func InternalError(err error) *AppError {
	return Wrap(KindInternal, "internal_error", "Internal server error", err)
}

// Validation returns a 400 for malformed input.
func Validation(message string) *AppError {
	return New(KindBadRequest, "validation_error", message)
}
