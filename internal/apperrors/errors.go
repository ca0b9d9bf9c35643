package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation cannot proceed because other data references the resource.
var ErrConflict = errors.New("conflicting resource state")

// ErrUnauthorized indicates a missing, invalid or expired credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates a valid credential with insufficient scope (wrong company or role).
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token has passed its expiry time.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrPinNotSet indicates the user has no PIN configured.
var ErrPinNotSet = errors.New("PIN code is not configured")

// ErrPinMismatch indicates the supplied PIN did not verify against the stored hash.
var ErrPinMismatch = errors.New("invalid PIN code")

// ErrInsufficientStock indicates a TAKE transaction would drive product stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInternal indicates an unexpected failure that must not leak detail to the client.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish code and a message,
// used by the repository layer where a sentinel alone loses too much context.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// InsufficientStockError carries the user-facing payload for a rejected TAKE:
// the offending product, its name, and the quantity currently available.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   decimal.Decimal
	Unit        string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %s %s", e.ProductName, e.Available.String(), e.Unit)
}

// Unwrap lets errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
