package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindInvalidID
	KindNotFound
	KindInsufficientStock
	KindEmptyCart
	KindStockValidationFailed
	KindDuplicateKey
	KindSchemaValidation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindInvalidID:
		return "InvalidId"
	case KindNotFound:
		return "NotFound"
	case KindInsufficientStock:
		return "InsufficientStock"
	case KindEmptyCart:
		return "EmptyCart"
	case KindStockValidationFailed:
		return "StockValidationFailed"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindSchemaValidation:
		return "SchemaValidation"
	default:
		return "Internal"
	}
}

// HTTPStatus returns the response status used for errors of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Error is an error that carries a kind, a client facing message and,
// optionally, an itemized list of problems.
type Error struct {
	Kind    Kind
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func InvalidInput(errs []string) *Error {
	return &Error{Kind: KindInvalidInput, Message: "Validation error", Errors: errs}
}

func InvalidID(msg string) *Error {
	return New(KindInvalidID, msg)
}

func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

func InsufficientStock(msg string) *Error {
	return New(KindInsufficientStock, msg)
}

func EmptyCart() *Error {
	return New(KindEmptyCart, "Cart is empty")
}

func StockValidationFailed(errs []string) *Error {
	return &Error{Kind: KindStockValidationFailed, Message: "Stock validation failed", Errors: errs}
}

func DuplicateKey(err error) *Error {
	return &Error{Kind: KindDuplicateKey, Message: "Duplicate field value entered", Err: err}
}

func SchemaValidation(errs []string, err error) *Error {
	return &Error{Kind: KindSchemaValidation, Message: "Validation Error", Errors: errs, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf reports the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
