package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// InvalidStateError means the operation is not permitted in the
// entity's current lifecycle state.
type InvalidStateError struct {
	Msg string
}

func (e InvalidStateError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "operation not permitted in current state"
}

type InsufficientStockError struct {
	Available int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d items left in stock", e.Available)
}

// MissingPaymentRecordError means a refund was requested for an order
// that has no stored payment reference.
type MissingPaymentRecordError struct{}

func (e MissingPaymentRecordError) Error() string {
	return "no payment record found to refund"
}

// RefundFailedError carries the gateway's non-success refund status.
type RefundFailedError struct {
	Status string
}

func (e RefundFailedError) Error() string {
	return fmt.Sprintf("refund failed: %s", e.Status)
}

type PermissionDeniedError struct {
	Msg string
}

func (e PermissionDeniedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "permission denied"
}

// GatewayError wraps a payment processor or network failure.
type GatewayError struct {
	Err error
}

func (e GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway error: %v", e.Err)
	}
	return "payment gateway error"
}

func (e GatewayError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInvalidState(err error) bool {
	var target InvalidStateError
	return errors.As(err, &target)
}

func IsInsufficientStock(err error) bool {
	var target InsufficientStockError
	return errors.As(err, &target)
}

func IsMissingPaymentRecord(err error) bool {
	var target MissingPaymentRecordError
	return errors.As(err, &target)
}

func IsRefundFailed(err error) bool {
	var target RefundFailedError
	return errors.As(err, &target)
}

func IsPermissionDenied(err error) bool {
	var target PermissionDeniedError
	return errors.As(err, &target)
}

func IsGateway(err error) bool {
	var target GatewayError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}
