// Package apperr carries the structured error taxonomy shared by every
// service edge: a machine-readable kind plus a human-readable detail.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation            Kind = "validation_failure"
	KindCustomerNotFound      Kind = "customer_not_found"
	KindMenuItemNotFound      Kind = "menu_item_not_found"
	KindOrderNotFound         Kind = "order_not_found"
	KindPaymentNotFound       Kind = "payment_not_found"
	KindInsufficientStock     Kind = "insufficient_stock"
	KindInventoryUnavailable  Kind = "inventory_unavailable"
	KindAmountMismatch        Kind = "amount_mismatch"
	KindCustomerMismatch      Kind = "customer_mismatch"
	KindDownstreamUnavailable Kind = "downstream_unavailable"
	KindPersistence           Kind = "persistence_error"
	KindConflict              Kind = "conflict"
	// KindInternal is the fallback for errors that never passed through this
	// package.
	KindInternal Kind = "internal_error"
)

type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and detail to an underlying cause. The cause stays
// reachable through errors.Is/As for callers that match on sentinels.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the taxonomy kind from an error chain.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
