package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("order not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrAdminHasNoCart       = errors.New("the administrative account cannot place orders")
	ErrNotPayable           = errors.New("order is not payable")
)

// ProductGoneError reports a cart entry whose product no longer exists. The
// whole checkout fails; no partial order is created.
type ProductGoneError struct {
	ProductID string
}

func (e *ProductGoneError) Error() string {
	return fmt.Sprintf("product %s is no longer available", e.ProductID)
}

// InsufficientStockError names the offending product and the live quantities
// so the caller sees exactly why the checkout was rejected.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.Name, e.Available, e.Requested)
}

// InvalidTransitionError rejects a status change the state machine does not
// allow. Pending is the only non-terminal status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}
