package order

import (
	"context"

	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/order/dto"
)

type UseCase interface {
	// Checkout turns the user's cart into a pending order: validate, price,
	// then atomically decrement stock, persist the order and clear the cart.
	Checkout(ctx context.Context, userID string, input *dto.CheckoutInput) (*model.Order, error)

	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// UpdateStatus applies the status state machine; transitioning into
	// canceled restores stock exactly once.
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)
	// DeleteOrder removes the order, restocking first unless it was already
	// canceled.
	DeleteOrder(ctx context.Context, id string) error
	// MarkPaid records gateway payment confirmation as a later, separate
	// state change.
	MarkPaid(ctx context.Context, id string) (*model.Order, error)
}

// EventPublisher pushes order events to the broker. Publishing is
// best-effort from the workflow's perspective.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}
