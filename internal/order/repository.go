package order

import (
	"context"
	"time"

	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/order/dto"
)

// Repository owns the order rows and the two multi-write batches of the
// checkout and cancellation workflows. Each batch commits atomically or not
// at all.
type Repository interface {
	// CreateWithCartClear runs the checkout batch in one transaction:
	// conditionally decrement stock for every line item, insert the order
	// and its items, and clear the user's cart. A failed stock decrement
	// aborts the whole batch with an InsufficientStockError.
	CreateWithCartClear(ctx context.Context, o *model.Order) error

	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	FindByUser(ctx context.Context, userID string) ([]model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	UpdateStatus(ctx context.Context, id, status string) error
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error

	// CancelWithRestock restores stock for every item and flips the status
	// to canceled in one transaction.
	CancelWithRestock(ctx context.Context, o *model.Order) error
	// DeleteWithRestock restores stock for every item and deletes the order
	// in one transaction. Used for orders not already canceled.
	DeleteWithRestock(ctx context.Context, o *model.Order) error
	Delete(ctx context.Context, id string) error
}
