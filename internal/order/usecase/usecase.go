package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/config"
	"github.com/hamrostore/hamrostore-api/internal/event"
	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/order"
	"github.com/hamrostore/hamrostore-api/internal/order/dto"
	"github.com/hamrostore/hamrostore-api/internal/product"
	"github.com/hamrostore/hamrostore-api/internal/user"
)

type orderUseCase struct {
	repo     order.Repository
	users    user.Repository
	products product.Repository
	events   order.EventPublisher
	shipping config.ShippingConfig
	logger   *zap.Logger
}

func NewOrderUseCase(
	repo order.Repository,
	users user.Repository,
	products product.Repository,
	events order.EventPublisher,
	shipping config.ShippingConfig,
	log *zap.Logger,
) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		users:    users,
		products: products,
		events:   events,
		shipping: shipping,
		logger:   log,
	}
}

func (uc *orderUseCase) Checkout(ctx context.Context, userID string, input *dto.CheckoutInput) (*model.Order, error) {
	if !model.ValidPaymentMethod(input.PaymentMethod) {
		return nil, order.ErrInvalidPaymentMethod
	}

	entries, err := uc.users.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, order.ErrEmptyCart
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := uc.products.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Pre-flight validation gives the caller a precise rejection. The
	// conditional decrement inside the transaction remains the authority
	// under concurrent checkouts.
	for _, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			return nil, &order.ProductGoneError{ProductID: e.ProductID}
		}
		if !p.InStock(e.Quantity) {
			return nil, &order.InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Available: p.StockQuantity,
				Requested: e.Quantity,
			}
		}
	}

	totals, err := order.ComputeTotals(entries, func(id string) (decimal.Decimal, bool) {
		p, ok := byID[id]
		if !ok {
			return decimal.Zero, false
		}
		return p.Price, true
	}, input.Address.City, uc.shipping.CityFees, uc.shipping.DefaultFee)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	items := make([]model.OrderItem, 0, len(entries))
	for _, e := range entries {
		p := byID[e.ProductID]
		items = append(items, model.OrderItem{
			OrderID:   orderID,
			ProductID: p.ID,
			Quantity:  e.Quantity,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			UnitPrice: p.Price,
		})
	}

	o := &model.Order{
		ID:             orderID,
		UserID:         userID,
		Status:         model.OrderStatusPending,
		Subtotal:       totals.Subtotal,
		DeliveryFee:    totals.DeliveryFee,
		GrandTotal:     totals.GrandTotal,
		PaymentMethod:  input.PaymentMethod,
		CustomerName:   input.Name,
		CustomerEmail:  input.Email,
		ShippingStreet: input.Address.Street,
		ShippingCity:   input.Address.City,
		CreatedAt:      time.Now(),
		Items:          items,
	}

	if err := uc.repo.CreateWithCartClear(ctx, o); err != nil {
		return nil, err
	}

	uc.publish(ctx, event.TypeOrderCreated, o, "")

	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return uc.repo.FindByUser(ctx, userID)
}

func (uc *orderUseCase) ListAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, order.ErrInvalidStatus
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrNotFound
	}

	// Same-status updates are no-ops; in particular a second cancellation
	// must not restock twice.
	if o.Status == status {
		return o, nil
	}
	if o.Status != model.OrderStatusPending {
		return nil, &order.InvalidTransitionError{From: o.Status, To: status}
	}

	previous := o.Status
	if status == model.OrderStatusCanceled {
		if err := uc.repo.CancelWithRestock(ctx, o); err != nil {
			return nil, err
		}
	} else {
		if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
	}
	o.Status = status

	uc.publish(ctx, event.TypeOrderStatusChanged, o, previous)

	return o, nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id string) error {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return order.ErrNotFound
	}

	// Canceled orders already had their stock restored; restocking again
	// would double-credit it.
	if o.Status == model.OrderStatusCanceled {
		return uc.repo.Delete(ctx, id)
	}
	return uc.repo.DeleteWithRestock(ctx, o)
}

func (uc *orderUseCase) MarkPaid(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrNotFound
	}
	if o.PaymentMethod == model.PaymentMethodCOD || o.Status == model.OrderStatusCanceled {
		return nil, order.ErrNotPayable
	}

	now := time.Now()
	if err := uc.repo.MarkPaid(ctx, id, now); err != nil {
		return nil, err
	}
	o.PaidAt = &now
	return o, nil
}

// publish emits an order event; failures are logged and never surfaced to
// the workflow that triggered them.
func (uc *orderUseCase) publish(ctx context.Context, eventType string, o *model.Order, previousStatus string) {
	if uc.events == nil {
		return
	}

	items := make([]event.ItemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, event.ItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	evt := event.OrderEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		Payload: event.OrderPayload{
			OrderID:        o.ID,
			UserID:         o.UserID,
			Status:         o.Status,
			PreviousStatus: previousStatus,
			CustomerName:   o.CustomerName,
			CustomerEmail:  o.CustomerEmail,
			ShippingCity:   o.ShippingCity,
			Subtotal:       o.Subtotal,
			DeliveryFee:    o.DeliveryFee,
			GrandTotal:     o.GrandTotal,
			Items:          items,
		},
	}

	data, err := json.Marshal(evt)
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}
	if err := uc.events.Publish(ctx, []byte(o.ID), data); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_id", o.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
