package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/event"
	"github.com/hamrostore/hamrostore-api/internal/pkg/broker"
)

// Sender delivers a single mail. Failures are logged by the listener and
// never propagate back to the workflow that emitted the event.
type Sender interface {
	Send(to, subject, body string) error
}

type NotificationListener struct {
	consumer *broker.KafkaConsumer
	sender   Sender
	logger   *zap.Logger
}

func NewNotificationListener(consumer *broker.KafkaConsumer, sender Sender, log *zap.Logger) *NotificationListener {
	return &NotificationListener{
		consumer: consumer,
		sender:   sender,
		logger:   log,
	}
}

func (l *NotificationListener) Start(ctx context.Context) {
	l.logger.Info("Starting notification listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping notification listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(msg.Value)
		}
	}
}

func (l *NotificationListener) processMessage(value []byte) {
	var evt event.OrderEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("Failed to unmarshal order event", zap.Error(err))
		return
	}

	var subject, body string
	switch evt.EventType {
	case event.TypeOrderCreated:
		subject = fmt.Sprintf("Order confirmation #%s", shortID(evt.Payload.OrderID))
		body = confirmationBody(&evt.Payload)
	case event.TypeOrderStatusChanged:
		subject = fmt.Sprintf("Order #%s is now %s", shortID(evt.Payload.OrderID), evt.Payload.Status)
		body = statusBody(&evt.Payload)
	default:
		return
	}

	if err := l.sender.Send(evt.Payload.CustomerEmail, subject, body); err != nil {
		l.logger.Error("Failed to send order notification",
			zap.String("order_id", evt.Payload.OrderID),
			zap.String("event_type", evt.EventType),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("Sent order notification",
		zap.String("order_id", evt.Payload.OrderID),
		zap.String("event_type", evt.EventType),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func confirmationBody(p *event.OrderPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order! Here is what you bought:\n\n", p.CustomerName)
	for _, item := range p.Items {
		fmt.Fprintf(&b, "  %s x%d @ %s\n", item.Name, item.Quantity, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal:     %s\n", p.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Delivery fee: %s (%s)\n", p.DeliveryFee.StringFixed(2), p.ShippingCity)
	fmt.Fprintf(&b, "Total:        %s\n", p.GrandTotal.StringFixed(2))
	fmt.Fprintf(&b, "\nWe'll let you know when your order is on its way.\n")
	return b.String()
}

func statusBody(p *event.OrderPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour order #%s is now %s.\n", p.CustomerName, shortID(p.OrderID), p.Status)
	if p.Status == "canceled" {
		fmt.Fprintf(&b, "Any reserved items have been returned to stock.\n")
	}
	return b.String()
}
