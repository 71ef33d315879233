package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/auth"
	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/order"
)

var decimalHundred = decimal.NewFromInt(100)

// PaymentHandler creates Stripe PaymentIntents for card orders. The gateway
// redirect/callback flow stays outside the checkout's atomic core: an order
// exists before payment, and confirmation lands later as MarkPaid.
type PaymentHandler struct {
	orders   order.UseCase
	sc       *client.API
	currency string
	logger   *zap.Logger
}

func NewPaymentHandler(orders order.UseCase, secretKey, currency string, log *zap.Logger) *PaymentHandler {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &PaymentHandler{
		orders:   orders,
		sc:       sc,
		currency: currency,
		logger:   log,
	}
}

// CreateIntent handles POST /api/payments/:orderID/intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)

	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to load order for payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if o.UserID != p.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}
	if o.PaymentMethod == model.PaymentMethodCOD {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cash-on-delivery orders are not paid online"})
		return
	}
	if o.PaidAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order already paid"})
		return
	}

	// Stripe amounts are in the smallest currency unit.
	amount := o.GrandTotal.Mul(decimalHundred).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(h.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", o.ID)

	pi, err := h.sc.PaymentIntents.New(params)
	if err != nil {
		h.logger.Error("failed to create payment intent",
			zap.String("order_id", o.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment gateway error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"client_secret": pi.ClientSecret})
}

// Confirm handles POST /api/payments/:orderID/confirm, recording gateway
// success as a later state change on the order.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)

	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to load order for confirmation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if o.UserID != p.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}

	updated, err := h.orders.MarkPaid(c.Request.Context(), o.ID)
	if err != nil {
		if errors.Is(err, order.ErrNotPayable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to mark order paid", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": updated})
}
