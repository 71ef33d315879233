package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/auth"
	"github.com/hamrostore/hamrostore-api/internal/order"
	"github.com/hamrostore/hamrostore-api/internal/order/dto"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	if p.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": order.ErrAdminHasNoCart.Error()})
		return
	}

	var input dto.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.uc.Checkout(c.Request.Context(), p.UserID, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": o})
}

// ListOwn handles GET /api/orders.
func (h *OrderHandler) ListOwn(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	orders, err := h.uc.ListByUser(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOwn handles GET /api/orders/:id; users may only read their own orders.
func (h *OrderHandler) GetOwn(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	o, err := h.uc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if o.UserID != p.UserID && !p.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

// ListAll handles GET /api/admin/orders.
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filters dto.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}

	orders, count, err := h.uc.ListAll(c.Request.Context(), &filters)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": count})
}

// UpdateStatus handles PATCH /api/admin/orders/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input dto.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.uc.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

// Delete handles DELETE /api/admin/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func (h *OrderHandler) respondError(c *gin.Context, err error) {
	var stockErr *order.InsufficientStockError
	var goneErr *order.ProductGoneError
	var transitionErr *order.InvalidTransitionError

	switch {
	case errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidStatus),
		errors.As(err, &stockErr),
		errors.As(err, &goneErr),
		errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("order operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
