package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/auth"
	"github.com/hamrostore/hamrostore-api/internal/user"
	"github.com/hamrostore/hamrostore-api/internal/user/dto"
)

type UserHandler struct {
	uc     user.UseCase
	logger *zap.Logger
}

func NewUserHandler(uc user.UseCase, log *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: log}
}

// Register handles POST /api/auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.uc.Register(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// Login handles POST /api/auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// GetCart handles GET /api/cart.
func (h *UserHandler) GetCart(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	items, err := h.uc.GetCart(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": items})
}

// AddCartItem handles POST /api/cart.
func (h *UserHandler) AddCartItem(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var input dto.CartMutationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	if err := h.uc.AddCartItem(c.Request.Context(), p.UserID, input.ProductID, input.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item added to cart"})
}

// UpdateCartItem handles PUT /api/cart.
func (h *UserHandler) UpdateCartItem(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var input dto.CartMutationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.uc.UpdateCartItem(c.Request.Context(), p.UserID, input.ProductID, input.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

// RemoveCartItem handles DELETE /api/cart/:productID.
func (h *UserHandler) RemoveCartItem(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	if err := h.uc.RemoveCartItem(c.Request.Context(), p.UserID, c.Param("productID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

// ToggleWishlist handles POST /api/wishlist/:productID.
func (h *UserHandler) ToggleWishlist(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	added, err := h.uc.ToggleWishlist(c.Request.Context(), p.UserID, c.Param("productID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlisted": added})
}

// GetWishlist handles GET /api/wishlist.
func (h *UserHandler) GetWishlist(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	products, err := h.uc.GetWishlist(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": products})
}

// ListUsers handles GET /api/admin/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.uc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrUsernameTaken), errors.Is(err, user.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, user.ErrInvalidQuantity),
		errors.Is(err, user.ErrQuantityExceeds):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.logger.Error("user operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
