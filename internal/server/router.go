// Package server assembles the gin engine and route table.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/auth"
	orderhandler "github.com/hamrostore/hamrostore-api/internal/order/handler"
	paymenthandler "github.com/hamrostore/hamrostore-api/internal/payment/handler"
	producthandler "github.com/hamrostore/hamrostore-api/internal/product/handler"
	userhandler "github.com/hamrostore/hamrostore-api/internal/user/handler"
)

type Handlers struct {
	Products *producthandler.ProductHandler
	Users    *userhandler.UserHandler
	Orders   *orderhandler.OrderHandler
	Payments *paymenthandler.PaymentHandler
}

func NewRouter(appEnv string, log *zap.Logger, jwt *auth.JWTManager, h Handlers) *gin.Engine {
	if appEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Users.Register)
		api.POST("/auth/login", h.Users.Login)

		api.GET("/products", h.Products.List)
		api.GET("/products/:slug", h.Products.GetBySlug)
	}

	authed := api.Group("")
	authed.Use(auth.RequireAuth(jwt))
	{
		authed.GET("/cart", h.Users.GetCart)
		authed.POST("/cart", h.Users.AddCartItem)
		authed.PUT("/cart", h.Users.UpdateCartItem)
		authed.DELETE("/cart/:productID", h.Users.RemoveCartItem)

		authed.GET("/wishlist", h.Users.GetWishlist)
		authed.POST("/wishlist/:productID", h.Users.ToggleWishlist)

		authed.POST("/orders", h.Orders.Checkout)
		authed.GET("/orders", h.Orders.ListOwn)
		authed.GET("/orders/:id", h.Orders.GetOwn)

		authed.POST("/payments/:orderID/intent", h.Payments.CreateIntent)
		authed.POST("/payments/:orderID/confirm", h.Payments.Confirm)
	}

	admin := api.Group("/admin")
	admin.Use(auth.RequireAuth(jwt), auth.RequireAdmin())
	{
		admin.POST("/products", h.Products.Create)
		admin.PUT("/products/:id", h.Products.Update)
		admin.DELETE("/products/:id", h.Products.Delete)

		admin.GET("/orders", h.Orders.ListAll)
		admin.PATCH("/orders/:id", h.Orders.UpdateStatus)
		admin.DELETE("/orders/:id", h.Orders.Delete)

		admin.GET("/users", h.Users.ListUsers)
		admin.DELETE("/users/:id", h.Users.DeleteUser)
	}

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
