// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"anha/internal/delivery/http/middleware"
	"anha/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	UploadHandler  *handler.UploadHandler
	GeoHandler     *handler.GeoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	uploadHandler  *handler.UploadHandler
	geoHandler     *handler.GeoHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		uploadHandler:  params.UploadHandler,
		geoHandler:     params.GeoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Profile routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
	}

	// Catalog routes; reads are public, writes are admin-only
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.GET("/barcode/:code", r.productHandler.GetByBarcode)
	}
	productAdminGroup := e.Group("/products")
	productAdminGroup.Use(r.authMiddleware.Authenticate)
	productAdminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		productAdminGroup.POST("", r.productHandler.CreateSample)
		productAdminGroup.PUT("/:id", r.productHandler.Update)
		productAdminGroup.DELETE("/:id", r.productHandler.Delete)
	}

	// Cart routes, always scoped to the caller
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	// Order routes
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Place)
		orderGroup.GET("/mine", r.orderHandler.ListMine)
		orderGroup.GET("/:id", r.orderHandler.Get)
		orderGroup.GET("/:id/payment-qr", r.orderHandler.PaymentQR)
		orderGroup.POST("/:id/verify-payment", r.orderHandler.VerifyPayment)
	}
	orderAdminGroup := e.Group("/orders")
	orderAdminGroup.Use(r.authMiddleware.Authenticate)
	orderAdminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		orderAdminGroup.GET("", r.orderHandler.ListAll)
		orderAdminGroup.PUT("/:id/pay", r.orderHandler.MarkPaid)
		orderAdminGroup.PUT("/:id/deliver", r.orderHandler.MarkDelivered)
		orderAdminGroup.DELETE("/:id", r.orderHandler.Delete)
	}

	// Image upload, admin-only
	uploadGroup := e.Group("/upload")
	uploadGroup.Use(r.authMiddleware.Authenticate)
	uploadGroup.Use(r.authMiddleware.RequireAdmin)
	{
		uploadGroup.POST("", r.uploadHandler.Upload)
	}

	// Address cascade for the checkout form
	geoGroup := e.Group("/geo")
	{
		geoGroup.GET("/provinces", r.geoHandler.Provinces)
		geoGroup.GET("/provinces/:code/districts", r.geoHandler.Districts)
		geoGroup.GET("/districts/:code/wards", r.geoHandler.Wards)
	}
}
