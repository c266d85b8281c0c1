package api

import (
	"net/http"

	"field-sales/internal/api/middleware"
	"field-sales/internal/modules/customers"
	"field-sales/internal/modules/orders"
	"field-sales/internal/modules/payments"
	"field-sales/internal/modules/products"
	"field-sales/internal/modules/routes"
	"field-sales/internal/modules/users"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	userHandler *users.Handler,
	customerHandler *customers.Handler,
	productHandler *products.Handler,
	orderHandler *orders.Handler,
	paymentHandler *payments.Handler,
	routeHandler *routes.Handler,
	jwtSecret string,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)
	adminRequired := middleware.AdminRequired()

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Field Sales API"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", userHandler.Signup)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/activate", userHandler.ActivateAccount)
		authGroup.POST("/resend-activation", userHandler.ResendActivation)
		authGroup.POST("/reset-password", userHandler.RequestPasswordReset)
		authGroup.POST("/reset-password/confirm", userHandler.ResetPassword)
		authGroup.GET("/google/login", userHandler.GoogleLogin)
		authGroup.GET("/google/callback", userHandler.GoogleCallback)
	}

	// --- Profile Routes ---
	profileGroup := e.Group("/profile", authMiddleware)
	{
		profileGroup.GET("", userHandler.GetProfile)
		profileGroup.PUT("", userHandler.UpdateProfile)
	}

	// --- Customer Routes ---
	customerGroup := e.Group("/customers", authMiddleware)
	{
		customerGroup.POST("", customerHandler.Create)
		customerGroup.GET("", customerHandler.List)
		customerGroup.POST("/import", customerHandler.Import)
		customerGroup.GET("/export", customerHandler.Export)
		customerGroup.GET("/:customerId", customerHandler.Get)
		customerGroup.PUT("/:customerId", customerHandler.Update)
		customerGroup.PUT("/:customerId/deactivate", customerHandler.Deactivate)
		customerGroup.DELETE("/:customerId", customerHandler.Delete, adminRequired)

		// Financial views hang off the customer they belong to.
		customerGroup.GET("/:customerId/orders", orderHandler.ListCustomerOrders)
		customerGroup.GET("/:customerId/payments", paymentHandler.ListForCustomer)
		customerGroup.GET("/:customerId/balance", paymentHandler.Balance)
	}

	// --- Product Routes ---
	productGroup := e.Group("/products", authMiddleware)
	{
		productGroup.GET("", productHandler.List)
		productGroup.GET("/export", productHandler.Export)
		productGroup.GET("/:productId", productHandler.Get)
		productGroup.POST("", productHandler.Create, adminRequired)
		productGroup.PUT("/:productId", productHandler.Update, adminRequired)
		productGroup.DELETE("/:productId", productHandler.Delete, adminRequired)
	}

	// --- Order Routes ---
	orderGroup := e.Group("/orders", authMiddleware)
	{
		orderGroup.POST("", orderHandler.CreateOrder)
		orderGroup.GET("", orderHandler.ListMyOrders)
		orderGroup.GET("/:orderId", orderHandler.GetOrderDetails)
		orderGroup.PUT("/:orderId/status", orderHandler.UpdateStatus)
		orderGroup.PUT("/:orderId/cancel", orderHandler.CancelOrder)
	}

	// --- Payment Routes ---
	paymentGroup := e.Group("/payments", authMiddleware)
	{
		paymentGroup.POST("", paymentHandler.Record)
	}

	// --- Weekly Route Routes ---
	routeGroup := e.Group("/routes", authMiddleware)
	{
		routeGroup.POST("/generate", routeHandler.Generate)
		routeGroup.GET("", routeHandler.ListMyRoutes)
		routeGroup.GET("/:routeId", routeHandler.GetRoute)
		routeGroup.DELETE("/:routeId", routeHandler.DeleteRoute)
		routeGroup.PATCH("/:routeId/stops/:stopId/status", routeHandler.UpdateStopStatus)
		routeGroup.PATCH("/:routeId/stops/:stopId/check-in", routeHandler.CheckInStop)
	}

	// --- Admin Routes ---
	adminGroup := e.Group("/admin", authMiddleware, adminRequired)
	{
		adminGroup.GET("/orders", orderHandler.ListAllOrders)
		adminGroup.GET("/users", userHandler.ListUsers)
	}
}
