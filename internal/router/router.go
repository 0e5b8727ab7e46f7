package router

import (
	"github.com/geekhaven/brew-backend/config"
	"github.com/geekhaven/brew-backend/internal/app/controller"
	"github.com/geekhaven/brew-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController        *controller.AuthController
	productController     *controller.ProductController
	cartController        *controller.CartController
	orderController       *controller.OrderController
	reservationController *controller.ReservationController
	uploadController      *controller.UploadController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	reservationController *controller.ReservationController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		productController:     productController,
		cartController:        cartController,
		orderController:       orderController,
		reservationController: reservationController,
		uploadController:      uploadController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GeekHaven Brew API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProductByID)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/checkout", r.orderController.Checkout)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/all",
				r.authMiddleware.RequireRole("admin"),
				r.orderController.GetAllOrders,
			)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("", r.orderController.CreateOrder)
			orders.PUT("/:id/status",
				r.authMiddleware.RequireRole("admin"),
				r.orderController.UpdateOrderStatus,
			)
		}

		reservations := v1.Group("/reservations")
		reservations.Use(r.authMiddleware.Authenticate())
		{
			reservations.GET("", r.reservationController.GetReservations)
			reservations.GET("/all",
				r.authMiddleware.RequireRole("admin"),
				r.reservationController.GetAllReservations,
			)
			reservations.POST("", r.reservationController.CreateReservation)
			reservations.PUT("/:id", r.reservationController.UpdateReservation)
			reservations.DELETE("/:id", r.reservationController.CancelReservation)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
