package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/internal/app/service"
	"github.com/geekhaven/brew-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

func isAdminRequest(c *gin.Context) bool {
	role, _ := middleware.GetUserRole(c)
	return role == model.RoleAdmin
}

// GetOrders returns user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to orders", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	log.Info("Orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetAllOrders returns every order (Admin only)
// GET /api/v1/orders/all
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		log.Error("Failed to fetch all orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	log.Info("All orders fetched successfully", map[string]interface{}{
		"count": len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns order by ID
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to order", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"user_id":  userID,
			"order_id": idStr,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, isAdminRequest(c), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch order",
		})
		return
	}

	log.Info("Order fetched successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// CreateOrder creates a new order from an explicit item list
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create order", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Creating order", map[string]interface{}{
		"user_id":    userID,
		"item_count": len(req.Items),
	})

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := ctrl.orderService.CreateOrder(userID, items)
	if err != nil {
		ctrl.respondOrderError(c, userID, err)
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
		"total":    order.Total,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// Checkout converts the user's cart into an order
// POST /api/v1/cart/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to checkout", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	log.Debug("Checking out cart", map[string]interface{}{
		"user_id": userID,
	})

	order, err := ctrl.orderService.CheckoutCart(userID)
	if err != nil {
		ctrl.respondOrderError(c, userID, err)
		return
	}

	log.Info("Cart checked out successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
		"total":    order.Total,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (ctrl *OrderController) respondOrderError(c *gin.Context, userID uint, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		log.Warn("Order creation failed: empty cart", map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
	case errors.Is(err, service.ErrEmptyOrder):
		log.Warn("Order creation failed: no items", map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order must contain at least one item",
		})
	case errors.Is(err, service.ErrInsufficientStock):
		log.Warn("Order creation failed: insufficient stock", map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Insufficient stock for one or more items",
		})
	case errors.Is(err, service.ErrProductNotFound):
		log.Warn("Order creation failed: product not found", map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusNotFound, gin.H{
			"error": "One or more products are unavailable",
		})
	default:
		log.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
	}
}

// UpdateOrderStatus updates order status (Admin only)
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"order_id": idStr,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update order status request", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Updating order status", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})

	err = ctrl.orderService.UpdateOrderStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found for status update", map[string]interface{}{
				"order_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			log.Warn("Invalid order status", map[string]interface{}{
				"order_id": id,
				"status":   req.Status,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid order status",
			})
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   req.Status,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update order status",
		})
		return
	}

	log.Info("Order status updated successfully", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
	})
}
