package service

import (
	"errors"
	"fmt"

	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/internal/app/repository"
	"github.com/geekhaven/brew-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OrderItemInput is one requested line of a direct order.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

type OrderService interface {
	CreateOrder(userID uint, items []OrderItemInput) (*model.Order, error)
	CheckoutCart(userID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetAllOrders() ([]model.Order, error)
	GetOrderByID(userID uint, isAdmin bool, orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		db:          db,
	}
}

func (s *orderService) CreateOrder(userID uint, items []OrderItemInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"user_id":    userID,
		"item_count": len(items),
	})

	if len(items) == 0 {
		logger.Warn("Cannot create order: no items", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyOrder
	}

	return s.placeOrder(userID, items, false)
}

func (s *orderService) CheckoutCart(userID uint) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	items := make([]OrderItemInput, 0, len(cartItems))
	for _, cartItem := range cartItems {
		items = append(items, OrderItemInput{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
		})
	}

	return s.placeOrder(userID, items, true)
}

// placeOrder runs the whole order inside one transaction: every product row
// is locked, re-validated against current stock, snapshotted into an order
// item, and decremented. Any failure rolls the entire order back.
func (s *orderService) placeOrder(userID uint, items []OrderItemInput, clearCart bool) (*model.Order, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		total      float64
		orderItems []model.OrderItem
	)

	for _, item := range items {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during order creation", map[string]interface{}{
					"user_id":    userID,
					"product_id": item.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during order creation", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": item.ProductID,
			})
			return nil, err
		}

		if product.StockQuantity < item.Quantity {
			tx.Rollback()
			logger.Warn("Order creation failed: insufficient product stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": item.ProductID,
				"requested":  item.Quantity,
				"available":  product.StockQuantity,
			})
			return nil, ErrInsufficientStock
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(item.Quantity)

		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to update product stock", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
			})
			return nil, err
		}
	}

	order := &model.Order{
		UserID:     userID,
		Total:      total,
		Status:     model.OrderStatusPending,
		OrderItems: orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
			"total":   total,
		})
		return nil, err
	}

	if clearCart {
		if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":    userID,
		"order_id":   order.ID,
		"total":      total,
		"item_count": len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	logger.Debug("Fetching all orders", nil)

	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch all orders", err, nil)
		return nil, err
	}

	logger.Info("All orders fetched successfully", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(userID uint, isAdmin bool, orderID uint) (*model.Order, error) {
	logger.Debug("Fetching order by ID", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, err
	}

	// Non-admins only see their own orders; a mismatch reads as not found
	// so order IDs cannot be probed.
	if !isAdmin && order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	logger.Debug("Order fetched successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     orderID,
		"order_status": order.Status,
	})
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	if !model.ValidOrderStatus(status) {
		logger.Warn("Rejected unknown order status", map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return ErrInvalidOrderStatus
	}

	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found for status update", map[string]interface{}{
				"order_id": orderID,
			})
			return ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id":   orderID,
			"new_status": status,
		})
		return err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}
