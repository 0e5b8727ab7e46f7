package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geekhaven/brew-backend/internal/app/controller"
	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/internal/app/repository"
	"github.com/geekhaven/brew-backend/internal/app/service"
	"github.com/geekhaven/brew-backend/internal/db"
	"github.com/geekhaven/brew-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService service.AuthService
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	// Setup database
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	// Setup repositories
	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	reservationRepo := repository.NewReservationRepository(testDB)

	// Setup services
	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, testDB)
	reservationService := service.NewReservationService(reservationRepo)

	// Setup controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	reservationController := controller.NewReservationController(reservationService)

	// Setup middleware
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	// Setup router
	router := gin.New()

	// Auth routes
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware.Authenticate(), authController.GetMe)
	}

	// Product routes
	products := router.Group("/api/v1/products")
	{
		products.GET("", productController.GetProducts)
		products.GET("/:id", productController.GetProductByID)
		products.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), productController.CreateProduct)
	}

	// Cart routes
	cart := router.Group("/api/v1/cart")
	cart.Use(authMiddleware.Authenticate())
	{
		cart.GET("", cartController.GetCart)
		cart.POST("", cartController.AddToCart)
		cart.PUT("/:id", cartController.UpdateCartItem)
		cart.DELETE("/:id", cartController.RemoveFromCart)
		cart.POST("/checkout", orderController.Checkout)
	}

	// Order routes
	orders := router.Group("/api/v1/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.GET("", orderController.GetOrders)
		orders.GET("/:id", orderController.GetOrderByID)
		orders.POST("", orderController.CreateOrder)
	}

	// Reservation routes
	reservations := router.Group("/api/v1/reservations")
	reservations.Use(authMiddleware.Authenticate())
	{
		reservations.GET("", reservationController.GetReservations)
		reservations.POST("", reservationController.CreateReservation)
		reservations.DELETE("/:id", reservationController.CancelReservation)
	}

	return &TestServer{
		Router:      router,
		DB:          testDB,
		AuthService: authService,
	}
}

func registerTestUser(t *testing.T, ts *TestServer, email, name string) string {
	registerReq := map[string]string{
		"email":    email,
		"password": "password123",
		"name":     name,
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var registerResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerResp))
	tokens := registerResp["tokens"].(map[string]interface{})
	return tokens["access_token"].(string)
}

func TestCompleteOrderJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// 1. Register a new customer
	t.Log("Step 1: Register user")
	accessToken := registerTestUser(t, ts, "customer@example.com", "Test Customer")

	// 2. Seed the menu directly in the DB
	t.Log("Step 2: Seed menu")
	product := &model.Product{
		Name:          "Flat White",
		Description:   "Double shot with silky milk",
		Price:         4.75,
		Category:      model.CategoryCoffee,
		StockQuantity: 10,
		ImageURL:      "https://example.com/flat-white.jpg",
	}
	ts.DB.Create(product)

	// 3. Browse the catalog
	t.Log("Step 3: Browse products")
	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	w := httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var productsResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &productsResp)
	assert.NotNil(t, productsResp["products"])

	// 4. Add product to cart
	t.Log("Step 4: Add to cart")
	addToCartReq := map[string]interface{}{
		"product_id": product.ID,
		"quantity":   2,
	}
	body, _ := json.Marshal(addToCartReq)
	req = httptest.NewRequest("POST", "/api/v1/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// 5. View cart
	t.Log("Step 5: View cart")
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var cartResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &cartResp)
	cartItems := cartResp["cart_items"].([]interface{})
	assert.Len(t, cartItems, 1)
	assert.Equal(t, 9.50, cartResp["total"])

	// 6. Checkout the cart
	t.Log("Step 6: Checkout")
	req = httptest.NewRequest("POST", "/api/v1/cart/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var orderResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &orderResp)
	order := orderResp["order"].(map[string]interface{})
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, 9.50, order["total"])

	// 7. View order history
	t.Log("Step 7: View order history")
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var ordersResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &ordersResp)
	orders := ordersResp["orders"].([]interface{})
	assert.Len(t, orders, 1)

	// 8. Verify cart is empty after checkout
	t.Log("Step 8: Verify cart is empty")
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	json.Unmarshal(w.Body.Bytes(), &cartResp)
	cartItems = cartResp["cart_items"].([]interface{})
	assert.Len(t, cartItems, 0)

	// 9. Verify stock decreased
	t.Log("Step 9: Verify stock decreased")
	var updatedProduct model.Product
	ts.DB.First(&updatedProduct, product.ID)
	assert.Equal(t, 8, updatedProduct.StockQuantity) // 10 - 2 = 8
}

func TestReservationJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	accessToken := registerTestUser(t, ts, "guest@example.com", "Test Guest")

	// Book a table
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	createReq := map[string]interface{}{
		"date":         date,
		"time":         "19:00",
		"people_count": 4,
	}
	body, _ := json.Marshal(createReq)
	req := httptest.NewRequest("POST", "/api/v1/reservations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &createResp)
	reservation := createResp["reservation"].(map[string]interface{})
	reservationID := uint(reservation["id"].(float64))

	// The same slot cannot be double-booked
	otherToken := registerTestUser(t, ts, "rival@example.com", "Rival Guest")
	req = httptest.NewRequest("POST", "/api/v1/reservations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+otherToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Cancel the reservation
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/reservations/%d", reservationID), nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// The freed slot can now be booked by the other guest
	req = httptest.NewRequest("POST", "/api/v1/reservations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+otherToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthenticationFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	accessToken := registerTestUser(t, ts, "test@example.com", "Test User")

	// Login
	loginReq := map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Get user info
	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var meResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &meResp)
	user := meResp["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, "Test User", user["name"])
}

func TestAdminProductManagement(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	customerToken := registerTestUser(t, ts, "customer@example.com", "Customer")

	// Promote a registered user to admin directly in the DB, then log in
	// again so the new role lands in the token claims.
	registerTestUser(t, ts, "admin@example.com", "Admin")
	ts.DB.Model(&model.User{}).Where("email = ?", "admin@example.com").Update("role", model.RoleAdmin)

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &loginResp)
	adminToken := loginResp["tokens"].(map[string]interface{})["access_token"].(string)

	productBody, _ := json.Marshal(map[string]interface{}{
		"name":           "Matcha Latte",
		"price":          6.25,
		"category":       "tea",
		"stock_quantity": 12,
	})

	// A regular customer cannot create products
	req = httptest.NewRequest("POST", "/api/v1/products", bytes.NewBuffer(productBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+customerToken)
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin can
	req = httptest.NewRequest("POST", "/api/v1/products", bytes.NewBuffer(productBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUnauthorizedAccess(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// Try to access protected routes without token
	protectedRoutes := []string{
		"/api/v1/auth/me",
		"/api/v1/cart",
		"/api/v1/orders",
		"/api/v1/reservations",
	}

	for _, route := range protectedRoutes {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest("GET", route, nil)
			w := httptest.NewRecorder()

			ts.Router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
