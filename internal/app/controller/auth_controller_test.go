package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/geekhaven/brew-backend/config"
	"github.com/geekhaven/brew-backend/internal/app/repository"
	"github.com/geekhaven/brew-backend/internal/app/service"
	"github.com/geekhaven/brew-backend/internal/db"
	"github.com/geekhaven/brew-backend/internal/middleware"
	"github.com/geekhaven/brew-backend/pkg/redis"
	"github.com/geekhaven/brew-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis points the shared redis client at an in-memory miniredis
// instance so token blacklisting works without a real server.
func setupTestRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	err = redis.Init(&config.RedisConfig{
		Host: mr.Host(),
		Port: mr.Port(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		redis.Close()
	})
}

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	gin.SetMode(gin.TestMode)
	setupTestRedis(t)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	ctrl := NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/refresh", ctrl.RefreshToken)
	router.POST("/logout", ctrl.Logout)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.GetMe)
	router.PUT("/me", authMiddleware.Authenticate(), ctrl.UpdateMe)

	return router, authService
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	reqBody := RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Registration successful", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_Register_InvalidEmail(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	reqBody := RegisterRequest{
		Email:    "invalid-email",
		Password: "password123",
		Name:     "Test User",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	reqBody := RegisterRequest{
		Email:    "test@example.com",
		Password: "password456",
		Name:     "Another User",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestAuthController_Register_MissingFields(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	tests := []struct {
		name    string
		reqBody RegisterRequest
	}{
		{
			name: "Missing email",
			reqBody: RegisterRequest{
				Password: "password123",
				Name:     "Test User",
			},
		},
		{
			name: "Missing password",
			reqBody: RegisterRequest{
				Email: "test@example.com",
				Name:  "Test User",
			},
		},
		{
			name: "Missing name",
			reqBody: RegisterRequest{
				Email:    "test@example.com",
				Password: "password123",
			},
		},
		{
			name: "Short password",
			reqBody: RegisterRequest{
				Email:    "test@example.com",
				Password: "123",
				Name:     "Test User",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	email := "test@example.com"
	password := "password123"
	_, _, err := authService.Register(email, password, "Test User")
	require.NoError(t, err)

	reqBody := LoginRequest{
		Email:    email,
		Password: password,
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Login successful", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	reqBody := LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpassword",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect email or password")
}

func TestAuthController_GetMe_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	user, tokens, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	userMap := response["user"].(map[string]interface{})
	assert.Equal(t, user.Email, userMap["email"])
	assert.Equal(t, user.Name, userMap["name"])
}

func TestAuthController_GetMe_Unauthorized(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_GetMe_InvalidToken(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_UpdateMe(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	reqBody := UpdateProfileRequest{Name: "Renamed User"}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("PUT", "/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	userMap := response["user"].(map[string]interface{})
	assert.Equal(t, "Renamed User", userMap["name"])
}

func TestAuthController_RefreshToken_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	reqBody := RefreshTokenRequest{RefreshToken: tokens.RefreshToken}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_RefreshToken_Invalid(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	reqBody := RefreshTokenRequest{RefreshToken: "not.a.token"}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_RefreshToken_RevokedAfterLogout(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	// Logout revokes the refresh token
	logoutBody, _ := json.Marshal(LogoutRequest{RefreshToken: tokens.RefreshToken})
	req := httptest.NewRequest("POST", "/logout", bytes.NewBuffer(logoutBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token can no longer be refreshed
	refreshBody, _ := json.Marshal(RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	req = httptest.NewRequest("POST", "/refresh", bytes.NewBuffer(refreshBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestAuthController_RefreshRotatesOldToken(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	refreshBody, _ := json.Marshal(RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	req := httptest.NewRequest("POST", "/refresh", bytes.NewBuffer(refreshBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The old refresh token was blacklisted by the rotation
	req = httptest.NewRequest("POST", "/refresh", bytes.NewBuffer(refreshBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_TokensAreDifferent(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	reqBody := RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	tokens := response["tokens"].(map[string]interface{})
	accessToken := tokens["access_token"].(string)
	refreshToken := tokens["refresh_token"].(string)

	assert.NotEqual(t, accessToken, refreshToken)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	claims, err := util.ValidateToken(accessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
}
