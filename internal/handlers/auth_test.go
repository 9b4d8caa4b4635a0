package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serproauto/workshop-manager/internal/auth"
	"github.com/serproauto/workshop-manager/internal/middleware"
	"github.com/serproauto/workshop-manager/internal/models"
)

func TestAuthHandler_Login(t *testing.T) {
	authService, err := auth.NewService()
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}
	handler := NewAuthHandler(authService)

	t.Run("successful login", func(t *testing.T) {
		loginReq := models.LoginRequest{
			Username: "asesor",
			Password: "asesor123",
		}
		body, _ := json.Marshal(loginReq)

		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response models.LoginResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "asesor", response.User.Username)
		assert.Equal(t, models.RoleAdvisor, response.User.Role)

		// The issued token round-trips through validation.
		claims, err := authService.ValidateToken(response.Token)
		assert.NoError(t, err)
		assert.Equal(t, models.RoleAdvisor, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		loginReq := models.LoginRequest{
			Username: "asesor",
			Password: "nope",
		}
		body, _ := json.Marshal(loginReq)

		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing credentials", func(t *testing.T) {
		body, _ := json.Marshal(models.LoginRequest{Username: "asesor"})

		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString("not-json"))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Profile(t *testing.T) {
	authService, _ := auth.NewService()
	handler := NewAuthHandler(authService)

	t.Run("with session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/profile", nil)
		req = requestWithUser(req, models.User{Username: "mecanico", Role: models.RoleMechanic})
		w := httptest.NewRecorder()

		handler.Profile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var user models.User
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "mecanico", user.Username)
	})

	t.Run("without session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/profile", nil)
		w := httptest.NewRecorder()

		handler.Profile(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// requestWithUser injects session claims the way the auth middleware does.
func requestWithUser(r *http.Request, user models.User) *http.Request {
	claims := &models.Claims{Username: user.Username, Role: user.Role}
	ctx := r.Context()
	return r.WithContext(contextWithClaims(ctx, claims))
}

func contextWithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, middleware.UserContextKey, claims)
}
