package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/serproauto/workshop-manager/internal/models"
)

func TestNewService(t *testing.T) {
	service, err := NewService()
	assert.NoError(t, err)
	assert.NotNil(t, service)
	assert.NotEmpty(t, service.jwtSecret)
	assert.Equal(t, 24*time.Hour, service.tokenExp)
	assert.Len(t, service.accounts, 3)
}

func TestService_Login(t *testing.T) {
	service, _ := NewService()

	tests := []struct {
		name     string
		username string
		password string
		wantRole models.Role
		wantErr  error
	}{
		{"foreman login", "jefetaller", "jefetaller123", models.RoleForeman, nil},
		{"advisor login", "asesor", "asesor123", models.RoleAdvisor, nil},
		{"mechanic login", "mecanico", "mecanico123", models.RoleMechanic, nil},
		{"username is case-insensitive", "MECANICO", "mecanico123", models.RoleMechanic, nil},
		{"wrong password", "asesor", "wrong", "", ErrInvalidCredentials},
		{"unknown user", "nobody", "secret", "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Login(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.wantRole, user.Role)
		})
	}
}

func TestService_AddAccount(t *testing.T) {
	service, _ := NewService()

	assert.NoError(t, service.AddAccount("Ana", "workshop42", models.RoleMechanic))
	user, err := service.Login("ana", "workshop42")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleMechanic, user.Role)

	assert.Error(t, service.AddAccount("bob", "x", "superuser"))
}

func TestService_HashPassword(t *testing.T) {
	service, _ := NewService()

	password := "testpassword123"
	hash, err := service.HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestService_CheckPassword(t *testing.T) {
	service, _ := NewService()

	password := "testpassword123"
	hash, _ := service.HashPassword(password)

	assert.True(t, service.CheckPassword(password, hash))
	assert.False(t, service.CheckPassword("wrongpassword", hash))
}

func TestService_GenerateToken(t *testing.T) {
	service, _ := NewService()

	user := models.User{Username: "mecanico", Role: models.RoleMechanic}

	token, err := service.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := NewService()

	user := models.User{Username: "asesor", Role: models.RoleAdvisor}
	token, _ := service.GenerateToken(user)

	// Test valid token
	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Role, claims.Role)

	// Test invalid token
	_, err = service.ValidateToken("invalid-token")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)

	// Test token with Bearer prefix
	_, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service, _ := NewService()

	token := "valid-token"
	header := "Bearer " + token
	extracted, err := service.ExtractTokenFromHeader(header)
	assert.NoError(t, err)
	assert.Equal(t, token, extracted)

	_, err = service.ExtractTokenFromHeader("")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)

	_, err = service.ExtractTokenFromHeader("InvalidFormat")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)

	_, err = service.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)
}
