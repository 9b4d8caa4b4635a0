package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/serproauto/workshop-manager/internal/models"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// account is one entry of the static allow-list. Credential management
// is deliberately primitive: the workshop runs with three fixed users.
type account struct {
	passwordHash string
	role         models.Role
}

// Service handles authentication operations: the static user
// allow-list and session token issuance/validation.
type Service struct {
	jwtSecret []byte
	tokenExp  time.Duration
	accounts  map[string]account
}

// NewService creates a new authentication service with the built-in
// workshop users (jefetaller, asesor, mecanico).
func NewService() (*Service, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default-secret-key-change-in-production"
	}

	expStr := os.Getenv("JWT_EXPIRY")
	exp := 24 * time.Hour // default 24 hours
	if expStr != "" {
		if parsed, err := time.ParseDuration(expStr); err == nil {
			exp = parsed
		}
	}

	s := &Service{
		jwtSecret: []byte(secret),
		tokenExp:  exp,
		accounts:  make(map[string]account),
	}

	defaults := []struct {
		username string
		password string
		role     models.Role
	}{
		{"jefetaller", "jefetaller123", models.RoleForeman},
		{"asesor", "asesor123", models.RoleAdvisor},
		{"mecanico", "mecanico123", models.RoleMechanic},
	}
	for _, d := range defaults {
		if err := s.AddAccount(d.username, d.password, d.role); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// AddAccount registers a user in the allow-list. Usernames are
// case-insensitive.
func (s *Service) AddAccount(username, password string, role models.Role) error {
	if !models.IsValidRole(role) {
		return fmt.Errorf("invalid role %q for user %q", role, username)
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	s.accounts[strings.ToLower(username)] = account{passwordHash: hash, role: role}
	return nil
}

// Login checks the credentials against the allow-list and returns the
// session user on success.
func (s *Service) Login(username, password string) (models.User, error) {
	acct, ok := s.accounts[strings.ToLower(username)]
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if !s.CheckPassword(password, acct.passwordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return models.User{Username: username, Role: acct.role}, nil
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword checks if a password matches a hash
func (s *Service) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken generates a JWT token for a user
func (s *Service) GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenExp).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*models.Claims, error) {
	// Remove "Bearer " prefix if present
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	if !models.IsValidRole(models.Role(roleStr)) {
		return nil, ErrInvalidToken
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &models.Claims{
		Username: username,
		Role:     models.Role(roleStr),
		Exp:      int64(exp),
	}, nil
}

// ExtractTokenFromHeader extracts token from Authorization header
func (s *Service) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}
