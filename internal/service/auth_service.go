package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"checkflow/internal/config"
	"checkflow/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const hostTokenTTL = 24 * time.Hour

// AuthService issues and validates host tokens. A single host account
// is configured through the environment; template and checklist admin
// routes require its token, everything else is public.
type AuthService struct {
	username string
	password string
	secret   []byte
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		username: cfg.HostUsername,
		password: cfg.HostPassword,
		secret:   []byte(cfg.JWTSecret),
	}
}

// Login checks credentials and issues a signed HS256 token.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.username || password != s.password {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiry := now.Add(hostTokenTTL)
	hostID := fmt.Sprintf("host_%s", uuid.New().String()[:8])

	claims := &model.HostClaims{
		HostID:   hostID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   hostID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &model.LoginResponse{Token: signed, HostID: hostID, ExpiresAt: expiry}, nil
}

// ValidateHostToken parses and verifies a host JWT.
func (s *AuthService) ValidateHostToken(tokenString string) (*model.HostClaims, error) {
	var claims model.HostClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
