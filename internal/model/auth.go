package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HostClaims identify a business owner in admin-route JWTs. Hosts
// manage templates and persisted checklists; the questionnaire flow
// needs no authentication.
type HostClaims struct {
	HostID   string `json:"hostId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest carries host credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and its expiry.
type LoginResponse struct {
	Token     string    `json:"token"`
	HostID    string    `json:"hostId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
