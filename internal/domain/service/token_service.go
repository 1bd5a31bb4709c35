package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by the auth-session token.
type Claims struct {
	UserID      int
	ProviderKey uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating the signed
// auth-session token issued at login. This abstracts the details of token
// creation from the use cases.
type TokenService interface {
	// GenerateSessionToken creates a signed session token for a user.
	GenerateSessionToken(userID int, providerKey uuid.UUID) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// GetSessionDuration returns the configured session token lifetime.
	GetSessionDuration() time.Duration
}
