// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"membership/config"
	"membership/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     string        // Secret key for signing session tokens.
	sessionTTL time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("jwt session secret must be provided")
	}

	return &jwtService{
		secret:     cfg.SecretKey.Session,
		sessionTTL: cfg.Auth.SessionTTLOrDefault(),
	}, nil
}

// GenerateSessionToken creates a signed session token for a given user.
func (s *jwtService) GenerateSessionToken(userID int, providerKey uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,                       // Subject (who the token is for)
		"key":  providerKey.String(),         // Identity-provider key
		"iat":  now.Unix(),                   // Issued At
		"exp":  now.Add(s.sessionTTL).Unix(), // Expiration Time
		"type": "session",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string and extracts its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims := &service.Claims{}
	if sub, ok := mapClaims["sub"].(float64); ok {
		claims.UserID = int(sub)
	}
	if rawKey, ok := mapClaims["key"].(string); ok {
		key, parseErr := uuid.Parse(rawKey)
		if parseErr != nil {
			return nil, jwt.ErrTokenInvalidClaims
		}
		claims.ProviderKey = key
	}

	return claims, nil
}

// GetSessionDuration returns the configured session token lifetime.
func (s *jwtService) GetSessionDuration() time.Duration {
	return s.sessionTTL
}
