// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"membership/config"
	"membership/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:     cost,
		strength: cfg.PasswordStrength,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks a plaintext password against the configured
// strength policy. Returns a structured provider error so callers can switch
// on the code.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	minLength, maxLength := 8, 72
	requireUpper, requireLower, requireNumber, requireSpecial := false, false, true, false

	if h.strength != nil {
		if h.strength.MinLength > 0 {
			minLength = h.strength.MinLength
		}
		if h.strength.MaxLength > 0 {
			maxLength = h.strength.MaxLength
		}
		requireUpper = h.strength.RequireUppercase
		requireLower = h.strength.RequireLowercase
		requireNumber = h.strength.RequireNumbers
		requireSpecial = h.strength.RequireSpecial
	}

	if len(password) < minLength {
		return service.NewProviderError(service.ProviderCodeInvalidPassword, "password is too short")
	}
	if len(password) > maxLength {
		return service.NewProviderError(service.ProviderCodeInvalidPassword, "password is too long")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case strings.ContainsRune("!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~", r):
			hasSpecial = true
		}
	}

	switch {
	case requireUpper && !hasUpper:
		return service.NewProviderError(service.ProviderCodeInvalidPassword, "password requires an uppercase letter")
	case requireLower && !hasLower:
		return service.NewProviderError(service.ProviderCodeInvalidPassword, "password requires a lowercase letter")
	case requireNumber && !hasNumber:
		return service.NewProviderError(service.ProviderCodeInvalidPassword, "password requires a digit")
	case requireSpecial && !hasSpecial:
		return service.NewProviderError(service.ProviderCodeInvalidPassword, "password requires a special character")
	}

	return nil
}
