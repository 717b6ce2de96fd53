// Package auth gates the workspace behind a single shared password and
// issues short-lived JWT access tokens for the API.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
)

// Config holds token signing configuration.
type Config struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

// DefaultConfig returns the standard token configuration.
func DefaultConfig(secret string) Config {
	return Config{
		Secret:         secret,
		Issuer:         "otomatik-quote",
		AccessTokenTTL: 12 * time.Hour,
	}
}

// Claims are the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	Workspace string `json:"ws"`
}

// Service verifies the workspace password and manages tokens.
type Service struct {
	config       Config
	passwordHash []byte
}

// NewService creates an auth service from a bcrypt password hash.
// An empty hash disables the gate entirely.
func NewService(config Config, passwordHash string) *Service {
	return &Service{config: config, passwordHash: []byte(passwordHash)}
}

// HashPassword produces a bcrypt hash suitable for configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Enabled reports whether a password is configured.
func (s *Service) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Login checks the password and issues an access token.
func (s *Service) Login(password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, apperror.NewBusinessRule(apperror.CodeBusinessRule, "authentication is not configured")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, apperror.NewUnauthorized("invalid password")
	}

	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   "workspace",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Workspace: "default",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies an access token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
