package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/TharakaGamage830/OmniDash/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the custom JWT claims
type TokenClaims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// tokenLifetime parses JWT_EXPIRES_IN ("30d", "12h", ...). Tokens carry a fixed
// lifetime at issuance; there is no server-side revocation.
func tokenLifetime() time.Duration {
	expiresIn := config.AppConfig.JWTExpiresIn
	if strings.HasSuffix(expiresIn, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(expiresIn, "d")); err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	if d, err := time.ParseDuration(expiresIn); err == nil && d > 0 {
		return d
	}
	return 30 * 24 * time.Hour
}

// GenerateToken generates a JWT token for an admin
func GenerateToken(adminID uint, email string) (string, error) {
	claims := TokenClaims{
		ID:    adminID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken verifies and parses a JWT token
func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
