package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// RoleClaims is what the auth service signs into a console session token.
type RoleClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// GenerateRoleToken signs a role token for subject. The auth service issues these; the
// API only needs it for tooling and tests.
func GenerateRoleToken(secret []byte, subject, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := RoleClaims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseRoleToken validates signature and expiry and returns the claims.
func ParseRoleToken(secret []byte, tokenString string) (*RoleClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("role token secret is not configured")
	}
	claims := &RoleClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role == "" {
		return nil, errors.New("token does not contain a 'role' claim")
	}
	return claims, nil
}
