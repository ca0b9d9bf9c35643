package utils

import (
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims carried by an access token. CompanyID is
// empty for admins.
type AccessClaims struct {
	Role      string `json:"role"`
	CompanyID string `json:"companyID,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed JWT for the given user identity.
func GenerateAccessToken(userID, role, companyID, secret, issuer string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role:      role,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates the signature and expiry of an access token and
// returns its claims.
func ParseAccessToken(tokenString, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}
