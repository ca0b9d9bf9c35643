package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// GenerateRefreshToken creates a new opaque refresh token from 32 random
// bytes. Only its hash is persisted.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashRefreshToken returns the hex-encoded SHA-256 of a refresh token.
// Refresh tokens are high entropy, so a plain digest is enough here.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash checks a presented token against the stored hash in
// constant time.
func CompareRefreshTokenHash(token, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(token)), []byte(storedHash)) == 1
}
