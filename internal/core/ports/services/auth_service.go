package services

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// LoginResult carries the authenticated user plus the issued credential pair.
type LoginResult struct {
	User         domain.User
	Token        string
	RefreshToken string
}

// RefreshResult carries a rotated credential pair.
type RefreshResult struct {
	Token        string
	RefreshToken string
}

// AuthSvcFacade defines authentication and PIN confirmation.
type AuthSvcFacade interface {
	// Login verifies the credentials and issues an access and refresh token.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// RefreshToken exchanges a valid, unexpired refresh token for a new pair,
	// rotating the stored token.
	RefreshToken(ctx context.Context, userID, refreshToken string) (*RefreshResult, error)

	// VerifyPin checks the caller's confirmation PIN without side effects.
	VerifyPin(ctx context.Context, userID, pin string) error

	// Logout invalidates the caller's stored refresh token. The access token
	// stays valid until it expires.
	Logout(ctx context.Context, userID string) error
}
