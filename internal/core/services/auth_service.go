package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/platform/config"
	"github.com/audriusk/sandelis_backend/internal/utils"
)

type authService struct {
	userRepo      portsrepo.UserRepositoryFacade
	jwtSecret     string
	jwtIssuer     string
	jwtExpiry     time.Duration
	refreshExpiry time.Duration
}

// NewAuthService creates the authentication service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     cfg.JWTSecret,
		jwtIssuer:     cfg.JWTIssuer,
		jwtExpiry:     cfg.JWTExpiryDuration,
		refreshExpiry: cfg.RefreshTokenExpiryDuration,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login never reveals whether the username or the password was wrong.
func (s *authService) Login(ctx context.Context, username, password string) (*portssvc.LoginResult, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	token, refreshToken, err := s.issueTokens(ctx, user.UserID, string(user.Role), user.CompanyID)
	if err != nil {
		return nil, err
	}

	return &portssvc.LoginResult{
		User:         *user,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken rotates the stored token on every successful exchange. A
// presented token that fails the hash check invalidates the stored one, so a
// stolen refresh token cannot be replayed after its holder uses it.
func (s *authService) RefreshToken(ctx context.Context, userID, refreshToken string) (*portssvc.RefreshResult, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		_ = s.userRepo.ClearRefreshToken(ctx, user.UserID)
		return nil, apperrors.ErrUnauthorized
	}

	token, newRefreshToken, err := s.issueTokens(ctx, user.UserID, string(user.Role), user.CompanyID)
	if err != nil {
		return nil, err
	}

	return &portssvc.RefreshResult{
		Token:        token,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *authService) VerifyPin(ctx context.Context, userID, pin string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return err
	}
	if !user.HasPin() {
		return apperrors.ErrPinNotSet
	}
	if !utils.CheckPinHash(pin, *user.PinHash) {
		return apperrors.ErrPinMismatch
	}
	return nil
}

// Logout drops the stored refresh token so it can no longer be exchanged.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *authService) issueTokens(ctx context.Context, userID, role string, companyID *string) (string, string, error) {
	company := ""
	if companyID != nil {
		company = *companyID
	}

	token, err := utils.GenerateAccessToken(userID, role, company, s.jwtSecret, s.jwtIssuer, s.jwtExpiry)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return "", "", err
	}

	expiry := time.Now().Add(s.refreshExpiry)
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, utils.HashRefreshToken(refreshToken), expiry); err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}
