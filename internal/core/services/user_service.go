package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyReader
}

// NewUserService creates the account-management service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, companyRepo portsrepo.CompanyReader) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, companyRepo: companyRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) checkCompany(ctx context.Context, companyID string) error {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("company %s does not exist: %w", companyID, apperrors.ErrValidation)
		}
		return err
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, input portssvc.CreateUserInput) (*domain.User, error) {
	if input.Role == domain.RoleClient {
		if input.CompanyID == nil || *input.CompanyID == "" {
			return nil, fmt.Errorf("client users must belong to a company: %w", apperrors.ErrValidation)
		}
	}
	if input.CompanyID != nil && *input.CompanyID != "" {
		if err := s.checkCompany(ctx, *input.CompanyID); err != nil {
			return nil, err
		}
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var pinHash *string
	if input.Pin != nil && *input.Pin != "" {
		hashed, err := utils.HashPin(*input.Pin)
		if err != nil {
			return nil, err
		}
		pinHash = &hashed
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		Role:         input.Role,
		CompanyID:    input.CompanyID,
		PinHash:      pinHash,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.FindUsers(ctx, limit, offset)
}

func (s *userService) ListCompanyUsers(ctx context.Context, companyID string) ([]domain.User, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.userRepo.FindUsersByCompanyID(ctx, companyID)
}

func (s *userService) UpdateUser(ctx context.Context, userID string, input portssvc.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Password != nil && *input.Password != "" {
		passwordHash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}
	if input.Pin != nil && *input.Pin != "" {
		pinHash, err := utils.HashPin(*input.Pin)
		if err != nil {
			return nil, err
		}
		user.PinHash = &pinHash
	}
	if input.CompanyID != nil {
		if *input.CompanyID == "" {
			if user.Role == domain.RoleClient {
				return nil, fmt.Errorf("client users must belong to a company: %w", apperrors.ErrValidation)
			}
			user.CompanyID = nil
		} else {
			if err := s.checkCompany(ctx, *input.CompanyID); err != nil {
				return nil, err
			}
			user.CompanyID = input.CompanyID
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.DeleteUser(ctx, userID)
}
