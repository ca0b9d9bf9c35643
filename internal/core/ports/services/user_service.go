package services

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// CreateUserInput carries everything needed to register a user. Password and
// pin arrive in the clear and are hashed inside the service.
type CreateUserInput struct {
	Username  string
	Password  string
	Role      domain.Role
	CompanyID *string
	Pin       *string
}

// UpdateUserInput carries the updatable user fields; nil means leave as is.
type UpdateUserInput struct {
	Password  *string
	Pin       *string
	CompanyID *string
}

// UserSvcFacade defines the account-management operations.
type UserSvcFacade interface {
	// CreateUser registers a new user. CLIENT users must carry a company.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated user listing.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// ListCompanyUsers lists every user attached to an existing company.
	ListCompanyUsers(ctx context.Context, companyID string) ([]domain.User, error)

	// UpdateUser applies the provided fields to an existing user.
	UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*domain.User, error)

	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, userID string) error
}
