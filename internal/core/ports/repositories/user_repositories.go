package repositories

import (
	"context"
	"time"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// UserReader defines read operations for users.
type UserReader interface {
	// FindUserByID retrieves a specific user.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their login name.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUsers retrieves a paginated user listing.
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// FindUsersByCompanyID lists every user attached to one company.
	FindUsersByCompanyID(ctx context.Context, companyID string) ([]domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser fully replaces a user's mutable fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, userID string) error

	// UpdateRefreshToken stores the hashed refresh token and its expiry.
	UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken invalidates the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines the read and write surfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
