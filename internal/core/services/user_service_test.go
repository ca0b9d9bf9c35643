package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCompanyReader struct {
	mock.Mock
}

func (m *MockCompanyReader) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyReader) FindCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

var _ portsrepo.CompanyReader = (*MockCompanyReader)(nil)

func TestCreateUserClientRequiresCompany(t *testing.T) {
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyReader)

	svc := services.NewUserService(userRepo, companyRepo)
	_, err := svc.CreateUser(context.Background(), portssvc.CreateUserInput{
		Username: "client",
		Password: "slaptazodis",
		Role:     domain.RoleClient,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	userRepo.AssertNotCalled(t, "SaveUser")
}

func TestListCompanyUsers(t *testing.T) {
	companyID := uuid.NewString()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyReader)
	companyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(&domain.Company{CompanyID: companyID}, nil)
	userRepo.On("FindUsersByCompanyID", mock.Anything, companyID).Return([]domain.User{
		{UserID: uuid.NewString(), Username: "darbuotojas1"},
		{UserID: uuid.NewString(), Username: "darbuotojas2"},
	}, nil)

	svc := services.NewUserService(userRepo, companyRepo)
	users, err := svc.ListCompanyUsers(context.Background(), companyID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	userRepo.AssertExpectations(t)
}

func TestListCompanyUsersUnknownCompany(t *testing.T) {
	companyID := uuid.NewString()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyReader)
	companyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(nil, apperrors.ErrNotFound)

	svc := services.NewUserService(userRepo, companyRepo)
	_, err := svc.ListCompanyUsers(context.Background(), companyID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	userRepo.AssertNotCalled(t, "FindUsersByCompanyID")
}
