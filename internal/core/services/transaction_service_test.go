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
	"github.com/audriusk/sandelis_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction, items []domain.TransactionItem) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) GetTodayStats(ctx context.Context) ([]domain.TransactionStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionStat), args.Error(1)
}

func (m *MockTransactionRepository) GetProjectStatistics(ctx context.Context, projectID string) (*domain.ProjectStatistics, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectStatistics), args.Error(1)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock ProjectReader ---
type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectReader) FindProjects(ctx context.Context, companyID string) ([]domain.Project, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

var _ portsrepo.ProjectReader = (*MockProjectReader)(nil)

// --- Mock UserReader ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserReader) FindUsersByCompanyID(ctx context.Context, companyID string) ([]domain.User, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portsrepo.UserReader = (*MockUserReader)(nil)

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo     *MockTransactionRepository
	projectRepo *MockProjectReader
	userRepo    *MockUserReader

	companyID      string
	otherCompanyID string
	project        *domain.Project
	clientUser     *domain.User
	adminUser      *domain.User
	clientActor    portssvc.Actor
	adminActor     portssvc.Actor
}

const testPin = "1234"

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.projectRepo = new(MockProjectReader)
	s.userRepo = new(MockUserReader)

	s.companyID = uuid.NewString()
	s.otherCompanyID = uuid.NewString()
	s.project = &domain.Project{
		ProjectID: uuid.NewString(),
		CompanyID: s.companyID,
		Name:      "Test project",
		Status:    domain.ProjectActive,
	}

	pinHash, err := utils.HashPin(testPin)
	s.Require().NoError(err)

	companyID := s.companyID
	s.clientUser = &domain.User{
		UserID:    uuid.NewString(),
		Username:  "client",
		Role:      domain.RoleClient,
		CompanyID: &companyID,
		PinHash:   &pinHash,
	}
	adminPinHash := pinHash
	s.adminUser = &domain.User{
		UserID:   uuid.NewString(),
		Username: "admin",
		Role:     domain.RoleAdmin,
		PinHash:  &adminPinHash,
	}

	s.clientActor = portssvc.Actor{UserID: s.clientUser.UserID, Role: domain.RoleClient, CompanyID: &companyID}
	s.adminActor = portssvc.Actor{UserID: s.adminUser.UserID, Role: domain.RoleAdmin}
}

func (s *TransactionServiceTestSuite) newService(adminPinRequired bool) portssvc.TransactionSvcFacade {
	return services.NewTransactionService(s.txnRepo, s.projectRepo, s.userRepo, adminPinRequired)
}

func (s *TransactionServiceTestSuite) validInput(pin *string) portssvc.CreateTransactionInput {
	return portssvc.CreateTransactionInput{
		ProjectID: s.project.ProjectID,
		Type:      domain.Take,
		Items: []portssvc.TransactionItemInput{
			{ProductID: uuid.NewString(), Quantity: decimal.NewFromInt(5)},
		},
		Pin: pin,
	}
}

func pinPtr(pin string) *string {
	return &pin
}

func (s *TransactionServiceTestSuite) TestCreateRejectsEmptyItems() {
	svc := s.newService(false)
	input := s.validInput(pinPtr(testPin))
	input.Items = nil

	_, err := svc.CreateTransaction(context.Background(), s.clientActor, input)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
	s.txnRepo.AssertNotCalled(s.T(), "CreateTransaction")
}

func (s *TransactionServiceTestSuite) TestCreateRejectsNonPositiveQuantity() {
	svc := s.newService(false)
	input := s.validInput(pinPtr(testPin))
	input.Items[0].Quantity = decimal.Zero

	_, err := svc.CreateTransaction(context.Background(), s.clientActor, input)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
}

func (s *TransactionServiceTestSuite) TestCreateRejectsUnknownProject() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(nil, apperrors.ErrNotFound)

	svc := s.newService(false)
	_, err := svc.CreateTransaction(context.Background(), s.clientActor, s.validInput(pinPtr(testPin)))
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *TransactionServiceTestSuite) TestCreateRejectsForeignCompanyForClient() {
	foreignProject := &domain.Project{
		ProjectID: s.project.ProjectID,
		CompanyID: s.otherCompanyID,
		Status:    domain.ProjectActive,
	}
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(foreignProject, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.clientUser.UserID).Return(s.clientUser, nil)

	svc := s.newService(false)
	_, err := svc.CreateTransaction(context.Background(), s.clientActor, s.validInput(pinPtr(testPin)))
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrForbidden))
	s.txnRepo.AssertNotCalled(s.T(), "CreateTransaction")
}

func (s *TransactionServiceTestSuite) TestCreateAllowsAnyCompanyForAdmin() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.adminUser.UserID).Return(s.adminUser, nil)
	s.txnRepo.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil)

	svc := s.newService(false)
	_, err := svc.CreateTransaction(context.Background(), s.adminActor, s.validInput(nil))
	s.Require().NoError(err)
}

func (s *TransactionServiceTestSuite) TestCreateRequiresPinForClient() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.clientUser.UserID).Return(s.clientUser, nil)

	svc := s.newService(false)
	_, err := svc.CreateTransaction(context.Background(), s.clientActor, s.validInput(nil))
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
	s.txnRepo.AssertNotCalled(s.T(), "CreateTransaction")
}

func (s *TransactionServiceTestSuite) TestCreateRejectsClientWithoutConfiguredPin() {
	noPinUser := *s.clientUser
	noPinUser.PinHash = nil
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.clientUser.UserID).Return(&noPinUser, nil)

	svc := s.newService(false)
	_, err := svc.CreateTransaction(context.Background(), s.clientActor, s.validInput(nil))
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrPinNotSet))
}

func (s *TransactionServiceTestSuite) TestCreateRejectsWrongPin() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.clientUser.UserID).Return(s.clientUser, nil)

	svc := s.newService(false)
	_, err := svc.CreateTransaction(context.Background(), s.clientActor, s.validInput(pinPtr("9999")))
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrPinMismatch))
	s.txnRepo.AssertNotCalled(s.T(), "CreateTransaction")
}

func (s *TransactionServiceTestSuite) TestCreateMarksPinConfirmed() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.clientUser.UserID).Return(s.clientUser, nil)
	s.txnRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ConfirmedByPin && txn.CompanyID == s.companyID && txn.CreatedBy == s.clientUser.UserID
	}), mock.Anything).Return(&domain.Transaction{TransactionID: uuid.NewString(), ConfirmedByPin: true}, nil)

	svc := s.newService(false)
	txn, err := svc.CreateTransaction(context.Background(), s.clientActor, s.validInput(pinPtr(testPin)))
	s.Require().NoError(err)
	s.True(txn.ConfirmedByPin)
}

func (s *TransactionServiceTestSuite) TestCreateAdminPinRequiredFlag() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.adminUser.UserID).Return(s.adminUser, nil)

	svc := s.newService(true)
	_, err := svc.CreateTransaction(context.Background(), s.adminActor, s.validInput(nil))
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))

	s.txnRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ConfirmedByPin
	}), mock.Anything).Return(&domain.Transaction{TransactionID: uuid.NewString(), ConfirmedByPin: true}, nil)

	_, err = svc.CreateTransaction(context.Background(), s.adminActor, s.validInput(pinPtr(testPin)))
	s.Require().NoError(err)
}

func (s *TransactionServiceTestSuite) TestCreateVerifiesSuppliedPinEvenWhenOptional() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.adminUser.UserID).Return(s.adminUser, nil)

	svc := s.newService(false)
	_, err := svc.CreateTransaction(context.Background(), s.adminActor, s.validInput(pinPtr("0001")))
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrPinMismatch))
}

func (s *TransactionServiceTestSuite) TestListScopesClientToOwnCompany() {
	requested := s.otherCompanyID
	s.txnRepo.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.CompanyID != nil && *f.CompanyID == s.companyID
	}), 20, (*string)(nil)).Return([]domain.Transaction{}, nil, nil)

	svc := s.newService(false)
	_, _, err := svc.ListTransactions(context.Background(), s.clientActor, domain.TransactionFilter{CompanyID: &requested}, 20, nil)
	s.Require().NoError(err)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestGetHidesForeignTransactionFromClient() {
	txnID := uuid.NewString()
	s.txnRepo.On("FindTransactionByID", mock.Anything, txnID).Return(&domain.Transaction{
		TransactionID: txnID,
		CompanyID:     s.otherCompanyID,
	}, nil)

	svc := s.newService(false)
	_, err := svc.GetTransactionByID(context.Background(), s.clientActor, txnID)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *TransactionServiceTestSuite) TestDeleteRequiresAdmin() {
	svc := s.newService(false)

	err := svc.DeleteTransaction(context.Background(), s.clientActor, uuid.NewString())
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrForbidden))
	s.txnRepo.AssertNotCalled(s.T(), "DeleteTransaction")

	txnID := uuid.NewString()
	s.txnRepo.On("DeleteTransaction", mock.Anything, txnID).Return(nil)
	s.Require().NoError(svc.DeleteTransaction(context.Background(), s.adminActor, txnID))
}

func (s *TransactionServiceTestSuite) TestProjectStatisticsHiddenFromForeignClient() {
	foreignProject := &domain.Project{
		ProjectID: s.project.ProjectID,
		CompanyID: s.otherCompanyID,
		Status:    domain.ProjectActive,
	}
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(foreignProject, nil)

	svc := s.newService(false)
	_, err := svc.GetProjectStatistics(context.Background(), s.clientActor, s.project.ProjectID)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrForbidden))
	s.txnRepo.AssertNotCalled(s.T(), "GetProjectStatistics")
}

func (s *TransactionServiceTestSuite) TestProjectStatisticsUnknownProject() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(nil, apperrors.ErrNotFound)

	svc := s.newService(false)
	_, err := svc.GetProjectStatistics(context.Background(), s.adminActor, s.project.ProjectID)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *TransactionServiceTestSuite) TestProjectStatisticsAllowsAnyCompanyForAdmin() {
	s.projectRepo.On("FindProjectByID", mock.Anything, s.project.ProjectID).Return(s.project, nil)
	s.txnRepo.On("GetProjectStatistics", mock.Anything, s.project.ProjectID).Return(&domain.ProjectStatistics{
		Transactions: []domain.TransactionStat{{Type: domain.Take, Count: 2}},
		TotalValue:   decimal.NewFromInt(50),
		ItemCount:    3,
	}, nil)

	svc := s.newService(false)
	stats, err := svc.GetProjectStatistics(context.Background(), s.adminActor, s.project.ProjectID)
	s.Require().NoError(err)
	s.Equal(int64(3), stats.ItemCount)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
