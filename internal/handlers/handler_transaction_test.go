package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/dto"
	"github.com/audriusk/sandelis_backend/internal/handlers"
	"github.com/audriusk/sandelis_backend/internal/platform/config"
	"github.com/audriusk/sandelis_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, actor portssvc.Actor, input portssvc.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, actor portssvc.Actor, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, actor portssvc.Actor, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, actor, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, actor portssvc.Actor, transactionID string) error {
	args := m.Called(ctx, actor, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) GetTodayStats(ctx context.Context) ([]domain.TransactionStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionStat), args.Error(1)
}

func (m *MockTransactionService) GetProjectStatistics(ctx context.Context, actor portssvc.Actor, projectID string) (*domain.ProjectStatistics, error) {
	args := m.Called(ctx, actor, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectStatistics), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockTransactionService
	jwtSecret string

	adminID   string
	clientID  string
	companyID string
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockSvc = new(MockTransactionService)
	s.jwtSecret = "test-secret-key"
	s.adminID = uuid.NewString()
	s.clientID = uuid.NewString()
	s.companyID = uuid.NewString()

	cfg := &config.Config{
		JWTSecret:    s.jwtSecret,
		IsProduction: true,
	}
	container := &portssvc.ServiceContainer{TransactionSvc: s.mockSvc}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

func (s *TransactionHandlerTestSuite) adminToken() string {
	token, err := utils.GenerateAccessToken(s.adminID, string(domain.RoleAdmin), "", s.jwtSecret, "test", time.Minute)
	s.Require().NoError(err)
	return token
}

func (s *TransactionHandlerTestSuite) clientToken() string {
	token, err := utils.GenerateAccessToken(s.clientID, string(domain.RoleClient), s.companyID, s.jwtSecret, "test", time.Minute)
	s.Require().NoError(err)
	return token
}

func (s *TransactionHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TransactionHandlerTestSuite) validCreateBody() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		ProjectID: uuid.NewString(),
		Type:      "TAKE",
		Items: []dto.CreateTransactionItemRequest{
			{ProductID: uuid.NewString(), Quantity: decimal.NewFromInt(5)},
		},
	}
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionRequiresToken() {
	w := s.doRequest(http.MethodPost, "/api/v1/transactions", "", s.validCreateBody())
	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockSvc.AssertNotCalled(s.T(), "CreateTransaction")
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionSuccess() {
	body := s.validCreateBody()
	created := &domain.Transaction{
		TransactionID:  uuid.NewString(),
		ProjectID:      body.ProjectID,
		CompanyID:      s.companyID,
		Type:           domain.Take,
		CreatedBy:      s.clientID,
		ConfirmedByPin: true,
		CreatedAt:      time.Now(),
		Items: []domain.TransactionItem{
			{
				ItemID:       uuid.NewString(),
				ProductID:    body.Items[0].ProductID,
				ProductCode:  "0010006",
				ProductName:  "Kabelis YDYP 3x1.5",
				Quantity:     decimal.NewFromInt(5),
				Unit:         domain.UnitMeter,
				PricePerUnit: decimal.RequireFromString("2.50"),
				TotalPrice:   decimal.RequireFromString("12.50"),
			},
		},
	}

	s.mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(actor portssvc.Actor) bool {
		return actor.UserID == s.clientID && actor.Role == domain.RoleClient &&
			actor.CompanyID != nil && *actor.CompanyID == s.companyID
	}), mock.MatchedBy(func(input portssvc.CreateTransactionInput) bool {
		return input.ProjectID == body.ProjectID && input.Type == domain.Take && len(input.Items) == 1
	})).Return(created, nil).Once()

	w := s.doRequest(http.MethodPost, "/api/v1/transactions", s.clientToken(), body)
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(created.TransactionID, resp.ID)
	s.True(resp.ConfirmedByPin)
	s.True(resp.TotalValue.Equal(decimal.RequireFromString("12.50")))
	s.mockSvc.AssertExpectations(s.T())
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionRejectsBadType() {
	body := s.validCreateBody()
	body.Type = "BORROW"

	w := s.doRequest(http.MethodPost, "/api/v1/transactions", s.clientToken(), body)
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockSvc.AssertNotCalled(s.T(), "CreateTransaction")
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionInsufficientStock() {
	s.mockSvc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &apperrors.InsufficientStockError{
			ProductID:   "p-1",
			ProductName: "Kabelis YDYP 3x1.5",
			Available:   decimal.NewFromInt(70),
			Unit:        "m",
		}).Once()

	w := s.doRequest(http.MethodPost, "/api/v1/transactions", s.clientToken(), s.validCreateBody())
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Kabelis YDYP 3x1.5", resp["productName"])
	s.Equal("m", resp["unit"])
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionForbiddenProject() {
	s.mockSvc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("project belongs to another company: %w", apperrors.ErrForbidden)).Once()

	w := s.doRequest(http.MethodPost, "/api/v1/transactions", s.clientToken(), s.validCreateBody())
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionPinMismatch() {
	s.mockSvc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrPinMismatch).Once()

	w := s.doRequest(http.MethodPost, "/api/v1/transactions", s.clientToken(), s.validCreateBody())
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactionsPassesFilter() {
	s.mockSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(actor portssvc.Actor) bool {
		return actor.Role == domain.RoleAdmin
	}), mock.MatchedBy(func(filter domain.TransactionFilter) bool {
		return filter.Type != nil && *filter.Type == domain.Take && filter.CompanyID != nil
	}), 10, (*string)(nil)).Return([]domain.Transaction{}, nil, nil).Once()

	w := s.doRequest(http.MethodGet, "/api/v1/transactions?type=TAKE&companyId="+s.companyID+"&limit=10", s.adminToken(), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.mockSvc.AssertExpectations(s.T())
}

func (s *TransactionHandlerTestSuite) TestGetTransactionNotFound() {
	txnID := uuid.NewString()
	s.mockSvc.On("GetTransactionByID", mock.Anything, mock.Anything, txnID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := s.doRequest(http.MethodGet, "/api/v1/transactions/"+txnID, s.clientToken(), nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TransactionHandlerTestSuite) TestDeleteTransactionClientForbiddenAtRoute() {
	w := s.doRequest(http.MethodDelete, "/api/v1/transactions/"+uuid.NewString(), s.clientToken(), nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.mockSvc.AssertNotCalled(s.T(), "DeleteTransaction")
}

func (s *TransactionHandlerTestSuite) TestDeleteTransactionAdmin() {
	txnID := uuid.NewString()
	s.mockSvc.On("DeleteTransaction", mock.Anything, mock.MatchedBy(func(actor portssvc.Actor) bool {
		return actor.UserID == s.adminID && actor.Role == domain.RoleAdmin && actor.CompanyID == nil
	}), txnID).Return(nil).Once()

	w := s.doRequest(http.MethodDelete, "/api/v1/transactions/"+txnID, s.adminToken(), nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.mockSvc.AssertExpectations(s.T())
}

func (s *TransactionHandlerTestSuite) TestTodayStats() {
	s.mockSvc.On("GetTodayStats", mock.Anything).Return([]domain.TransactionStat{
		{Type: domain.Take, Count: 3, TotalValue: decimal.RequireFromString("120.50")},
	}, nil).Once()

	w := s.doRequest(http.MethodGet, "/api/v1/transactions/stats/today", s.clientToken(), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.TodayStatsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Stats, 1)
	s.Equal(int64(3), resp.Stats[0].Count)
}

func (s *TransactionHandlerTestSuite) TestProjectStatistics() {
	projectID := uuid.NewString()
	s.mockSvc.On("GetProjectStatistics", mock.Anything, mock.MatchedBy(func(actor portssvc.Actor) bool {
		return actor.UserID == s.adminID && actor.Role == domain.RoleAdmin
	}), projectID).Return(&domain.ProjectStatistics{
		Transactions: []domain.TransactionStat{
			{Type: domain.Take, Count: 4},
			{Type: domain.Return, Count: 1},
		},
		TotalValue: decimal.RequireFromString("250.00"),
		ItemCount:  7,
	}, nil).Once()

	w := s.doRequest(http.MethodGet, "/api/v1/projects/"+projectID+"/statistics", s.adminToken(), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ProjectStatisticsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Transactions, 2)
	s.Equal(int64(7), resp.ItemCount)
	s.True(resp.TotalValue.Equal(decimal.RequireFromString("250.00")))
}

func (s *TransactionHandlerTestSuite) TestProjectStatisticsForeignCompanyForbidden() {
	projectID := uuid.NewString()
	s.mockSvc.On("GetProjectStatistics", mock.Anything, mock.Anything, projectID).
		Return(nil, fmt.Errorf("project belongs to another company: %w", apperrors.ErrForbidden)).Once()

	w := s.doRequest(http.MethodGet, "/api/v1/projects/"+projectID+"/statistics", s.clientToken(), nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
