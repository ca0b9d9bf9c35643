package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, category, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) (*domain.Product, error) {
	args := m.Called(ctx, productID, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

// --- Test Suite ---
type ProductHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockProductService
	jwtSecret string

	adminID   string
	clientID  string
	companyID string
}

func (s *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockSvc = new(MockProductService)
	s.jwtSecret = "test-secret-key"
	s.adminID = uuid.NewString()
	s.clientID = uuid.NewString()
	s.companyID = uuid.NewString()

	cfg := &config.Config{
		JWTSecret:    s.jwtSecret,
		IsProduction: true,
	}
	container := &portssvc.ServiceContainer{ProductSvc: s.mockSvc}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

func (s *ProductHandlerTestSuite) adminToken() string {
	token, err := utils.GenerateAccessToken(s.adminID, string(domain.RoleAdmin), "", s.jwtSecret, "test", time.Minute)
	s.Require().NoError(err)
	return token
}

func (s *ProductHandlerTestSuite) clientToken() string {
	token, err := utils.GenerateAccessToken(s.clientID, string(domain.RoleClient), s.companyID, s.jwtSecret, "test", time.Minute)
	s.Require().NoError(err)
	return token
}

func (s *ProductHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
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

func (s *ProductHandlerTestSuite) sampleProduct() *domain.Product {
	return &domain.Product{
		ProductID: uuid.NewString(),
		Code:      "0010006",
		Name:      "Kabelis YDYP 3x1.5",
		Unit:      domain.UnitMeter,
		Stock:     decimal.NewFromInt(100),
		Price:     decimal.RequireFromString("2.50"),
	}
}

func (s *ProductHandlerTestSuite) TestGetProductOpenToClients() {
	product := s.sampleProduct()
	s.mockSvc.On("GetProductByID", mock.Anything, product.ProductID).Return(product, nil).Once()

	w := s.doRequest(http.MethodGet, "/api/v1/products/"+product.ProductID, s.clientToken(), nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ProductHandlerTestSuite) TestLowStockClientForbidden() {
	w := s.doRequest(http.MethodGet, "/api/v1/products/low-stock", s.clientToken(), nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.mockSvc.AssertNotCalled(s.T(), "ListLowStockProducts")
}

func (s *ProductHandlerTestSuite) TestLowStockAdmin() {
	s.mockSvc.On("ListLowStockProducts", mock.Anything).Return([]domain.Product{*s.sampleProduct()}, nil).Once()

	w := s.doRequest(http.MethodGet, "/api/v1/products/low-stock", s.adminToken(), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ListProductsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Products, 1)
	s.mockSvc.AssertExpectations(s.T())
}

func (s *ProductHandlerTestSuite) TestUpdateStockClientForbidden() {
	body := dto.UpdateStockRequest{Stock: decimal.NewFromInt(50)}
	w := s.doRequest(http.MethodPatch, "/api/v1/products/"+uuid.NewString()+"/stock", s.clientToken(), body)
	s.Equal(http.StatusForbidden, w.Code)
	s.mockSvc.AssertNotCalled(s.T(), "UpdateStock")
}

func (s *ProductHandlerTestSuite) TestUpdateStockAdmin() {
	product := s.sampleProduct()
	product.Stock = decimal.NewFromInt(50)
	s.mockSvc.On("UpdateStock", mock.Anything, product.ProductID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(50))
	})).Return(product, nil).Once()

	body := dto.UpdateStockRequest{Stock: decimal.NewFromInt(50)}
	w := s.doRequest(http.MethodPatch, "/api/v1/products/"+product.ProductID+"/stock", s.adminToken(), body)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ProductResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Stock.Equal(decimal.NewFromInt(50)))
	s.mockSvc.AssertExpectations(s.T())
}

func (s *ProductHandlerTestSuite) TestCreateProductClientForbidden() {
	body := dto.CreateProductRequest{
		Code:  "0010007",
		Name:  "Kabelis YDYP 3x2.5",
		Unit:  "m",
		Price: decimal.RequireFromString("3.80"),
	}
	w := s.doRequest(http.MethodPost, "/api/v1/products", s.clientToken(), body)
	s.Equal(http.StatusForbidden, w.Code)
	s.mockSvc.AssertNotCalled(s.T(), "CreateProduct")
}

func TestProductHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
