package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const searchResultLimit = 20

type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates the catalog service for products.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func validateProduct(product domain.Product) error {
	if product.Stock.IsNegative() {
		return fmt.Errorf("stock cannot be negative: %w", apperrors.ErrValidation)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", apperrors.ErrValidation)
	}
	if product.MinStock != nil && product.MinStock.IsNegative() {
		return fmt.Errorf("minStock cannot be negative: %w", apperrors.ErrValidation)
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	now := time.Now()
	product.ProductID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error) {
	return s.productRepo.FindProducts(ctx, category, search, limit, offset)
}

// SearchProducts short-circuits queries under two characters so keystroke
// handlers can call it on every input event without hammering the database.
func (s *productService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return []domain.Product{}, nil
	}
	return s.productRepo.SearchProducts(ctx, query, searchResultLimit)
}

func (s *productService) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindLowStockProducts(ctx)
}

func (s *productService) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindProductByID(ctx, product.ProductID)
	if err != nil {
		return nil, err
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStock overwrites the stock level outside the ledger, for manual
// corrections. Negative values are accepted: stock is a signed quantity and a
// stocktaking correction may need to record a shortfall.
func (s *productService) UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) (*domain.Product, error) {
	existing, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing.Stock = stock
	existing.UpdatedAt = time.Now()

	if err := s.productRepo.UpdateProduct(ctx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.DeleteProduct(ctx, productID)
}
