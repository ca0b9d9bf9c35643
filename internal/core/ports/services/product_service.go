package services

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductSvcFacade defines the catalog operations for products.
type ProductSvcFacade interface {
	// CreateProduct registers a new product after validation.
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// GetProductByID retrieves a specific product.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a filtered, paginated product listing.
	ListProducts(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error)

	// SearchProducts runs the ranked fast-entry search. Queries shorter than
	// two characters return an empty result without touching the database.
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)

	// ListLowStockProducts lists products at or below their reorder threshold.
	ListLowStockProducts(ctx context.Context) ([]domain.Product, error)

	// UpdateProduct fully replaces a product's mutable fields.
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// UpdateStock sets the stock level directly, bypassing the ledger. Meant
	// for manual corrections such as stocktaking adjustments.
	UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) (*domain.Product, error)

	// DeleteProduct removes a product not referenced by any line item.
	DeleteProduct(ctx context.Context, productID string) error
}
