package repositories

import (
	"context"
	"time"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for catalog products.
type ProductReader interface {
	// FindProductByID retrieves a specific product.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProducts retrieves a filtered, paginated product listing.
	FindProducts(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error)

	// SearchProducts runs the ranked fast-entry search: exact code first,
	// exact barcode second, name prefix third, other substring matches last.
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error)

	// FindLowStockProducts lists products at or below their min_stock threshold.
	FindLowStockProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for catalog products.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct fully replaces a product's mutable fields.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product; refused while line items reference it.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductStockManager defines the in-transaction stock operations used by the
// ledger. Callers pass the pgx.Tx that owns the atomic unit.
type ProductStockManager interface {
	// FindProductsByIDsForUpdate locks the given product rows (sorted by id to
	// keep lock order stable) and returns them keyed by product id. Missing
	// products are simply absent from the map.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// ApplyStockChangesInTx adjusts stock by the signed delta per product.
	ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error
}

// ProductRepositoryFacade combines the plain CRUD surfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

// ProductRepositoryWithTx additionally exposes the ledger's stock operations.
type ProductRepositoryWithTx interface {
	ProductRepositoryFacade
	ProductStockManager
	RepositoryWithTx
}
