package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	"github.com/audriusk/sandelis_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productColumns = `product_id, code, barcode, name, category, unit, stock, price, min_stock, created_at, updated_at`

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(db *pgxpool.Pool) portsrepo.ProductRepositoryWithTx {
	return &PgxProductRepository{BaseRepository{Pool: db}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryWithTx
var _ portsrepo.ProductRepositoryWithTx = (*PgxProductRepository)(nil)

func toModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID: d.ProductID,
		Code:      d.Code,
		Barcode:   d.Barcode,
		Name:      d.Name,
		Category:  d.Category,
		Unit:      string(d.Unit),
		Stock:     d.Stock,
		Price:     d.Price,
		MinStock:  d.MinStock,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID: m.ProductID,
		Code:      m.Code,
		Barcode:   m.Barcode,
		Name:      m.Name,
		Category:  m.Category,
		Unit:      domain.Unit(m.Unit),
		Stock:     m.Stock,
		Price:     m.Price,
		MinStock:  m.MinStock,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Code,
		&m.Barcode,
		&m.Name,
		&m.Category,
		&m.Unit,
		&m.Stock,
		&m.Price,
		&m.MinStock,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// mapProductWriteError translates constraint violations into app errors the
// handlers can classify.
func mapProductWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		if strings.Contains(pgConstraintName(err), "barcode") {
			return fmt.Errorf("product barcode already in use: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("product code already in use: %w", apperrors.ErrDuplicate)
	case pgForeignKeyViolation:
		return fmt.Errorf("product is referenced by transaction items: %w", apperrors.ErrConflict)
	}
	return err
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	query := `
        INSERT INTO products (` + productColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Code,
		m.Barcode,
		m.Name,
		m.Category,
		m.Unit,
		m.Stock,
		m.Price,
		m.MinStock,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", mapProductWriteError(err))
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	d := toDomainProduct(m)
	return &d, nil
}

func (r *PgxProductRepository) FindProducts(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products`
	conditions := []string{}
	args := []any{}
	if category != "" {
		args = append(args, category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// SearchProducts ranks matches for fast entry: an exact code match comes
// first, then an exact barcode match, then name prefixes, then the rest.
func (r *PgxProductRepository) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}

	sqlQuery := `
        SELECT ` + productColumns + `
        FROM products
        WHERE code ILIKE '%' || $1 || '%'
           OR name ILIKE '%' || $1 || '%'
           OR barcode ILIKE '%' || $1 || '%'
        ORDER BY CASE
            WHEN lower(code) = lower($1) THEN 0
            WHEN lower(barcode) = lower($1) THEN 1
            WHEN name ILIKE $1 || '%' THEN 2
            ELSE 3
        END, name ASC
        LIMIT $2;
    `
	rows, err := r.Pool.Query(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PgxProductRepository) FindLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE min_stock IS NOT NULL AND stock <= min_stock
        ORDER BY name ASC;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	query := `
        UPDATE products
        SET code = $1, barcode = $2, name = $3, category = $4, unit = $5,
            stock = $6, price = $7, min_stock = $8, updated_at = $9
        WHERE product_id = $10;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Barcode,
		m.Name,
		m.Category,
		m.Unit,
		m.Stock,
		m.Price,
		m.MinStock,
		m.UpdatedAt,
		m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", mapProductWriteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE product_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", mapProductWriteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// FindProductsByIDsForUpdate locks the rows for the duration of the caller's
// transaction. IDs are sorted first so concurrent movements always acquire
// locks in the same order.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	sorted := make([]string, len(productIDs))
	copy(sorted, productIDs)
	sort.Strings(sorted)

	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE product_id = ANY($1)
        ORDER BY product_id
        FOR UPDATE;
    `
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Product, len(sorted))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked product row: %w", err)
		}
		result[m.ProductID] = toDomainProduct(m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating locked product rows: %w", rows.Err())
	}
	return result, nil
}

// ApplyStockChangesInTx applies the signed deltas inside the caller's
// transaction. Product order is fixed to match the lock order above.
func (r *PgxProductRepository) ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error {
	ids := make([]string, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := &pgx.Batch{}
	query := `UPDATE products SET stock = stock + $1, updated_at = $2 WHERE product_id = $3;`
	for _, id := range ids {
		batch.Queue(query, changes[id], now, id)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, id := range ids {
		cmdTag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to adjust stock for product %s: %w", id, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("product %s disappeared during stock adjustment: %w", id, apperrors.ErrNotFound)
		}
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, toDomainProduct(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}
	return products, nil
}
