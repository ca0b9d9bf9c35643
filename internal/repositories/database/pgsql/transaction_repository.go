package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	"github.com/audriusk/sandelis_backend/internal/models"
	"github.com/audriusk/sandelis_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionItemColumns = `item_id, transaction_id, line_no, product_id, product_code, product_name, quantity, unit, price_per_unit, total_price`

type PgxTransactionRepository struct {
	BaseRepository
	stock portsrepo.ProductStockManager
}

func newPgxTransactionRepository(db *pgxpool.Pool, stock portsrepo.ProductStockManager) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: db},
		stock:          stock,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		ProjectID:         m.ProjectID,
		CompanyID:         m.CompanyID,
		Type:              domain.TransactionType(m.Type),
		CreatedBy:         m.CreatedBy,
		ConfirmedByPin:    m.ConfirmedByPin,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
		ProjectName:       m.ProjectName,
		CompanyName:       m.CompanyName,
		CreatedByUsername: m.CreatedByUsername,
	}
}

func toDomainTransactionItem(m models.TransactionItem) domain.TransactionItem {
	return domain.TransactionItem{
		ItemID:        m.ItemID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		ProductCode:   m.ProductCode,
		ProductName:   m.ProductName,
		Quantity:      m.Quantity,
		Unit:          domain.Unit(m.Unit),
		PricePerUnit:  m.PricePerUnit,
		TotalPrice:    m.TotalPrice,
	}
}

func scanTransactionItem(row pgx.Row) (models.TransactionItem, error) {
	var m models.TransactionItem
	err := row.Scan(
		&m.ItemID,
		&m.TransactionID,
		&m.LineNo,
		&m.ProductID,
		&m.ProductCode,
		&m.ProductName,
		&m.Quantity,
		&m.Unit,
		&m.PricePerUnit,
		&m.TotalPrice,
	)
	return m, err
}

// CreateTransaction runs the whole movement as one database transaction: it
// locks the touched products, validates existence and stock, snapshots the
// catalog data into the line items, writes everything and applies the stock
// deltas. Any failure rolls the whole unit back.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction, items []domain.TransactionItem) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	// Merge duplicate product lines so the stock check sees the combined
	// quantity.
	totals := make(map[string]decimal.Decimal)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := totals[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		totals[item.ProductID] = totals[item.ProductID].Add(item.Quantity)
	}

	locked, err := r.stock.FindProductsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		product, ok := locked[id]
		if !ok {
			return nil, fmt.Errorf("product %s not found: %w", id, apperrors.ErrNotFound)
		}
		if txn.Type == domain.Take && product.Stock.LessThan(totals[id]) {
			return nil, &apperrors.InsufficientStockError{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Available:   product.Stock,
				Unit:        string(product.Unit),
			}
		}
	}

	// Snapshot the catalog data as of this movement.
	persisted := make([]domain.TransactionItem, len(items))
	for i, item := range items {
		product := locked[item.ProductID]
		persisted[i] = domain.TransactionItem{
			ItemID:        uuid.NewString(),
			TransactionID: txn.TransactionID,
			ProductID:     product.ProductID,
			ProductCode:   product.Code,
			ProductName:   product.Name,
			Quantity:      item.Quantity,
			Unit:          product.Unit,
			PricePerUnit:  product.Price,
			TotalPrice:    product.Price.Mul(item.Quantity),
		}
	}

	headerQuery := `
        INSERT INTO transactions (transaction_id, project_id, company_id, type, created_by, confirmed_by_pin, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err = tx.Exec(ctx, headerQuery,
		txn.TransactionID,
		txn.ProjectID,
		txn.CompanyID,
		string(txn.Type),
		txn.CreatedBy,
		txn.ConfirmedByPin,
		txn.Notes,
		txn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	itemQuery := `
        INSERT INTO transaction_items (` + transactionItemColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	batch := &pgx.Batch{}
	for i, item := range persisted {
		batch.Queue(itemQuery,
			item.ItemID,
			item.TransactionID,
			i,
			item.ProductID,
			item.ProductCode,
			item.ProductName,
			item.Quantity,
			string(item.Unit),
			item.PricePerUnit,
			item.TotalPrice,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range persisted {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, fmt.Errorf("failed to insert transaction item: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close item batch: %w", err)
	}

	changes := make(map[string]decimal.Decimal, len(totals))
	for id, qty := range totals {
		changes[id] = txn.Type.StockDelta(qty)
	}
	if err := r.stock.ApplyStockChangesInTx(ctx, tx, changes, txn.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	txn.Items = persisted
	return &txn, nil
}

// DeleteTransaction reverses the movement's stock effect and removes the
// header; line items go with it via cascade. Products deleted since the
// movement are skipped rather than failing the reversal.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	var txnType string
	err = tx.QueryRow(ctx, `SELECT type FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID).Scan(&txnType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}

	rows, err := tx.Query(ctx, `SELECT product_id, quantity FROM transaction_items WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load transaction items: %w", err)
	}
	totals := make(map[string]decimal.Decimal)
	ids := []string{}
	for rows.Next() {
		var productID string
		var quantity decimal.Decimal
		if err := rows.Scan(&productID, &quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		if _, seen := totals[productID]; !seen {
			ids = append(ids, productID)
		}
		totals[productID] = totals[productID].Add(quantity)
	}
	rows.Close()
	if rows.Err() != nil {
		return fmt.Errorf("error iterating transaction item rows: %w", rows.Err())
	}

	locked, err := r.stock.FindProductsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return err
	}

	changes := make(map[string]decimal.Decimal)
	for id, qty := range totals {
		if _, ok := locked[id]; !ok {
			continue
		}
		changes[id] = domain.TransactionType(txnType).StockDelta(qty).Neg()
	}
	if len(changes) > 0 {
		if err := r.stock.ApplyStockChangesInTx(ctx, tx, changes, time.Now()); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return r.Commit(ctx, tx)
}

const transactionSelect = `
    SELECT t.transaction_id, t.project_id, t.company_id, t.type, t.created_by,
           t.confirmed_by_pin, t.notes, t.created_at,
           p.name AS project_name, c.name AS company_name, u.username AS created_by_username
    FROM transactions t
    JOIN projects p ON p.project_id = t.project_id
    JOIN companies c ON c.company_id = t.company_id
    JOIN users u ON u.user_id = t.created_by
`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ProjectID,
		&m.CompanyID,
		&m.Type,
		&m.CreatedBy,
		&m.ConfirmedByPin,
		&m.Notes,
		&m.CreatedAt,
		&m.ProjectName,
		&m.CompanyName,
		&m.CreatedByUsername,
	)
	return m, err
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := toDomainTransaction(m)
	items, err := r.findItemsByTransactionIDs(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn.Items = items[transactionID]
	return &txn, nil
}

// ListTransactions pages newest first with an opaque keyset cursor. The page
// is fetched one row over the limit to decide whether a next cursor exists.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	conditions := []string{}
	args := []any{}
	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		conditions = append(conditions, fmt.Sprintf("t.company_id = $%d", len(args)))
	}
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		conditions = append(conditions, fmt.Sprintf("t.project_id = $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, fmt.Sprintf("t.type = $%d", len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, cursorTime)
		timeArg := len(args)
		args = append(args, cursorID)
		conditions = append(conditions, fmt.Sprintf("(t.created_at, t.transaction_id) < ($%d, $%d)", timeArg, len(args)))
	}

	query := transactionSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var newToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		newToken = &token
	}

	if len(txns) > 0 {
		ids := make([]string, len(txns))
		for i := range txns {
			ids[i] = txns[i].TransactionID
		}
		itemsByTxn, err := r.findItemsByTransactionIDs(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for i := range txns {
			txns[i].Items = itemsByTxn[txns[i].TransactionID]
		}
	}

	return txns, newToken, nil
}

func (r *PgxTransactionRepository) findItemsByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionItem, error) {
	query := `
        SELECT ` + transactionItemColumns + `
        FROM transaction_items
        WHERE transaction_id = ANY($1)
        ORDER BY transaction_id, line_no;
    `
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.TransactionItem, len(transactionIDs))
	for rows.Next() {
		m, err := scanTransactionItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		result[m.TransactionID] = append(result[m.TransactionID], toDomainTransactionItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction item rows: %w", rows.Err())
	}
	return result, nil
}

func (r *PgxTransactionRepository) GetProjectStatistics(ctx context.Context, projectID string) (*domain.ProjectStatistics, error) {
	perTypeQuery := `
        SELECT t.type, COUNT(DISTINCT t.transaction_id), COALESCE(SUM(ti.total_price), 0)
        FROM transactions t
        LEFT JOIN transaction_items ti ON ti.transaction_id = t.transaction_id
        WHERE t.project_id = $1
        GROUP BY t.type
        ORDER BY t.type;
    `
	rows, err := r.Pool.Query(ctx, perTypeQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project statistics: %w", err)
	}
	defer rows.Close()

	stats := &domain.ProjectStatistics{
		Transactions: []domain.TransactionStat{},
		TotalValue:   decimal.Zero,
	}
	for rows.Next() {
		var s domain.TransactionStat
		var txnType string
		if err := rows.Scan(&txnType, &s.Count, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("failed to scan project statistics row: %w", err)
		}
		s.Type = domain.TransactionType(txnType)
		stats.Transactions = append(stats.Transactions, s)
		stats.TotalValue = stats.TotalValue.Add(s.TotalValue)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating project statistics rows: %w", rows.Err())
	}

	itemsQuery := `
        SELECT COUNT(*)
        FROM transaction_items ti
        JOIN transactions t ON t.transaction_id = ti.transaction_id
        WHERE t.project_id = $1;
    `
	if err := r.Pool.QueryRow(ctx, itemsQuery, projectID).Scan(&stats.ItemCount); err != nil {
		return nil, fmt.Errorf("failed to count project items: %w", err)
	}
	return stats, nil
}

func (r *PgxTransactionRepository) GetTodayStats(ctx context.Context) ([]domain.TransactionStat, error) {
	query := `
        SELECT t.type, COUNT(DISTINCT t.transaction_id), COALESCE(SUM(ti.total_price), 0)
        FROM transactions t
        LEFT JOIN transaction_items ti ON ti.transaction_id = t.transaction_id
        WHERE t.created_at >= date_trunc('day', now())
        GROUP BY t.type
        ORDER BY t.type;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query today stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.TransactionStat{}
	for rows.Next() {
		var s domain.TransactionStat
		var txnType string
		if err := rows.Scan(&txnType, &s.Count, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		s.Type = domain.TransactionType(txnType)
		stats = append(stats, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stats rows: %w", rows.Err())
	}
	return stats, nil
}
