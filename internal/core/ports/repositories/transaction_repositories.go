package repositories

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// TransactionReader defines read operations for the stock-movement ledger.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its line items and
	// display names joined in.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns a filtered page, newest first, plus the cursor
	// for the next page when more rows remain.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// GetTodayStats summarizes today's transactions per type.
	GetTodayStats(ctx context.Context) ([]domain.TransactionStat, error)

	// GetProjectStatistics summarizes all of a project's transactions.
	GetProjectStatistics(ctx context.Context, projectID string) (*domain.ProjectStatistics, error)
}

// TransactionWriter defines the atomic ledger mutations. Both operations run
// the header write, item writes and stock adjustments inside one database
// transaction.
type TransactionWriter interface {
	// CreateTransaction validates stock under row locks, snapshots the line
	// items and applies the stock deltas, all-or-nothing. Returns the
	// persisted transaction with item ids filled in.
	CreateTransaction(ctx context.Context, txn domain.Transaction, items []domain.TransactionItem) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its stock effect.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines the read and write surfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
