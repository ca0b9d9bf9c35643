package services

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Actor identifies the authenticated caller as carried by the access token.
type Actor struct {
	UserID    string
	Role      domain.Role
	CompanyID *string
}

// TransactionItemInput is one proposed (product, quantity) line.
type TransactionItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// CreateTransactionInput carries a proposed stock movement.
type CreateTransactionInput struct {
	ProjectID string
	Type      domain.TransactionType
	Items     []TransactionItemInput
	Pin       *string
	Notes     *string
}

// TransactionSvcFacade defines the stock-movement ledger operations.
type TransactionSvcFacade interface {
	// CreateTransaction validates the proposal, enforces company scoping and
	// PIN confirmation, then commits the movement atomically.
	CreateTransaction(ctx context.Context, actor Actor, input CreateTransactionInput) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its line items.
	GetTransactionByID(ctx context.Context, actor Actor, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns a filtered page, newest first. CLIENT callers
	// are always scoped to their own company.
	ListTransactions(ctx context.Context, actor Actor, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// DeleteTransaction reverses a transaction's stock effect and removes it.
	// Admin only.
	DeleteTransaction(ctx context.Context, actor Actor, transactionID string) error

	// GetTodayStats summarizes today's transactions per type.
	GetTodayStats(ctx context.Context) ([]domain.TransactionStat, error)

	// GetProjectStatistics summarizes one project's ledger activity. CLIENT
	// callers may only see projects of their own company.
	GetProjectStatistics(ctx context.Context, actor Actor, projectID string) (*domain.ProjectStatistics, error)
}
