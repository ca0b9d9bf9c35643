package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/utils"
	"github.com/google/uuid"
)

type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	projectRepo portsrepo.ProjectReader
	userRepo    portsrepo.UserReader

	// adminPinRequired extends PIN confirmation to admins. Clients always
	// confirm with a PIN.
	adminPinRequired bool
}

// NewTransactionService creates the stock-movement ledger service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, projectRepo portsrepo.ProjectReader, userRepo portsrepo.UserReader, adminPinRequired bool) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:          txnRepo,
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		adminPinRequired: adminPinRequired,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates the proposal top-down: line items, movement
// type, project, company authorization, then PIN. Stock and product existence
// are checked by the repository under row locks, so concurrent movements
// cannot oversell.
func (s *transactionService) CreateTransaction(ctx context.Context, actor portssvc.Actor, input portssvc.CreateTransactionInput) (*domain.Transaction, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("at least one item is required: %w", apperrors.ErrValidation)
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("item productID is required: %w", apperrors.ErrValidation)
		}
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("item quantity must be positive: %w", apperrors.ErrValidation)
		}
	}
	if input.Type != domain.Take && input.Type != domain.Return {
		return nil, fmt.Errorf("invalid transaction type %q: %w", input.Type, apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if !user.BelongsToCompany(project.CompanyID) {
		return nil, fmt.Errorf("project belongs to another company: %w", apperrors.ErrForbidden)
	}

	confirmed, err := s.confirmPin(user, input.Pin)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		ProjectID:      project.ProjectID,
		CompanyID:      project.CompanyID,
		Type:           input.Type,
		CreatedBy:      user.UserID,
		ConfirmedByPin: confirmed,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}
	items := make([]domain.TransactionItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = domain.TransactionItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return s.txnRepo.CreateTransaction(ctx, txn, items)
}

// confirmPin applies the confirmation policy: a supplied PIN is always
// verified, and callers who must confirm cannot omit it.
func (s *transactionService) confirmPin(user *domain.User, pin *string) (bool, error) {
	required := user.Role == domain.RoleClient || s.adminPinRequired

	if pin != nil && *pin != "" {
		if !user.HasPin() {
			return false, apperrors.ErrPinNotSet
		}
		if !utils.CheckPinHash(*pin, *user.PinHash) {
			return false, apperrors.ErrPinMismatch
		}
		return true, nil
	}

	if required {
		if !user.HasPin() {
			return false, apperrors.ErrPinNotSet
		}
		return false, fmt.Errorf("pin confirmation required: %w", apperrors.ErrValidation)
	}
	return false, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, actor portssvc.Actor, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		if actor.CompanyID == nil || *actor.CompanyID != txn.CompanyID {
			return nil, apperrors.ErrNotFound
		}
	}
	return txn, nil
}

// ListTransactions pins client callers to their own company regardless of the
// requested filter.
func (s *transactionService) ListTransactions(ctx context.Context, actor portssvc.Actor, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if actor.Role != domain.RoleAdmin {
		if actor.CompanyID == nil {
			return nil, nil, apperrors.ErrForbidden
		}
		filter.CompanyID = actor.CompanyID
	}
	return s.txnRepo.ListTransactions(ctx, filter, limit, nextToken)
}

func (s *transactionService) DeleteTransaction(ctx context.Context, actor portssvc.Actor, transactionID string) error {
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("only admins can delete transactions: %w", apperrors.ErrForbidden)
	}
	return s.txnRepo.DeleteTransaction(ctx, transactionID)
}

func (s *transactionService) GetTodayStats(ctx context.Context) ([]domain.TransactionStat, error) {
	return s.txnRepo.GetTodayStats(ctx)
}

func (s *transactionService) GetProjectStatistics(ctx context.Context, actor portssvc.Actor, projectID string) (*domain.ProjectStatistics, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		if actor.CompanyID == nil || *actor.CompanyID != project.CompanyID {
			return nil, fmt.Errorf("project belongs to another company: %w", apperrors.ErrForbidden)
		}
	}
	return s.txnRepo.GetProjectStatistics(ctx, projectID)
}
