package services

import (
	"context"
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates the catalog service for companies.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, company domain.Company) (*domain.Company, error) {
	if company.CreditLimit != nil && company.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("creditLimit cannot be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	company.CompanyID = uuid.NewString()
	company.CreatedAt = now
	company.UpdatedAt = now

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.companyRepo.FindCompanies(ctx)
}

func (s *companyService) UpdateCompany(ctx context.Context, company domain.Company) (*domain.Company, error) {
	if company.CreditLimit != nil && company.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("creditLimit cannot be negative: %w", apperrors.ErrValidation)
	}

	existing, err := s.companyRepo.FindCompanyByID(ctx, company.CompanyID)
	if err != nil {
		return nil, err
	}

	company.CreatedAt = existing.CreatedAt
	company.UpdatedAt = time.Now()

	if err := s.companyRepo.UpdateCompany(ctx, company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *companyService) DeleteCompany(ctx context.Context, companyID string) error {
	return s.companyRepo.DeleteCompany(ctx, companyID)
}
