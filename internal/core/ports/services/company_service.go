package services

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// CompanySvcFacade defines the catalog operations for companies.
type CompanySvcFacade interface {
	// CreateCompany registers a new company after validation.
	CreateCompany(ctx context.Context, company domain.Company) (*domain.Company, error)

	// GetCompanyByID retrieves a specific company.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all companies ordered by name.
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	// UpdateCompany fully replaces a company's mutable fields.
	UpdateCompany(ctx context.Context, company domain.Company) (*domain.Company, error)

	// DeleteCompany removes a company not referenced by projects or users.
	DeleteCompany(ctx context.Context, companyID string) error
}
