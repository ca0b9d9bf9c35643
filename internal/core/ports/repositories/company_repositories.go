package repositories

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// CompanyReader defines read operations for companies.
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindCompanies retrieves all companies ordered by name.
	FindCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriter defines write operations for companies.
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany fully replaces a company's mutable fields.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// DeleteCompany removes a company; refused while projects or users reference it.
	DeleteCompany(ctx context.Context, companyID string) error
}

// CompanyRepositoryFacade combines the read and write surfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
