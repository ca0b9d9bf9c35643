package dto

import (
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest defines the data needed to create a company.
type CreateCompanyRequest struct {
	Code        string           `json:"code" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
}

// UpdateCompanyRequest is a full replace of the mutable fields.
type UpdateCompanyRequest struct {
	Code        string           `json:"code" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
}

// CompanyResponse is the public shape of a company.
type CompanyResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Email       *string          `json:"email,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Address     *string          `json:"address,omitempty"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
}

// ListCompaniesResponse wraps the company listing.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToCompanyResponse converts a domain.Company to its public shape.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.CompanyID,
		Code:        c.Code,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CreditLimit: c.CreditLimit,
	}
}

// ToCompanyResponses converts a slice of domain.Company.
func ToCompanyResponses(companies []domain.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}
