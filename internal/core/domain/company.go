package domain

import "github.com/shopspring/decimal"

// Company owns zero or more projects and zero or more client users.
type Company struct {
	CompanyID string  `json:"companyID"` // Primary Key (UUID)
	Code      string  `json:"code"`      // Unique business key
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	// CreditLimit is display-only; nothing enforces it.
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	AuditFields
}
