package models

import "github.com/shopspring/decimal"

// Product is the database shape of a product row.
type Product struct {
	ProductID string           `db:"product_id"`
	Code      string           `db:"code"`
	Barcode   *string          `db:"barcode"`
	Name      string           `db:"name"`
	Category  *string          `db:"category"`
	Unit      string           `db:"unit"`
	Stock     decimal.Decimal  `db:"stock"`
	Price     decimal.Decimal  `db:"price"`
	MinStock  *decimal.Decimal `db:"min_stock"`
	AuditFields
}

// Company is the database shape of a company row.
type Company struct {
	CompanyID   string           `db:"company_id"`
	Code        string           `db:"code"`
	Name        string           `db:"name"`
	Email       *string          `db:"email"`
	Phone       *string          `db:"phone"`
	Address     *string          `db:"address"`
	CreditLimit *decimal.Decimal `db:"credit_limit"`
	AuditFields
}

// Project is the database shape of a project row.
type Project struct {
	ProjectID string `db:"project_id"`
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Status    string `db:"status"`
	AuditFields
}
