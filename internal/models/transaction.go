package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database shape of a ledger entry, including the
// display columns joined from projects, companies and users on reads.
type Transaction struct {
	TransactionID  string    `db:"transaction_id"`
	ProjectID      string    `db:"project_id"`
	CompanyID      string    `db:"company_id"`
	Type           string    `db:"type"`
	CreatedBy      string    `db:"created_by"`
	ConfirmedByPin bool      `db:"confirmed_by_pin"`
	Notes          *string   `db:"notes"`
	CreatedAt      time.Time `db:"created_at"`

	ProjectName       string `db:"project_name"`
	CompanyName       string `db:"company_name"`
	CreatedByUsername string `db:"created_by_username"`
}

// TransactionItem is the database shape of a line item row. LineNo keeps the
// submitted line order so reads reproduce the document as entered.
type TransactionItem struct {
	ItemID        string          `db:"item_id"`
	TransactionID string          `db:"transaction_id"`
	LineNo        int             `db:"line_no"`
	ProductID     string          `db:"product_id"`
	ProductCode   string          `db:"product_code"`
	ProductName   string          `db:"product_name"`
	Quantity      decimal.Decimal `db:"quantity"`
	Unit          string          `db:"unit"`
	PricePerUnit  decimal.Decimal `db:"price_per_unit"`
	TotalPrice    decimal.Decimal `db:"total_price"`
}
