package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a stock movement.
type TransactionType string

const (
	// Take decreases product stock (goods issued to a company/project).
	Take TransactionType = "TAKE"
	// Return increases product stock (goods returned to the warehouse).
	Return TransactionType = "RETURN"
)

// StockDelta returns the signed stock change a quantity of this type applies.
func (t TransactionType) StockDelta(quantity decimal.Decimal) decimal.Decimal {
	if t == Take {
		return quantity.Neg()
	}
	return quantity
}

// Transaction is one ledger entry: a stock movement against a project,
// owning its line items. Immutable once created except for deletion,
// which reverses its stock effect.
type Transaction struct {
	TransactionID  string          `json:"transactionID"` // Primary Key (UUID)
	ProjectID      string          `json:"projectID"`     // FK -> Project
	CompanyID      string          `json:"companyID"`     // Denormalized from the project
	Type           TransactionType `json:"type"`
	CreatedBy      string          `json:"createdBy"` // FK -> User
	ConfirmedByPin bool            `json:"confirmedByPin"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`

	// Joined display fields, populated on reads.
	ProjectName       string `json:"projectName,omitempty"`
	CompanyName       string `json:"companyName,omitempty"`
	CreatedByUsername string `json:"createdByUsername,omitempty"`

	Items []TransactionItem `json:"items,omitempty"`
}

// TotalValue sums the line item totals.
func (t Transaction) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// TransactionItem is one (product, quantity) line within a transaction.
// Product code, name, unit and price are snapshotted at transaction time so
// historical entries display correctly after later product edits.
type TransactionItem struct {
	ItemID        string          `json:"itemID"`        // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (cascade delete)
	ProductID     string          `json:"productID"`     // FK -> Product
	ProductCode   string          `json:"productCode"`
	ProductName   string          `json:"productName"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          Unit            `json:"unit"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	TotalPrice    decimal.Decimal `json:"totalPrice"` // quantity x pricePerUnit
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	CompanyID *string
	ProjectID *string
	Type      *TransactionType
}

// TransactionStat is one row of a per-type transaction summary.
type TransactionStat struct {
	Type       TransactionType `json:"type"`
	Count      int64           `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// ProjectStatistics summarizes a single project's ledger activity.
type ProjectStatistics struct {
	Transactions []TransactionStat `json:"transactions"`
	TotalValue   decimal.Decimal   `json:"totalValue"`
	ItemCount    int64             `json:"itemCount"`
}
