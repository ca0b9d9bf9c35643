package domain

import "github.com/shopspring/decimal"

// Unit is the measurement unit a product is stocked in.
type Unit string

const (
	UnitPiece    Unit = "vnt"
	UnitMeter    Unit = "m"
	UnitKilogram Unit = "kg"
	UnitLiter    Unit = "l"
)

// Product is a catalog entry with a running stock level.
// Stock is mutated only by the transaction ledger (and direct admin edits);
// it is always the sum of signed historical movements against the product.
type Product struct {
	ProductID string           `json:"productID"` // Primary Key (UUID)
	Code      string           `json:"code"`      // Unique business key
	Barcode   *string          `json:"barcode,omitempty"`
	Name      string           `json:"name"`
	Category  *string          `json:"category,omitempty"`
	Unit      Unit             `json:"unit"`
	Stock     decimal.Decimal  `json:"stock"`
	Price     decimal.Decimal  `json:"price"`
	MinStock  *decimal.Decimal `json:"minStock,omitempty"` // Advisory low-stock threshold
	AuditFields
}

// IsLowStock reports whether stock has fallen to or below the advisory threshold.
func (p Product) IsLowStock() bool {
	return p.MinStock != nil && p.Stock.LessThanOrEqual(*p.MinStock)
}
