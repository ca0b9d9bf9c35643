package dto

import (
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a catalog product.
type CreateProductRequest struct {
	Code     string           `json:"code" binding:"required"`
	Barcode  *string          `json:"barcode"`
	Name     string           `json:"name" binding:"required"`
	Category *string          `json:"category"`
	Unit     string           `json:"unit" binding:"required,oneof=vnt m kg l"`
	Stock    decimal.Decimal  `json:"stock"`
	Price    decimal.Decimal  `json:"price" binding:"required"`
	MinStock *decimal.Decimal `json:"minStock"`
}

// UpdateProductRequest is a full replace of the mutable fields.
type UpdateProductRequest struct {
	Code     string           `json:"code" binding:"required"`
	Barcode  *string          `json:"barcode"`
	Name     string           `json:"name" binding:"required"`
	Category *string          `json:"category"`
	Unit     string           `json:"unit" binding:"required,oneof=vnt m kg l"`
	Stock    decimal.Decimal  `json:"stock"`
	Price    decimal.Decimal  `json:"price" binding:"required"`
	MinStock *decimal.Decimal `json:"minStock"`
}

// UpdateStockRequest sets the stock level directly, outside the ledger.
// Negative values are allowed: stock is signed.
type UpdateStockRequest struct {
	Stock decimal.Decimal `json:"stock"`
}

// ProductResponse is the public shape of a product.
type ProductResponse struct {
	ID       string           `json:"id"`
	Code     string           `json:"code"`
	Barcode  *string          `json:"barcode,omitempty"`
	Name     string           `json:"name"`
	Category *string          `json:"category,omitempty"`
	Unit     string           `json:"unit"`
	Stock    decimal.Decimal  `json:"stock"`
	Price    decimal.Decimal  `json:"price"`
	MinStock *decimal.Decimal `json:"minStock,omitempty"`
	LowStock bool             `json:"lowStock"`
}

// ListProductsParams defines query parameters for the product listing.
type ListProductsParams struct {
	Limit    int    `form:"limit,default=50"`
	Offset   int    `form:"offset,default=0"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// SearchProductsParams defines the fast-entry search query.
type SearchProductsParams struct {
	Query string `form:"q"`
}

// ListProductsResponse wraps the product listing.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// SearchProductsResponse wraps ranked search results.
type SearchProductsResponse struct {
	Results []ProductResponse `json:"results"`
}

// ToProductResponse converts a domain.Product to its public shape.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ProductID,
		Code:     p.Code,
		Barcode:  p.Barcode,
		Name:     p.Name,
		Category: p.Category,
		Unit:     string(p.Unit),
		Stock:    p.Stock,
		Price:    p.Price,
		MinStock: p.MinStock,
		LowStock: p.IsLowStock(),
	}
}

// ToProductResponses converts a slice of domain.Product.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
