package dto

import (
	"time"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionItemRequest is one proposed (product, quantity) line.
type CreateTransactionItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateTransactionRequest proposes a stock movement against a project.
type CreateTransactionRequest struct {
	ProjectID string                         `json:"projectID" binding:"required"`
	Type      string                         `json:"type" binding:"required,oneof=TAKE RETURN"`
	Items     []CreateTransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	Pin       *string                        `json:"pin" binding:"omitempty,len=4,numeric"`
	Notes     *string                        `json:"notes"`
}

// TransactionItemResponse is the persisted snapshot of one line item.
type TransactionItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productID"`
	ProductCode  string          `json:"productCode"`
	ProductName  string          `json:"productName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

// TransactionResponse echoes a persisted transaction with computed totals.
type TransactionResponse struct {
	ID                string                    `json:"id"`
	ProjectID         string                    `json:"projectID"`
	CompanyID         string                    `json:"companyID"`
	Type              string                    `json:"type"`
	CreatedBy         string                    `json:"createdBy"`
	ConfirmedByPin    bool                      `json:"confirmedByPin"`
	Notes             *string                   `json:"notes,omitempty"`
	CreatedAt         time.Time                 `json:"createdAt"`
	ProjectName       string                    `json:"projectName,omitempty"`
	CompanyName       string                    `json:"companyName,omitempty"`
	CreatedByUsername string                    `json:"createdByUsername,omitempty"`
	Items             []TransactionItemResponse `json:"items,omitempty"`
	TotalValue        decimal.Decimal           `json:"totalValue"`
}

// ListTransactionsParams defines the listing filters and cursor.
type ListTransactionsParams struct {
	CompanyID string  `form:"companyId"`
	ProjectID string  `form:"projectId"`
	Type      string  `form:"type" binding:"omitempty,oneof=TAKE RETURN"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions plus the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// TodayStatsResponse wraps the per-type daily summary.
type TodayStatsResponse struct {
	Stats []domain.TransactionStat `json:"stats"`
}

// ProjectStatisticsResponse summarizes one project's ledger activity.
type ProjectStatisticsResponse struct {
	Transactions []domain.TransactionStat `json:"transactions"`
	TotalValue   decimal.Decimal          `json:"totalValue"`
	ItemCount    int64                    `json:"itemCount"`
}

// ToProjectStatisticsResponse converts domain.ProjectStatistics.
func ToProjectStatisticsResponse(s *domain.ProjectStatistics) ProjectStatisticsResponse {
	return ProjectStatisticsResponse{
		Transactions: s.Transactions,
		TotalValue:   s.TotalValue,
		ItemCount:    s.ItemCount,
	}
}

// ToTransactionItemResponse converts one domain line item.
func ToTransactionItemResponse(item *domain.TransactionItem) TransactionItemResponse {
	return TransactionItemResponse{
		ID:           item.ItemID,
		ProductID:    item.ProductID,
		ProductCode:  item.ProductCode,
		ProductName:  item.ProductName,
		Quantity:     item.Quantity,
		Unit:         string(item.Unit),
		PricePerUnit: item.PricePerUnit,
		TotalPrice:   item.TotalPrice,
	}
}

// ToTransactionResponse converts a domain.Transaction with its items.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, len(t.Items))
	for i := range t.Items {
		items[i] = ToTransactionItemResponse(&t.Items[i])
	}
	return TransactionResponse{
		ID:                t.TransactionID,
		ProjectID:         t.ProjectID,
		CompanyID:         t.CompanyID,
		Type:              string(t.Type),
		CreatedBy:         t.CreatedBy,
		ConfirmedByPin:    t.ConfirmedByPin,
		Notes:             t.Notes,
		CreatedAt:         t.CreatedAt,
		ProjectName:       t.ProjectName,
		CompanyName:       t.CompanyName,
		CreatedByUsername: t.CreatedByUsername,
		Items:             items,
		TotalValue:        t.TotalValue(),
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
