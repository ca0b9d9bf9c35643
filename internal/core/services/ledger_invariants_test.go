package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeLedger is an in-memory transaction repository that mirrors the
// stock-adjustment contract of the pgsql implementation: creation checks
// availability, snapshots product data into line items and applies the
// stock delta as one step; deletion reverses the delta.
type fakeLedger struct {
	mu       sync.Mutex
	products map[string]domain.Product
	txns     map[string]domain.Transaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		products: make(map[string]domain.Product),
		txns:     make(map[string]domain.Transaction),
	}
}

func (f *fakeLedger) addProduct(p domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ProductID] = p
}

func (f *fakeLedger) stockOf(productID string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[productID].Stock
}

func (f *fakeLedger) setPrice(productID string, price decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[productID]
	p.Price = price
	f.products[productID] = p
}

func (f *fakeLedger) CreateTransaction(ctx context.Context, txn domain.Transaction, items []domain.TransactionItem) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := totals[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		totals[item.ProductID] = totals[item.ProductID].Add(item.Quantity)
	}

	for _, productID := range order {
		product, ok := f.products[productID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
		}
		if txn.Type == domain.Take && product.Stock.LessThan(totals[productID]) {
			return nil, &apperrors.InsufficientStockError{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Available:   product.Stock,
				Unit:        string(product.Unit),
			}
		}
	}

	stored := make([]domain.TransactionItem, 0, len(order))
	for _, productID := range order {
		product := f.products[productID]
		qty := totals[productID]
		stored = append(stored, domain.TransactionItem{
			ItemID:        uuid.NewString(),
			TransactionID: txn.TransactionID,
			ProductID:     productID,
			ProductCode:   product.Code,
			ProductName:   product.Name,
			Quantity:      qty,
			Unit:          product.Unit,
			PricePerUnit:  product.Price,
			TotalPrice:    product.Price.Mul(qty),
		})
		product.Stock = product.Stock.Add(txn.Type.StockDelta(qty))
		f.products[productID] = product
	}

	txn.Items = stored
	f.txns[txn.TransactionID] = txn
	result := txn
	return &result, nil
}

func (f *fakeLedger) DeleteTransaction(ctx context.Context, transactionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	txn, ok := f.txns[transactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, item := range txn.Items {
		product, ok := f.products[item.ProductID]
		if !ok {
			continue
		}
		product.Stock = product.Stock.Add(txn.Type.StockDelta(item.Quantity).Neg())
		f.products[item.ProductID] = product
	}
	delete(f.txns, transactionID)
	return nil
}

func (f *fakeLedger) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	txn, ok := f.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	result := txn
	return &result, nil
}

func (f *fakeLedger) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Transaction, 0, len(f.txns))
	for _, txn := range f.txns {
		if filter.CompanyID != nil && txn.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		result = append(result, txn)
	}
	return result, nil, nil
}

func (f *fakeLedger) GetTodayStats(ctx context.Context) ([]domain.TransactionStat, error) {
	return nil, nil
}

func (f *fakeLedger) GetProjectStatistics(ctx context.Context, projectID string) (*domain.ProjectStatistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := &domain.ProjectStatistics{
		Transactions: []domain.TransactionStat{},
		TotalValue:   decimal.Zero,
	}
	counts := make(map[domain.TransactionType]int64)
	values := make(map[domain.TransactionType]decimal.Decimal)
	for _, txn := range f.txns {
		if txn.ProjectID != projectID {
			continue
		}
		counts[txn.Type]++
		for _, item := range txn.Items {
			values[txn.Type] = values[txn.Type].Add(item.TotalPrice)
			stats.TotalValue = stats.TotalValue.Add(item.TotalPrice)
			stats.ItemCount++
		}
	}
	for _, txType := range []domain.TransactionType{domain.Return, domain.Take} {
		if counts[txType] > 0 {
			stats.Transactions = append(stats.Transactions, domain.TransactionStat{
				Type:       txType,
				Count:      counts[txType],
				TotalValue: values[txType],
			})
		}
	}
	return stats, nil
}

var _ portsrepo.TransactionRepositoryFacade = (*fakeLedger)(nil)

type ledgerFixture struct {
	ledger  *fakeLedger
	svc     portssvc.TransactionSvcFacade
	actor   portssvc.Actor
	project *domain.Project
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	ledger := newFakeLedger()
	companyID := uuid.NewString()
	project := &domain.Project{
		ProjectID: uuid.NewString(),
		CompanyID: companyID,
		Name:      "Vilniaus objektas",
		Status:    domain.ProjectActive,
	}
	admin := &domain.User{
		UserID:   uuid.NewString(),
		Username: "admin",
		Role:     domain.RoleAdmin,
	}

	projectRepo := new(MockProjectReader)
	projectRepo.On("FindProjectByID", mock.Anything, project.ProjectID).Return(project, nil)
	userRepo := new(MockUserReader)
	userRepo.On("FindUserByID", mock.Anything, admin.UserID).Return(admin, nil)

	return &ledgerFixture{
		ledger:  ledger,
		svc:     services.NewTransactionService(ledger, projectRepo, userRepo, false),
		actor:   portssvc.Actor{UserID: admin.UserID, Role: domain.RoleAdmin},
		project: project,
	}
}

func (fx *ledgerFixture) record(t *testing.T, txType domain.TransactionType, lines ...portssvc.TransactionItemInput) *domain.Transaction {
	t.Helper()
	txn, err := fx.svc.CreateTransaction(context.Background(), fx.actor, portssvc.CreateTransactionInput{
		ProjectID: fx.project.ProjectID,
		Type:      txType,
		Items:     lines,
	})
	require.NoError(t, err)
	return txn
}

func line(productID string, qty int64) portssvc.TransactionItemInput {
	return portssvc.TransactionItemInput{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func TestLedgerTakeReturnDeleteScenario(t *testing.T) {
	fx := newLedgerFixture(t)
	productID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: productID,
		Code:      "0010006",
		Name:      "Kabelis YDYP 3x1.5",
		Unit:      domain.UnitMeter,
		Stock:     decimal.NewFromInt(100),
		Price:     decimal.RequireFromString("2.50"),
	})

	take := fx.record(t, domain.Take, line(productID, 30))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(70)))

	_, err := fx.svc.CreateTransaction(context.Background(), fx.actor, portssvc.CreateTransactionInput{
		ProjectID: fx.project.ProjectID,
		Type:      domain.Take,
		Items:     []portssvc.TransactionItemInput{line(productID, 80)},
	})
	require.Error(t, err)
	var stockErr *apperrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Equal(t, "Kabelis YDYP 3x1.5", stockErr.ProductName)
	require.True(t, stockErr.Available.Equal(decimal.NewFromInt(70)))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(70)))

	fx.record(t, domain.Return, line(productID, 10))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(80)))

	require.NoError(t, fx.svc.DeleteTransaction(context.Background(), fx.actor, take.TransactionID))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(110)))
}

func TestLedgerRejectedCreateLeavesAllStockUntouched(t *testing.T) {
	fx := newLedgerFixture(t)
	plentyID := uuid.NewString()
	scarceID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: plentyID,
		Code:      "0030015",
		Name:      "LED lempa 10W",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(200),
		Price:     decimal.RequireFromString("5.50"),
	})
	fx.ledger.addProduct(domain.Product{
		ProductID: scarceID,
		Code:      "0050001",
		Name:      "Automatinis jungiklis 16A",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(3),
		Price:     decimal.RequireFromString("15.00"),
	})

	_, err := fx.svc.CreateTransaction(context.Background(), fx.actor, portssvc.CreateTransactionInput{
		ProjectID: fx.project.ProjectID,
		Type:      domain.Take,
		Items: []portssvc.TransactionItemInput{
			line(plentyID, 10),
			line(scarceID, 5),
		},
	})
	require.Error(t, err)
	var stockErr *apperrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Equal(t, scarceID, stockErr.ProductID)

	require.True(t, fx.ledger.stockOf(plentyID).Equal(decimal.NewFromInt(200)))
	require.True(t, fx.ledger.stockOf(scarceID).Equal(decimal.NewFromInt(3)))
	txns, _, err := fx.ledger.ListTransactions(context.Background(), domain.TransactionFilter{}, 100, nil)
	require.NoError(t, err)
	require.Empty(t, txns)
}

func TestLedgerDuplicateLinesCheckedAgainstCombinedQuantity(t *testing.T) {
	fx := newLedgerFixture(t)
	productID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: productID,
		Code:      "0020001",
		Name:      "Jungiklis Schneider Electric",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(10),
		Price:     decimal.RequireFromString("8.50"),
	})

	_, err := fx.svc.CreateTransaction(context.Background(), fx.actor, portssvc.CreateTransactionInput{
		ProjectID: fx.project.ProjectID,
		Type:      domain.Take,
		Items: []portssvc.TransactionItemInput{
			line(productID, 6),
			line(productID, 6),
		},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrInsufficientStock))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(10)))
}

func TestLedgerStockConservation(t *testing.T) {
	fx := newLedgerFixture(t)
	productID := uuid.NewString()
	initial := decimal.NewFromInt(500)
	fx.ledger.addProduct(domain.Product{
		ProductID: productID,
		Code:      "0010007",
		Name:      "Kabelis YDYP 3x2.5",
		Unit:      domain.UnitMeter,
		Stock:     initial,
		Price:     decimal.RequireFromString("3.80"),
	})

	moves := []struct {
		txType domain.TransactionType
		qty    int64
	}{
		{domain.Take, 120},
		{domain.Take, 45},
		{domain.Return, 20},
		{domain.Take, 200},
		{domain.Return, 5},
	}
	net := decimal.Zero
	for _, m := range moves {
		fx.record(t, m.txType, line(productID, m.qty))
		net = net.Add(m.txType.StockDelta(decimal.NewFromInt(m.qty)))
	}

	require.True(t, fx.ledger.stockOf(productID).Equal(initial.Add(net)))
}

func TestLedgerItemsSnapshotProductDataAtCreation(t *testing.T) {
	fx := newLedgerFixture(t)
	productID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: productID,
		Code:      "0030016",
		Name:      "LED lempa 15W",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(150),
		Price:     decimal.RequireFromString("7.80"),
	})

	txn := fx.record(t, domain.Take, line(productID, 4))
	require.Len(t, txn.Items, 1)
	require.True(t, txn.Items[0].PricePerUnit.Equal(decimal.RequireFromString("7.80")))
	require.True(t, txn.Items[0].TotalPrice.Equal(decimal.RequireFromString("31.20")))

	fx.ledger.setPrice(productID, decimal.RequireFromString("9.99"))

	stored, err := fx.ledger.FindTransactionByID(context.Background(), txn.TransactionID)
	require.NoError(t, err)
	require.True(t, stored.Items[0].PricePerUnit.Equal(decimal.RequireFromString("7.80")))
	require.True(t, stored.Items[0].TotalPrice.Equal(decimal.RequireFromString("31.20")))
	require.Equal(t, "LED lempa 15W", stored.Items[0].ProductName)
}

func TestLedgerDeleteReversalCanDriveStockNegative(t *testing.T) {
	fx := newLedgerFixture(t)
	productID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: productID,
		Code:      "0040002",
		Name:      "Gofruotas vamzdis 20mm",
		Unit:      domain.UnitMeter,
		Stock:     decimal.Zero,
		Price:     decimal.RequireFromString("0.45"),
	})

	ret := fx.record(t, domain.Return, line(productID, 10))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(10)))

	fx.record(t, domain.Take, line(productID, 10))
	require.True(t, fx.ledger.stockOf(productID).IsZero())

	// The returned goods were taken out again in the meantime, so reversing
	// the return leaves a recorded shortfall rather than failing.
	require.NoError(t, fx.svc.DeleteTransaction(context.Background(), fx.actor, ret.TransactionID))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(-10)))
}

func TestLedgerItemsKeepSubmittedLineOrder(t *testing.T) {
	fx := newLedgerFixture(t)
	cableID := uuid.NewString()
	lampID := uuid.NewString()
	switchID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: cableID,
		Code:      "0010006",
		Name:      "Kabelis YDYP 3x1.5",
		Unit:      domain.UnitMeter,
		Stock:     decimal.NewFromInt(100),
		Price:     decimal.RequireFromString("2.50"),
	})
	fx.ledger.addProduct(domain.Product{
		ProductID: lampID,
		Code:      "0030015",
		Name:      "LED lempa 10W",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(50),
		Price:     decimal.RequireFromString("5.50"),
	})
	fx.ledger.addProduct(domain.Product{
		ProductID: switchID,
		Code:      "0020001",
		Name:      "Jungiklis Schneider Electric",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(30),
		Price:     decimal.RequireFromString("8.50"),
	})

	// Submitted order is not alphabetical by code or name, so any semantic
	// reordering on read would show up here.
	txn := fx.record(t, domain.Take,
		line(lampID, 2),
		line(cableID, 15),
		line(switchID, 1),
	)

	stored, err := fx.ledger.FindTransactionByID(context.Background(), txn.TransactionID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 3)
	require.Equal(t, lampID, stored.Items[0].ProductID)
	require.Equal(t, cableID, stored.Items[1].ProductID)
	require.Equal(t, switchID, stored.Items[2].ProductID)
}

func TestLedgerProjectStatisticsAggregation(t *testing.T) {
	fx := newLedgerFixture(t)
	productID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: productID,
		Code:      "0030015",
		Name:      "LED lempa 10W",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(100),
		Price:     decimal.RequireFromString("5.00"),
	})

	fx.record(t, domain.Take, line(productID, 10))
	fx.record(t, domain.Take, line(productID, 4))
	fx.record(t, domain.Return, line(productID, 2))

	stats, err := fx.svc.GetProjectStatistics(context.Background(), fx.actor, fx.project.ProjectID)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.ItemCount)
	require.True(t, stats.TotalValue.Equal(decimal.RequireFromString("80.00")))
	byType := make(map[domain.TransactionType]int64)
	for _, s := range stats.Transactions {
		byType[s.Type] = s.Count
	}
	require.Equal(t, int64(2), byType[domain.Take])
	require.Equal(t, int64(1), byType[domain.Return])
}

func TestLedgerDeleteReversesReturnTransactions(t *testing.T) {
	fx := newLedgerFixture(t)
	productID := uuid.NewString()
	fx.ledger.addProduct(domain.Product{
		ProductID: productID,
		Code:      "0060001",
		Name:      "Lizdas su įžeminimu",
		Unit:      domain.UnitPiece,
		Stock:     decimal.NewFromInt(140),
		Price:     decimal.RequireFromString("3.50"),
	})

	ret := fx.record(t, domain.Return, line(productID, 60))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(200)))

	require.NoError(t, fx.svc.DeleteTransaction(context.Background(), fx.actor, ret.TransactionID))
	require.True(t, fx.ledger.stockOf(productID).Equal(decimal.NewFromInt(140)))

	err := fx.svc.DeleteTransaction(context.Background(), fx.actor, ret.TransactionID)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}
