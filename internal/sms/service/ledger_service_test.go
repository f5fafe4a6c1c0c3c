package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupLedgerTest(t *testing.T) (*gorm.DB, *LedgerService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, NewLedgerService(db, nil)
}

func seedProduct(t *testing.T, db *gorm.DB, code string, stock, threshold int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ProductCode:       code,
		Description:       "Test product " + code,
		Brand:             "Acme",
		Model:             "M-" + code,
		UnitPrice:         decimal.NewFromInt(100),
		CurrentStock:      stock,
		MinStockThreshold: threshold,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return p
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p entity.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("Failed to reload product: %v", err)
	}
	return p.CurrentStock
}

// TestReceiveGoodsCreatesAndAccumulates tests that receiving creates unknown
// products and accumulates stock for known ones.
func TestReceiveGoodsCreatesAndAccumulates(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	req := &ReceiveGoodsRequest{
		GRNNumber:    "GRN-001",
		SupplierName: "Supplier A",
		DateReceived: time.Now(),
		Items: []GRNItemRequest{
			{ProductCode: "P-100", Description: "Brake pad", Quantity: 20, PricePerUnit: decimal.NewFromInt(50)},
		},
	}
	grn, err := svc.ReceiveGoods(ctx, req)
	if err != nil {
		t.Fatalf("ReceiveGoods failed: %v", err)
	}
	if !grn.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected GRN total 1000, got %s", grn.TotalAmount)
	}

	var p entity.Product
	if err := db.Where("product_code = ?", "P-100").First(&p).Error; err != nil {
		t.Fatalf("expected product to be created: %v", err)
	}
	if p.CurrentStock != 20 {
		t.Fatalf("expected stock 20, got %d", p.CurrentStock)
	}
	if p.MinStockThreshold != 10 {
		t.Fatalf("expected default threshold 10, got %d", p.MinStockThreshold)
	}

	// Second receipt for the same product accumulates
	req2 := &ReceiveGoodsRequest{
		GRNNumber:    "GRN-002",
		SupplierName: "Supplier A",
		DateReceived: time.Now(),
		Items: []GRNItemRequest{
			{ProductCode: "P-100", Description: "Brake pad v2", Quantity: 5, PricePerUnit: decimal.NewFromInt(50)},
		},
	}
	if _, err := svc.ReceiveGoods(ctx, req2); err != nil {
		t.Fatalf("second ReceiveGoods failed: %v", err)
	}
	if got := productStock(t, db, p.ID); got != 25 {
		t.Fatalf("expected accumulated stock 25, got %d", got)
	}
}

// TestReceiveGoodsDuplicateNumber tests that a reused GRN number is rejected.
func TestReceiveGoodsDuplicateNumber(t *testing.T) {
	_, svc := setupLedgerTest(t)
	ctx := context.Background()

	req := &ReceiveGoodsRequest{
		GRNNumber:    "GRN-DUP",
		SupplierName: "Supplier A",
		DateReceived: time.Now(),
		Items: []GRNItemRequest{
			{ProductCode: "P-200", Quantity: 1},
		},
	}
	if _, err := svc.ReceiveGoods(ctx, req); err != nil {
		t.Fatalf("first ReceiveGoods failed: %v", err)
	}

	_, err := svc.ReceiveGoods(ctx, req)
	var dup *DuplicateDocumentNumberError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateDocumentNumberError, got %v", err)
	}
}

// TestCreateSaleDeductsStockAndTotals tests the happy path of a sale.
func TestCreateSaleDeductsStockAndTotals(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	p := seedProduct(t, db, "P-300", 50, 10)

	req := &CreateSaleRequest{
		InvoiceNumber: "INV-001",
		CustomerName:  "Walk-in",
		DateOfSale:    time.Now(),
		Discount:      decimal.NewFromInt(30),
		Items: []SaleItemRequest{
			{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(110)},
		},
	}
	inv, err := svc.CreateSale(ctx, req)
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	// total = 3*110 - 30
	if !inv.TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected total 300, got %s", inv.TotalAmount)
	}
	if got := productStock(t, db, p.ID); got != 47 {
		t.Fatalf("expected stock 47, got %d", got)
	}
}

// TestCreateSaleInsufficientStockRollsBack tests that an oversell leaves no
// partial state behind: no invoice, no items, stock untouched.
func TestCreateSaleInsufficientStockRollsBack(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	ok := seedProduct(t, db, "P-400", 50, 10)
	low := seedProduct(t, db, "P-401", 2, 10)

	req := &CreateSaleRequest{
		InvoiceNumber: "INV-002",
		CustomerName:  "Walk-in",
		DateOfSale:    time.Now(),
		Items: []SaleItemRequest{
			{ProductID: ok.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: low.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
		},
	}
	_, err := svc.CreateSale(ctx, req)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.ProductCode != "P-401" {
		t.Fatalf("expected failing product P-401, got %s", insufficient.ProductCode)
	}

	var count int64
	db.Model(&entity.SalesInvoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no invoice rows after rollback, got %d", count)
	}
	if got := productStock(t, db, ok.ID); got != 50 {
		t.Fatalf("expected stock of first product untouched, got %d", got)
	}
}

// TestCreateSaleCumulativeQuantityPerProduct tests that multiple lines for the
// same product are validated against stock as a sum.
func TestCreateSaleCumulativeQuantityPerProduct(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	p := seedProduct(t, db, "P-500", 10, 2)

	req := &CreateSaleRequest{
		InvoiceNumber: "INV-003",
		CustomerName:  "Walk-in",
		DateOfSale:    time.Now(),
		Items: []SaleItemRequest{
			{ProductID: p.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: p.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(10)},
		},
	}
	_, err := svc.CreateSale(ctx, req)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError for cumulative 12 > 10, got %v", err)
	}
	if insufficient.Requested != 12 {
		t.Fatalf("expected requested 12, got %d", insufficient.Requested)
	}
}

// TestCreateSaleEmitsLowStockAlert tests that a sale dropping stock below the
// threshold writes one active alert, and an issue order does not.
func TestCreateSaleEmitsLowStockAlert(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	p := seedProduct(t, db, "P-600", 12, 10)

	req := &CreateSaleRequest{
		InvoiceNumber: "INV-004",
		CustomerName:  "Walk-in",
		DateOfSale:    time.Now(),
		Items: []SaleItemRequest{
			{ProductID: p.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(10)},
		},
	}
	if _, err := svc.CreateSale(ctx, req); err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	var alerts []entity.Alert
	if err := db.Where("product_id = ?", p.ID).Find(&alerts).Error; err != nil {
		t.Fatalf("Failed to load alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Status != entity.AlertStatusActive {
		t.Fatalf("expected active alert, got %s", alerts[0].Status)
	}
	if alerts[0].Message != "Low stock alert for Test product P-600: 8 remaining." {
		t.Fatalf("unexpected alert message: %q", alerts[0].Message)
	}
}

// TestIssueStockDeductsWithoutAlert tests that issuing stock validates
// sufficiency but never writes alerts or pricing.
func TestIssueStockDeductsWithoutAlert(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	rep := testutil.SeedTestUser(t, db, "Rep One", "rep@test.com", "secret", entity.RoleRep)
	p := seedProduct(t, db, "P-700", 12, 10)

	req := &IssueStockRequest{
		IssueOrderNumber: "ISS-001",
		RepID:            rep.ID,
		DateOfOrder:      time.Now(),
		Items: []IssueItemRequest{
			{ProductID: p.ID, Quantity: 4},
		},
	}
	if _, err := svc.IssueStock(ctx, req); err != nil {
		t.Fatalf("IssueStock failed: %v", err)
	}
	if got := productStock(t, db, p.ID); got != 8 {
		t.Fatalf("expected stock 8, got %d", got)
	}

	var alertCount int64
	db.Model(&entity.Alert{}).Count(&alertCount)
	if alertCount != 0 {
		t.Fatalf("expected no alerts from issue order, got %d", alertCount)
	}

	// Oversized issue is rejected the same way a sale is
	over := &IssueStockRequest{
		IssueOrderNumber: "ISS-002",
		RepID:            rep.ID,
		DateOfOrder:      time.Now(),
		Items: []IssueItemRequest{
			{ProductID: p.ID, Quantity: 9},
		},
	}
	_, err := svc.IssueStock(ctx, over)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
}

// TestCreateReturnRestocksAndTotals tests the happy path of a credit note.
func TestCreateReturnRestocksAndTotals(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	p := seedProduct(t, db, "P-800", 20, 2)
	customer := &entity.Customer{CustomerName: "Retail Co"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}

	inv, err := svc.CreateSale(ctx, &CreateSaleRequest{
		InvoiceNumber: "INV-005",
		CustomerID:    &customer.ID,
		CustomerName:  customer.CustomerName,
		DateOfSale:    time.Now(),
		Items: []SaleItemRequest{
			{ProductID: p.ID, Quantity: 7, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	cn, err := svc.CreateReturn(ctx, &CreateReturnRequest{
		CreditNoteNumber: "CN-001",
		InvoiceID:        inv.ID,
		CustomerID:       customer.ID,
		DateOfReturn:     time.Now(),
		DiscountPercent:  decimal.NewFromInt(10),
		Items: []ReturnItemRequest{
			{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("CreateReturn failed: %v", err)
	}

	if !cn.TotalBillValue.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected bill value 200, got %s", cn.TotalBillValue)
	}
	if !cn.DiscountAmount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected discount 20, got %s", cn.DiscountAmount)
	}
	if !cn.GrandTotal.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("expected grand total 180, got %s", cn.GrandTotal)
	}

	// 20 - 7 sold + 2 returned
	if got := productStock(t, db, p.ID); got != 15 {
		t.Fatalf("expected stock 15, got %d", got)
	}
}

// TestCreateReturnCumulativeLimit tests that returnable quantity shrinks with
// each credit note against the same invoice: after returning 2 of 7 sold,
// a further return of 6 must fail.
func TestCreateReturnCumulativeLimit(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	p := seedProduct(t, db, "P-900", 20, 2)
	customer := &entity.Customer{CustomerName: "Retail Co"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}

	inv, err := svc.CreateSale(ctx, &CreateSaleRequest{
		InvoiceNumber: "INV-006",
		CustomerID:    &customer.ID,
		CustomerName:  customer.CustomerName,
		DateOfSale:    time.Now(),
		Items: []SaleItemRequest{
			{ProductID: p.ID, Quantity: 7, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	first := &CreateReturnRequest{
		CreditNoteNumber: "CN-010",
		InvoiceID:        inv.ID,
		CustomerID:       customer.ID,
		DateOfReturn:     time.Now(),
		Items: []ReturnItemRequest{
			{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	}
	if _, err := svc.CreateReturn(ctx, first); err != nil {
		t.Fatalf("first CreateReturn failed: %v", err)
	}

	second := &CreateReturnRequest{
		CreditNoteNumber: "CN-011",
		InvoiceID:        inv.ID,
		CustomerID:       customer.ID,
		DateOfReturn:     time.Now(),
		Items: []ReturnItemRequest{
			{ProductID: p.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(100)},
		},
	}
	_, err = svc.CreateReturn(ctx, second)
	var exceeds *ReturnExceedsOriginalError
	if !errors.As(err, &exceeds) {
		t.Fatalf("expected ReturnExceedsOriginalError, got %v", err)
	}
	if exceeds.Returnable != 5 || exceeds.Requested != 6 {
		t.Fatalf("expected returnable 5 requested 6, got %d/%d", exceeds.Returnable, exceeds.Requested)
	}

	// Stock reflects only the first, successful return
	if got := productStock(t, db, p.ID); got != 15 {
		t.Fatalf("expected stock 15 after rollback, got %d", got)
	}
}

// TestCreateReturnUnknownInvoice tests that returning against a missing
// invoice is rejected before any writes.
func TestCreateReturnUnknownInvoice(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	p := seedProduct(t, db, "P-950", 5, 2)

	_, err := svc.CreateReturn(ctx, &CreateReturnRequest{
		CreditNoteNumber: "CN-020",
		InvoiceID:        9999,
		CustomerID:       1,
		DateOfReturn:     time.Now(),
		Items: []ReturnItemRequest{
			{ProductID: p.ID, Quantity: 1},
		},
	})
	var notFound *InvoiceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected InvoiceNotFoundError, got %v", err)
	}
	if got := productStock(t, db, p.ID); got != 5 {
		t.Fatalf("expected stock untouched, got %d", got)
	}
}

// TestDuplicateInvoiceNumber tests that a reused invoice number is rejected
// and the stock deduction of the failed attempt is rolled back.
func TestDuplicateInvoiceNumber(t *testing.T) {
	db, svc := setupLedgerTest(t)
	ctx := context.Background()

	p := seedProduct(t, db, "P-990", 50, 2)

	req := &CreateSaleRequest{
		InvoiceNumber: "INV-DUP",
		CustomerName:  "Walk-in",
		DateOfSale:    time.Now(),
		Items: []SaleItemRequest{
			{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	}
	if _, err := svc.CreateSale(ctx, req); err != nil {
		t.Fatalf("first CreateSale failed: %v", err)
	}

	_, err := svc.CreateSale(ctx, req)
	var dup *DuplicateDocumentNumberError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateDocumentNumberError, got %v", err)
	}
	if got := productStock(t, db, p.ID); got != 49 {
		t.Fatalf("expected stock 49 after one successful sale, got %d", got)
	}
}
