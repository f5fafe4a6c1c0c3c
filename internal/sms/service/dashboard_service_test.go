package service

import (
	"context"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/shopspring/decimal"
)

// TestDashboardStatsAggregates tests that the dashboard reflects committed
// documents: product counts, low stock count, sales sum and recent alerts.
func TestDashboardStatsAggregates(t *testing.T) {
	db, ledger := setupLedgerTest(t)
	ctx := context.Background()

	repos := repository.NewRepositories(db)
	dash := NewDashboardService(repos.Product, repos.Sales, repos.Alert, nil)

	healthy := seedProduct(t, db, "D-100", 100, 10)
	low := seedProduct(t, db, "D-101", 12, 10)

	// Sale drops the second product below its threshold
	_, err := ledger.CreateSale(ctx, &CreateSaleRequest{
		InvoiceNumber: "INV-D001",
		CustomerName:  "Walk-in",
		DateOfSale:    time.Now(),
		Items: []SaleItemRequest{
			{ProductID: healthy.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(200)},
			{ProductID: low.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(40)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	stats, err := dash.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalProducts != 2 {
		t.Fatalf("expected 2 products, got %d", stats.TotalProducts)
	}
	if stats.LowStockCount != 1 {
		t.Fatalf("expected 1 low stock product, got %d", stats.LowStockCount)
	}
	if !stats.TotalSales.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected sales sum 400, got %s", stats.TotalSales)
	}
	if len(stats.ActiveAlerts) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(stats.ActiveAlerts))
	}
}
