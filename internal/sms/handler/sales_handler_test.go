package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/pdf"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/bitfantasy/nimo-sms/internal/sms/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSalesTest(t *testing.T) (*testutil.TestEnv, *SalesHandler) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	ledger := service.NewLedgerService(db, nil)
	docs := service.NewDocumentService(repos.GRN, repos.Sales, repos.CreditNote, repos.IssueOrder)
	h := NewSalesHandler(ledger, docs, pdf.NewRenderer())

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/sales", h.Create)
	api.GET("/sales", h.List)
	api.GET("/sales/invoice/:id", h.Get)
	api.GET("/sales/invoice/:id/pdf", h.DownloadPDF)
	api.GET("/sales/invoice/number/:number", h.GetByNumber)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, h
}

func seedSalesProduct(t *testing.T, db *gorm.DB, code string, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ProductCode:       code,
		Description:       "Handler test product",
		Brand:             "Acme",
		UnitPrice:         decimal.NewFromInt(100),
		CurrentStock:      stock,
		MinStockThreshold: 5,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return p
}

// TestSalesCreateAndFetchByNumber tests creating an invoice over HTTP and
// fetching it back by its document number.
func TestSalesCreateAndFetchByNumber(t *testing.T) {
	env, _ := setupSalesTest(t)
	token := testutil.DefaultTestToken()

	p := seedSalesProduct(t, env.DB, "HP-100", 30)

	body := map[string]interface{}{
		"invoice_number": "INV-H001",
		"customer_name":  "Walk-in",
		"date_of_sale":   time.Now().Format(time.RFC3339),
		"discount":       "0",
		"items": []map[string]interface{}{
			{"product_id": p.ID, "quantity": 2, "unit_price": "150"},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/sales", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["invoice_number"] != "INV-H001" {
		t.Fatalf("expected invoice number INV-H001, got %v", data["invoice_number"])
	}

	// Fetch by number
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/sales/invoice/number/INV-H001", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

// TestSalesCreateInsufficientStock tests that an oversell maps to 422.
func TestSalesCreateInsufficientStock(t *testing.T) {
	env, _ := setupSalesTest(t)
	token := testutil.DefaultTestToken()

	p := seedSalesProduct(t, env.DB, "HP-200", 1)

	body := map[string]interface{}{
		"invoice_number": "INV-H002",
		"customer_name":  "Walk-in",
		"date_of_sale":   time.Now().Format(time.RFC3339),
		"items": []map[string]interface{}{
			{"product_id": p.ID, "quantity": 5, "unit_price": "10"},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/sales", body, token)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

// TestSalesCreateDuplicateNumber tests that a reused number maps to 409.
func TestSalesCreateDuplicateNumber(t *testing.T) {
	env, _ := setupSalesTest(t)
	token := testutil.DefaultTestToken()

	p := seedSalesProduct(t, env.DB, "HP-300", 30)

	body := map[string]interface{}{
		"invoice_number": "INV-H003",
		"customer_name":  "Walk-in",
		"date_of_sale":   time.Now().Format(time.RFC3339),
		"items": []map[string]interface{}{
			{"product_id": p.ID, "quantity": 1, "unit_price": "10"},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/sales", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/sales", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

// TestSalesPDFDownload tests that the PDF endpoint returns a PDF document.
func TestSalesPDFDownload(t *testing.T) {
	env, _ := setupSalesTest(t)
	token := testutil.DefaultTestToken()

	p := seedSalesProduct(t, env.DB, "HP-400", 30)

	ledger := service.NewLedgerService(env.DB, nil)
	inv, err := ledger.CreateSale(context.Background(), &service.CreateSaleRequest{
		InvoiceNumber: "INV-H004",
		CustomerName:  "Walk-in",
		DateOfSale:    time.Now(),
		Items: []service.SaleItemRequest{
			{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/api/v1/sales/invoice/%d/pdf", inv.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("expected non-empty PDF body")
	}
}

// TestSalesRequiresAuth tests that the sales routes reject missing tokens.
func TestSalesRequiresAuth(t *testing.T) {
	env, _ := setupSalesTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/sales", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
