package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/pedidos-ledger/internal/ledger"
	"github.com/diewo77/pedidos-ledger/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Product{}, &models.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestClientCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	h := NewClientHandler(ledger.New(db))

	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(`{"name":"Roberto López","phone":"555-1111"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	req2 := httptest.NewRequest(http.MethodGet, "/clients?q=rob", nil)
	w2 := httptest.NewRecorder()
	h.List(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	var payload struct {
		Items []models.Client `json:"items"`
		Total int             `json:"total"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 1 || payload.Items[0].Name != "Roberto López" {
		t.Fatalf("unexpected list payload: %+v", payload)
	}
}

func TestClientCreateValidationStatus(t *testing.T) {
	db := setupTestDB(t)
	h := NewClientHandler(ledger.New(db))
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(`{"name":"","phone":"555"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("expected validation_failed in body: %s", w.Body.String())
	}
}

func TestClientDeleteKeepsRecordWithoutCascade(t *testing.T) {
	db := setupTestDB(t)
	svc := ledger.New(db)
	h := NewClientHandler(svc)
	c, err := svc.CreateClient("Ana", "555")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddProduct(c.ID, "Blusa", 100, "", ""); err != nil {
		t.Fatalf("add product: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/clients/delete?id=1&cascade=false", nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if _, err := svc.GetClient(c.ID); err != nil {
		t.Fatalf("client should survive soft delete: %v", err)
	}
	products, err := svc.ListProductsByClient(c.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected owned products cleared, got %d", len(products))
	}
}

func TestClientBalanceEndpoint(t *testing.T) {
	db := setupTestDB(t)
	svc := ledger.New(db)
	h := NewClientHandler(svc)
	c, err := svc.CreateClient("Ana", "555")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddProduct(c.ID, "Blusa", 1200, "", ""); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := svc.AddPayment(c.ID, 450, "", ""); err != nil {
		t.Fatalf("add payment: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/clients/balance?id=1", nil)
	w := httptest.NewRecorder()
	h.Balance(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var payload struct {
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Balance != 750 {
		t.Fatalf("expected balance 750 got %v", payload.Balance)
	}
}

func TestClientNotFoundStatus(t *testing.T) {
	db := setupTestDB(t)
	h := NewClientHandler(ledger.New(db))
	req := httptest.NewRequest(http.MethodGet, "/clients/get?id=99", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
