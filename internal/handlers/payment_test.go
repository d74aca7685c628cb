package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/pedidos-ledger/internal/ledger"
	"github.com/diewo77/pedidos-ledger/internal/models"
)

func TestPaymentCreateDefaultsLinkedOrderDate(t *testing.T) {
	db := setupTestDB(t)
	svc := ledger.New(db)
	c, err := svc.CreateClient("Ana", "555")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddProduct(c.ID, "Blusa", 100, "", "2024-12-01"); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := svc.AddProduct(c.ID, "Falda", 100, "", "2024-12-03"); err != nil {
		t.Fatalf("add product: %v", err)
	}

	h := NewPaymentHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"client_id":1,"amount":50,"payment_date":"2024-12-10"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var p models.Payment
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.LinkedOrderDate != "2024-12-03" {
		t.Fatalf("expected latest order date as default, got %q", p.LinkedOrderDate)
	}
}

func TestPaymentCreateRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	svc := ledger.New(db)
	if _, err := svc.CreateClient("Ana", "555"); err != nil {
		t.Fatalf("create: %v", err)
	}
	h := NewPaymentHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"client_id":1,"amount":0}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestProductDeleteDistinguishesNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := ledger.New(db)
	c, err := svc.CreateClient("Ana", "555")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddProduct(c.ID, "Blusa", 100, "", ""); err != nil {
		t.Fatalf("add product: %v", err)
	}

	h := NewProductHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/products/delete?id=1", nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	// Same id again: nothing left to delete.
	req2 := httptest.NewRequest(http.MethodPost, "/products/delete?id=1", nil)
	w2 := httptest.NewRecorder()
	h.Delete(w2, req2)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w2.Code)
	}
}
