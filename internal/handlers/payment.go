package handlers

import (
	"net/http"

	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/ledger"
	"github.com/diewo77/pedidos-ledger/internal/metrics"
)

type PaymentHandler struct {
	Ledger *ledger.Service
}

func NewPaymentHandler(svc *ledger.Service) *PaymentHandler { return &PaymentHandler{Ledger: svc} }

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID := clientIDParam(r)
	if clientID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_client_id", nil)
		return
	}
	payments, err := h.Ledger.ListPaymentsByClient(clientID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": payments})
}

// Create registers an abono. An omitted linked_order_date falls back to the
// client's latest order batch (or today), matching the mobile client's default.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ClientID        uint    `json:"client_id"`
		Amount          float64 `json:"amount"`
		PaymentDate     string  `json:"payment_date"`
		LinkedOrderDate string  `json:"linked_order_date"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Ledger.AddPayment(input.ClientID, input.Amount, input.PaymentDate, input.LinkedOrderDate)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	metrics.RecordLedgerOperation("payment", "create")
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID              uint     `json:"id"`
		Amount          *float64 `json:"amount"`
		PaymentDate     *string  `json:"payment_date"`
		LinkedOrderDate *string  `json:"linked_order_date"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.ID == 0 {
		input.ID = idParam(r)
	}
	upd := ledger.PaymentUpdate{Amount: input.Amount, PaymentDate: input.PaymentDate, LinkedOrderDate: input.LinkedOrderDate}
	if err := h.Ledger.UpdatePayment(input.ID, upd); err != nil {
		writeLedgerError(w, err)
		return
	}
	metrics.RecordLedgerOperation("payment", "update")
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": input.ID})
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	n, err := h.Ledger.DeletePayment(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if n == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	metrics.RecordLedgerOperation("payment", "delete")
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
