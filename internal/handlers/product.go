package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/ledger"
	"github.com/diewo77/pedidos-ledger/internal/metrics"
)

type ProductHandler struct {
	Ledger *ledger.Service
}

func NewProductHandler(svc *ledger.Service) *ProductHandler { return &ProductHandler{Ledger: svc} }

func clientIDParam(r *http.Request) uint {
	n, err := strconv.ParseUint(r.URL.Query().Get("client_id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// List returns a client's products, optionally narrowed to one order batch via
// order_date.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID := clientIDParam(r)
	if clientID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_client_id", nil)
		return
	}
	var err error
	var products any
	if date := r.URL.Query().Get("order_date"); date != "" {
		products, err = h.Ledger.ProductsByClientAndDate(clientID, date)
	} else {
		products, err = h.Ledger.ListProductsByClient(clientID)
	}
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ClientID  uint    `json:"client_id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		PhotoPath string  `json:"photo_path"`
		OrderDate string  `json:"order_date"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Ledger.AddProduct(input.ClientID, input.Name, input.Price, input.PhotoPath, input.OrderDate)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	metrics.RecordLedgerOperation("product", "create")
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID        uint     `json:"id"`
		Name      *string  `json:"name"`
		Price     *float64 `json:"price"`
		PhotoPath *string  `json:"photo_path"`
		OrderDate *string  `json:"order_date"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.ID == 0 {
		input.ID = idParam(r)
	}
	upd := ledger.ProductUpdate{Name: input.Name, Price: input.Price, PhotoPath: input.PhotoPath, OrderDate: input.OrderDate}
	if err := h.Ledger.UpdateProduct(input.ID, upd); err != nil {
		writeLedgerError(w, err)
		return
	}
	metrics.RecordLedgerOperation("product", "update")
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": input.ID})
}

// Delete reports 404 when the id never existed so callers can tell the
// difference from a successful removal.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	n, err := h.Ledger.DeleteProduct(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if n == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	metrics.RecordLedgerOperation("product", "delete")
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
