package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/ledger"
	"github.com/diewo77/pedidos-ledger/internal/metrics"
)

type ClientHandler struct {
	Ledger *ledger.Service
}

func NewClientHandler(svc *ledger.Service) *ClientHandler { return &ClientHandler{Ledger: svc} }

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	clients, err := h.Ledger.ListClients(query)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	c, err := h.Ledger.CreateClient(input.Name, input.Phone)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	metrics.RecordLedgerOperation("client", "create")
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	c, err := h.Ledger.GetClient(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.ID == 0 {
		input.ID = idParam(r)
	}
	if err := h.Ledger.UpdateClient(input.ID, input.Name, input.Phone); err != nil {
		writeLedgerError(w, err)
		return
	}
	metrics.RecordLedgerOperation("client", "update")
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": input.ID})
}

// Delete clears a client's products and payments; cascade=true (the default)
// removes the client record too, cascade=false keeps it with a settled ledger.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	cascade := true
	if v := r.URL.Query().Get("cascade"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_cascade", nil)
			return
		}
		cascade = b
	}
	if err := h.Ledger.DeleteClient(id, cascade); err != nil {
		writeLedgerError(w, err)
		return
	}
	metrics.RecordLedgerOperation("client", "delete")
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id, "cascade": cascade})
}

func (h *ClientHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	bal, err := h.Ledger.Balance(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"client_id": id, "balance": bal})
}

func (h *ClientHandler) OrderDates(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	dates, err := h.Ledger.DistinctOrderDates(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"client_id": id, "order_dates": dates})
}
