package handlers

import (
	"net/http"

	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/ledger"
)

// AdminHandler serves the whole-ledger views: dashboard stats and the orphan
// scan that checks for records whose owning client is gone.
type AdminHandler struct {
	Ledger *ledger.Service
}

func NewAdminHandler(svc *ledger.Service) *AdminHandler { return &AdminHandler{Ledger: svc} }

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Ledger.Stats()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

func (h *AdminHandler) Orphans(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Ledger.OrphanScan()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}
