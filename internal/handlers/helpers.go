package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/ledger"
)

// idParam reads an id from the query string or form body.
func idParam(r *http.Request) uint {
	s := r.URL.Query().Get("id")
	if s == "" {
		s = r.FormValue("id")
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// writeLedgerError maps the ledger error taxonomy onto HTTP status codes:
// bad input is the caller's to fix (400), stale ids mean the caller should
// refresh (404), anything else is a store failure (500).
func writeLedgerError(w http.ResponseWriter, err error) {
	var ve *ledger.ValidationError
	if errors.As(err, &ve) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
		return
	}
	var nf *ledger.NotFoundError
	if errors.As(err, &nf) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", map[string]any{"entity": nf.Entity, "id": nf.ID})
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "storage_error", nil)
}
