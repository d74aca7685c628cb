package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/pedidos-ledger/internal/backup"
	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/metrics"
)

// BackupHandler drives whole-collection backup and restore against the remote
// document store. Nil Svc means no BACKUP_URL was configured.
type BackupHandler struct {
	Svc *backup.Service
}

func NewBackupHandler(svc *backup.Service) *BackupHandler { return &BackupHandler{Svc: svc} }

func (h *BackupHandler) Backup(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "backup_not_configured", nil)
		return
	}
	defer metrics.TrackBackup("backup")(time.Now())
	sum, err := h.Svc.Backup(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusBadGateway, "backup_failed", err.Error())
		return
	}
	metrics.BackupRecordsTotal.WithLabelValues("backup", "client").Add(float64(sum.Clients))
	metrics.BackupRecordsTotal.WithLabelValues("backup", "product").Add(float64(sum.Products))
	metrics.BackupRecordsTotal.WithLabelValues("backup", "payment").Add(float64(sum.Payments))
	httpx.JSON(w, http.StatusOK, sum)
}

func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "backup_not_configured", nil)
		return
	}
	defer metrics.TrackBackup("restore")(time.Now())
	sum, err := h.Svc.Restore(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusBadGateway, "restore_failed", err.Error())
		return
	}
	metrics.BackupRecordsTotal.WithLabelValues("restore", "client").Add(float64(sum.Clients))
	metrics.BackupRecordsTotal.WithLabelValues("restore", "product").Add(float64(sum.Products))
	metrics.BackupRecordsTotal.WithLabelValues("restore", "payment").Add(float64(sum.Payments))
	httpx.JSON(w, http.StatusOK, sum)
}
