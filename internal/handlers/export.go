package handlers

import (
	"net/http"

	"github.com/diewo77/pedidos-ledger/internal/export"
	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/models"
	"gorm.io/gorm"
)

// ExportHandler streams the full record set as one xlsx workbook. The file
// name matches what the mobile client wrote to the documents folder.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler { return &ExportHandler{DB: db} }

func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Order("id asc").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	var products []models.Product
	if err := h.DB.Order("id asc").Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	var payments []models.Payment
	if err := h.DB.Order("id asc").Find(&payments).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="Datos_Clientes.xlsx"`)
	if err := export.Write(w, clients, products, payments); err != nil {
		// Headers are already out; all we can do is log via the caller's middleware.
		_ = err
	}
}
