package server

import (
	"net/http"

	"github.com/diewo77/pedidos-ledger/internal/backup"
	"github.com/diewo77/pedidos-ledger/internal/handlers"
	"github.com/diewo77/pedidos-ledger/internal/httpx"
	"github.com/diewo77/pedidos-ledger/internal/ledger"
	"github.com/diewo77/pedidos-ledger/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
// backupSvc may be nil when no remote store is configured; the backup endpoints
// then answer 503.
func New(db *gorm.DB, backupSvc *backup.Service, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	svc := ledger.New(db)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Client endpoints. List/Create via /clients; the rest via explicit
	// sub-paths for simplicity.
	ch := handlers.NewClientHandler(svc)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/clients/get", requireMethod(http.MethodGet, ch.Get))
	mux.HandleFunc("/clients/update", requireMethod(http.MethodPost, ch.Update))
	mux.HandleFunc("/clients/delete", requireMethod(http.MethodPost, ch.Delete))
	mux.HandleFunc("/clients/balance", requireMethod(http.MethodGet, ch.Balance))
	mux.HandleFunc("/clients/order-dates", requireMethod(http.MethodGet, ch.OrderDates))

	ph := handlers.NewProductHandler(svc)
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/products/update", requireMethod(http.MethodPost, ph.Update))
	mux.HandleFunc("/products/delete", requireMethod(http.MethodPost, ph.Delete))

	pay := handlers.NewPaymentHandler(svc)
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			pay.List(w, r)
		case http.MethodPost:
			pay.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/payments/update", requireMethod(http.MethodPost, pay.Update))
	mux.HandleFunc("/payments/delete", requireMethod(http.MethodPost, pay.Delete))

	ah := handlers.NewAdminHandler(svc)
	mux.HandleFunc("/stats", requireMethod(http.MethodGet, ah.Stats))
	mux.HandleFunc("/orphans", requireMethod(http.MethodGet, ah.Orphans))

	bh := handlers.NewBackupHandler(backupSvc)
	mux.HandleFunc("/backup", requireMethod(http.MethodPost, bh.Backup))
	mux.HandleFunc("/restore", requireMethod(http.MethodPost, bh.Restore))

	eh := handlers.NewExportHandler(db)
	mux.HandleFunc("/export", requireMethod(http.MethodGet, eh.Download))

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Pedidos Ledger API")); werr != nil {
			_ = werr
		}
	})

	h := middleware.Metrics(mux)
	h = middleware.Logging(log)(h)
	h = middleware.Recover(log)(h)
	return middleware.RequestID(h)
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}
