package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedidos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pedidos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Ledger operation metrics
	LedgerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedidos_ledger_operations_total",
			Help: "Total number of ledger operations by entity and action",
		},
		[]string{"entity", "operation"},
	)

	// Backup metrics
	BackupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pedidos_backup_duration_seconds",
			Help:    "Duration of backup and restore runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"direction"},
	)
	BackupRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedidos_backup_records_total",
			Help: "Records moved by backup and restore runs",
		},
		[]string{"direction", "entity"},
	)
)

// RecordLedgerOperation increments the counter for one ledger action.
func RecordLedgerOperation(entity, operation string) {
	LedgerOperationsTotal.WithLabelValues(entity, operation).Inc()
}

// TrackBackup returns a function that records the duration of a backup or
// restore run when called.
func TrackBackup(direction string) func(start time.Time) {
	return func(start time.Time) {
		BackupDuration.WithLabelValues(direction).Observe(time.Since(start).Seconds())
	}
}
