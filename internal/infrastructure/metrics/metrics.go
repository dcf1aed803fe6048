package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds business-level Prometheus counters. Request-level metrics
// live in the HTTP middleware.
type Metrics struct {
	TransfersCreated prometheus.Counter
	TransferErrors   *prometheus.CounterVec
	AccountsCreated  prometheus.Counter
	EntriesCreated   prometheus.Counter
	EntriesDeleted   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneymanager_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneymanager_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneymanager_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneymanager_entries_created_total",
			Help: "Total number of ledger entries created",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneymanager_entries_deleted_total",
			Help: "Total number of ledger entries soft-deleted",
		}),
	}
}
