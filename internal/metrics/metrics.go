package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics carries the service counters exposed on /metrics.
type Metrics struct {
	LedgerEntries     *prometheus.CounterVec
	PayoutRequests    prometheus.Counter
	PayoutResolutions *prometheus.CounterVec
	WalletTopUps      prometheus.Counter
	CommissionOrders  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		LedgerEntries: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "ledger_entries_total",
			Help:      "Ledger entries appended, by kind.",
		}, []string{"kind"}),
		PayoutRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "payout_requests_total",
			Help:      "Partner payout requests accepted.",
		}),
		PayoutResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "payout_resolutions_total",
			Help:      "Admin payout resolutions, by decision.",
		}, []string{"decision"}),
		WalletTopUps: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "wallet_topups_total",
			Help:      "Wallet top-ups credited (idempotent replays excluded).",
		}),
		CommissionOrders: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "treasury",
			Name:      "commission_orders_total",
			Help:      "Orders commissioned (duplicate deliveries excluded).",
		}),
	}
}

// RecordLedgerEntry counts a committed append. Dedup hits are not recorded.
func (m *Metrics) RecordLedgerEntry(kind string) {
	if m == nil {
		return
	}
	m.LedgerEntries.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordPayoutRequest() {
	if m == nil {
		return
	}
	m.PayoutRequests.Inc()
}

func (m *Metrics) RecordPayoutResolution(decision string) {
	if m == nil {
		return
	}
	m.PayoutResolutions.WithLabelValues(decision).Inc()
}

func (m *Metrics) RecordWalletTopUp() {
	if m == nil {
		return
	}
	m.WalletTopUps.Inc()
}

func (m *Metrics) RecordCommissionOrder() {
	if m == nil {
		return
	}
	m.CommissionOrders.Inc()
}
