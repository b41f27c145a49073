package maidmanager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	puts            *prometheus.CounterVec
	completions     *prometheus.CounterVec
	refunded        prometheus.Counter
	refreshes       *prometheus.CounterVec
	churnDropped    prometheus.Counter
	accounts        prometheus.Gauge
	pending         prometheus.Gauge
	cacheCollisions prometheus.Counter
	cacheExpired    prometheus.Counter
}

// newMetrics registers with reg; a nil reg leaves the collectors unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		puts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_maid_manager_puts_total",
			Help: "Put requests handled, by result.",
		}, []string{"result"}),
		completions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_maid_manager_completions_total",
			Help: "Put completions received from the data tier, by outcome.",
		}, []string{"outcome"}),
		refunded: factory.NewCounter(prometheus.CounterOpts{
			Name: "vault_maid_manager_refunded_bytes_total",
			Help: "Bytes refunded to accounts after failed puts.",
		}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_maid_manager_refreshes_total",
			Help: "Account refreshes, by direction.",
		}, []string{"direction"}),
		churnDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "vault_maid_manager_churn_dropped_accounts_total",
			Help: "Accounts dropped because this node left their close group.",
		}),
		accounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vault_maid_manager_accounts",
			Help: "Accounts retained by the last churn pass.",
		}),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vault_maid_manager_pending_requests",
			Help: "Forwarded puts awaiting completion.",
		}),
		cacheCollisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "vault_maid_manager_request_cache_collisions_total",
			Help: "Registrations that replaced a live cached request.",
		}),
		cacheExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "vault_maid_manager_request_cache_expired_total",
			Help: "Cached requests swept after their TTL without a completion.",
		}),
	}
}
