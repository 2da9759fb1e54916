package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RepositoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_calls_total",
			Help: "Total number of repository method calls",
		},
		[]string{"method", "status"},
	)

	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_duration_seconds",
			Help:    "Duration of repository method calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Ledger outcomes by transaction type and resulting status
	LedgerTransactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Ledger transactions by type and resulting status",
		},
		[]string{"type", "status"},
	)

	SubscriptionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_transitions_total",
			Help: "Subscription status transitions by target status",
		},
		[]string{"status"},
	)

	GatewayCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_gateway_calls_total",
			Help: "Payment gateway calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_duration_seconds",
			Help:    "Duration of payment gateway calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ProcessorEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "processor_events_total",
			Help: "Processor events consumed by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	AnalyticsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_requests_total",
			Help: "Revenue report cache lookups by result",
		},
		[]string{"result"},
	)

	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func InitMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		RepositoryCalls,
		RepositoryDuration,
		LedgerTransactions,
		SubscriptionTransitions,
		GatewayCalls,
		GatewayDuration,
		ProcessorEvents,
		AnalyticsCache,
		RequestCounter,
		RequestDuration,
	)
}
